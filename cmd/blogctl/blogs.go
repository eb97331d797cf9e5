package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/sushihentaime/blogshelf/internal/blogservice"
	"github.com/sushihentaime/blogshelf/internal/blogview"
	"github.com/sushihentaime/blogshelf/internal/common"
)

type serviceRunner func(run func(cmd *cobra.Command, args []string, s *blogservice.BlogService) error) func(*cobra.Command, []string) error

func newListCmd(withService serviceRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List blogs, newest first",
		Args:  cobra.NoArgs,
		RunE: withService(func(cmd *cobra.Command, args []string, s *blogservice.BlogService) error {
			blogs, err := s.GetBlogs(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing blogs: %w", err)
			}

			if len(blogs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No blogs yet.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tTITLE\tEXCERPT")
			for i := range blogs {
				b := &blogs[i]
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", b.ID, b.CreatedAt, b.Category, b.Title, blogview.Excerpt(b))
			}

			return tw.Flush()
		}),
	}
}

func newShowCmd(withService serviceRunner) *cobra.Command {
	var asHTML bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one blog",
		Args:  cobra.ExactArgs(1),
		RunE: withService(func(cmd *cobra.Command, args []string, s *blogservice.BlogService) error {
			b, ok, err := s.GetBlogByID(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("reading blog: %w", err)
			}
			if !ok {
				return fmt.Errorf("blog %q: %w", args[0], blogservice.ErrRecordNotFound)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n%s | %s | %s | %s\n", b.Title, b.Author, b.CreatedAt, b.Category, b.ReadTime)
			if len(b.Tags) > 0 {
				fmt.Fprintf(out, "Tags: %s\n", strings.Join(b.Tags, ", "))
			}
			fmt.Fprintln(out)

			if asHTML {
				html, err := blogview.RenderMarkdown(b.Content)
				if err != nil {
					return fmt.Errorf("rendering blog: %w", err)
				}
				fmt.Fprint(out, html)
				return nil
			}

			fmt.Fprintln(out, b.Content)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "render the content as HTML")

	return cmd
}

func newCreateCmd(withService serviceRunner) *cobra.Command {
	var (
		req         blogservice.CreateBlogRequest
		contentFile string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a new blog",
		Args:  cobra.NoArgs,
		RunE: withService(func(cmd *cobra.Command, args []string, s *blogservice.BlogService) error {
			if contentFile != "" {
				content, err := os.ReadFile(contentFile)
				if err != nil {
					return fmt.Errorf("reading content: %w", err)
				}
				req.Content = string(content)
			}

			req.Trim()

			if err := blogservice.ValidateCreateRequest(&req); err != nil {
				var validationErr common.ValidationError
				if errors.As(err, &validationErr) {
					for field, msg := range validationErr.Errors {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", field, msg)
					}
				}
				return err
			}

			b, err := s.CreateBlog(cmd.Context(), &req)
			if err != nil {
				return fmt.Errorf("creating blog: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created blog %s (%s).\n", b.ID, b.ReadTime)
			return nil
		}),
	}

	flags := cmd.Flags()
	flags.StringVar(&req.Title, "title", "", "blog title")
	flags.StringVar(&req.Description, "description", "", "short description shown in lists")
	flags.StringVar(&req.Content, "content", "", "Markdown content")
	flags.StringVar(&contentFile, "content-file", "", "read the Markdown content from a file")
	flags.StringVar(&req.Category, "category", blogservice.Categories[0], "category")
	flags.StringSliceVar(&req.Tags, "tags", nil, "comma separated tags")
	flags.StringVar(&req.CoverImage, "cover-image", "", "cover image URL")
	flags.StringVar(&req.Author, "author", "", "author name")
	cmd.MarkFlagsMutuallyExclusive("content", "content-file")

	return cmd
}

func newDeleteCmd(withService serviceRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a blog",
		Args:  cobra.ExactArgs(1),
		RunE: withService(func(cmd *cobra.Command, args []string, s *blogservice.BlogService) error {
			if err := s.DeleteBlog(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("deleting blog: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted blog %s.\n", args[0])
			return nil
		}),
	}
}

func newResetCmd(withService serviceRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Replace the collection with the sample blogs",
		Args:  cobra.NoArgs,
		RunE: withService(func(cmd *cobra.Command, args []string, s *blogservice.BlogService) error {
			blogs, err := s.Reset(cmd.Context())
			if err != nil {
				return fmt.Errorf("resetting blogs: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Reset to %d sample blog(s).\n", len(blogs))
			return nil
		}),
	}
}

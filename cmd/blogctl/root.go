package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/sushihentaime/blogshelf/internal/blogservice"
	"github.com/sushihentaime/blogshelf/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// openService builds the store service the commands run against. Tests swap
// it for an in-memory one.
var openService = func(configPath string, stderr io.Writer) (*blogservice.BlogService, func() error, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	kv, closeStore, err := config.OpenStore(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s store: %w", cfg.Store.Backend, err)
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	return blogservice.NewBlogService(kv, nil, logger, blogservice.NoLatency), closeStore, nil
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "blogctl",
		Short:        "Manage the blog store from the command line",
		Long:         "blogctl reads and edits the blog collection in the store configured for the blogshelf server.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", ".env", "path to the env config file")

	// withService opens the store for the duration of one command.
	withService := func(run func(cmd *cobra.Command, args []string, s *blogservice.BlogService) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := openService(configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeStore()

			return run(cmd, args, s)
		}
	}

	root.AddCommand(
		newListCmd(withService),
		newShowCmd(withService),
		newCreateCmd(withService),
		newDeleteCmd(withService),
		newResetCmd(withService),
		newCategoriesCmd(),
		newVersionCmd(),
	)

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "blogctl %s\n", version)
		},
	}
}

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories offered to authors",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, c := range blogservice.Categories {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
		},
	}
}

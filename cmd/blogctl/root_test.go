package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/blogshelf/internal/blogservice"
	"github.com/sushihentaime/blogshelf/internal/common"
)

// useMemoryStore points every command at one shared in-memory store.
func useMemoryStore(t *testing.T) *blogservice.BlogService {
	s := blogservice.NewBlogService(common.NewMemoryKV(), nil, nil, blogservice.NoLatency)

	orig := openService
	openService = func(string, io.Writer) (*blogservice.BlogService, func() error, error) {
		return s, func() error { return nil }, nil
	}
	t.Cleanup(func() { openService = orig })

	return s
}

func run(t *testing.T, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestListCmd(t *testing.T) {
	useMemoryStore(t)

	out, _, err := run(t, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "The Future of Fintech in 2024")
	assert.Contains(t, lines[1], "Exploring how AI and blockchain")
}

func TestShowCmd(t *testing.T) {
	useMemoryStore(t)

	t.Run("markdown", func(t *testing.T) {
		out, _, err := run(t, "show", "2")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "Ace Your CA Finals\nPriya Sharma | 2024-01-20 | Career | 4 min read\n"))
		assert.Contains(t, out, "## Focus on Conceptual Clarity")
	})

	t.Run("html", func(t *testing.T) {
		out, _, err := run(t, "show", "2", "--html")
		require.NoError(t, err)
		assert.Contains(t, out, "<h2>Focus on Conceptual Clarity</h2>")
	})

	t.Run("missing", func(t *testing.T) {
		_, _, err := run(t, "show", "42")
		assert.ErrorIs(t, err, blogservice.ErrRecordNotFound)
	})

	t.Run("no id", func(t *testing.T) {
		_, _, err := run(t, "show")
		assert.Error(t, err)
	})
}

func TestCreateCmd(t *testing.T) {
	s := useMemoryStore(t)

	t.Run("from flags", func(t *testing.T) {
		out, _, err := run(t, "create",
			"--title", " Ledger Basics ",
			"--description", "Debits and credits",
			"--content", "Every debit has a credit.",
			"--tags", "accounting,basics",
			"--author", "Anita Desai",
		)
		require.NoError(t, err)
		assert.Contains(t, out, "(1 min read)")

		blogs, err := s.GetBlogs(context.Background())
		require.NoError(t, err)
		require.Len(t, blogs, 4)
		assert.Equal(t, "Ledger Basics", blogs[0].Title)
		assert.Equal(t, "Finance", blogs[0].Category)
		assert.Equal(t, []string{"accounting", "basics"}, blogs[0].Tags)
	})

	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "post.md")
		require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("word ", 450)), 0o600))

		out, _, err := run(t, "create",
			"--title", "Long Read",
			"--description", "Many words",
			"--content-file", path,
			"--author", "Anita Desai",
			"--category", "Skills",
		)
		require.NoError(t, err)
		assert.Contains(t, out, "(3 min read)")
	})

	t.Run("validation", func(t *testing.T) {
		_, stderr, err := run(t, "create", "--title", "No body")
		require.Error(t, err)
		assert.Contains(t, stderr, "content: must be provided")
		assert.Contains(t, stderr, "author: must be provided")
	})

	t.Run("content flags conflict", func(t *testing.T) {
		_, _, err := run(t, "create", "--content", "x", "--content-file", "y")
		assert.Error(t, err)
	})
}

func TestDeleteAndResetCmd(t *testing.T) {
	s := useMemoryStore(t)

	out, _, err := run(t, "delete", "1")
	require.NoError(t, err)
	assert.Equal(t, "Deleted blog 1.\n", out)

	blogs, err := s.GetBlogs(context.Background())
	require.NoError(t, err)
	assert.Len(t, blogs, 2)

	out, _, err = run(t, "reset")
	require.NoError(t, err)
	assert.Equal(t, "Reset to 3 sample blog(s).\n", out)

	blogs, err = s.GetBlogs(context.Background())
	require.NoError(t, err)
	assert.Len(t, blogs, 3)
}

func TestCategoriesAndVersionCmd(t *testing.T) {
	out, _, err := run(t, "categories")
	require.NoError(t, err)
	assert.Equal(t, "Finance\nCareer\nRegulations\nSkills\nTechnology\n", out)

	out, _, err = run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "blogctl dev\n", out)
}

package blogview

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var scriptTagPattern = regexp.MustCompile(`(?is)<\s*script[^>]*>(.*?)<\s*/\s*script\s*>`)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

func sanitizeMarkdown(content string) string {
	return scriptTagPattern.ReplaceAllString(content, "")
}

// RenderMarkdown converts blog content to HTML. Raw HTML is passed through
// except for script elements.
func RenderMarkdown(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", nil
	}

	var b strings.Builder
	if err := markdown.Convert([]byte(sanitizeMarkdown(content)), &b); err != nil {
		return "", err
	}

	return b.String(), nil
}

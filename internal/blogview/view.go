// Package blogview holds the display rules callers apply to stored blogs:
// list excerpts, category styling, Markdown rendering and the RSS feed.
package blogview

import (
	"github.com/sushihentaime/blogshelf/internal/blogservice"
)

const (
	excerptLength = 80
	listTagLimit  = 2
	defaultClass  = "text-gray-600"
)

var categoryClasses = map[string]string{
	"Finance":     "text-blue-600",
	"Career":      "text-green-600",
	"Regulations": "text-amber-600",
	"Skills":      "text-purple-600",
	"Technology":  "text-cyan-600",
}

var categoryIcons = map[string]string{
	"Finance":     "trending-up",
	"Career":      "briefcase",
	"Regulations": "scale",
	"Skills":      "lightbulb",
	"Technology":  "monitor",
}

// Summary is the list entry shown for one blog.
type Summary struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	CategoryClass string   `json:"categoryClass"`
	CategoryIcon  string   `json:"categoryIcon,omitempty"`
	CreatedAt     string   `json:"createdAt"`
	Excerpt       string   `json:"excerpt"`
	Tags          []string `json:"tags"`
}

// Truncate cuts s to 80 characters and appends "..." when it was longer.
func Truncate(s string) string {
	r := []rune(s)
	if len(r) <= excerptLength {
		return s
	}

	return string(r[:excerptLength]) + "..."
}

// Excerpt is the truncated description, falling back to the content.
func Excerpt(b *blogservice.Blog) string {
	text := b.Description
	if text == "" {
		text = b.Content
	}

	return Truncate(text)
}

func CategoryClass(category string) string {
	if class, ok := categoryClasses[category]; ok {
		return class
	}

	return defaultClass
}

// CategoryIcon returns "" for categories without an icon.
func CategoryIcon(category string) string {
	return categoryIcons[category]
}

// ListTags returns the tags shown on a list entry.
func ListTags(tags []string) []string {
	if len(tags) > listTagLimit {
		tags = tags[:listTagLimit]
	}

	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

func NewSummary(b *blogservice.Blog) Summary {
	return Summary{
		ID:            b.ID,
		Title:         b.Title,
		Category:      b.Category,
		CategoryClass: CategoryClass(b.Category),
		CategoryIcon:  CategoryIcon(b.Category),
		CreatedAt:     b.CreatedAt,
		Excerpt:       Excerpt(b),
		Tags:          ListTags(b.Tags),
	}
}

func Summaries(blogs []blogservice.Blog) []Summary {
	out := make([]Summary, 0, len(blogs))
	for i := range blogs {
		out = append(out, NewSummary(&blogs[i]))
	}

	return out
}

package blogview

import (
	"io"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"github.com/sushihentaime/blogshelf/internal/blogservice"
)

const feedLimit = 20

// Feed builds the RSS feed of the newest blogs. Blogs whose content does not
// render are listed with their description only.
func Feed(blogs []blogservice.Blog, siteURL string, now time.Time) *feeds.Feed {
	siteURL = strings.TrimRight(siteURL, "/")

	feed := &feeds.Feed{
		Title:       "Blogshelf",
		Link:        &feeds.Link{Href: siteURL},
		Description: "Latest articles",
		Created:     now,
	}

	if len(blogs) > feedLimit {
		blogs = blogs[:feedLimit]
	}

	for i := range blogs {
		b := &blogs[i]

		created, err := time.Parse(time.DateOnly, b.CreatedAt)
		if err != nil {
			created = now
		}

		content, err := RenderMarkdown(b.Content)
		if err != nil {
			content = ""
		}

		feed.Items = append(feed.Items, &feeds.Item{
			Id:          b.ID,
			Title:       b.Title,
			Link:        &feeds.Link{Href: siteURL + "/blogs/" + b.ID},
			Author:      &feeds.Author{Name: b.Author},
			Description: Excerpt(b),
			Content:     content,
			Created:     created,
		})
	}

	return feed
}

func WriteRSS(w io.Writer, blogs []blogservice.Blog, siteURL string, now time.Time) error {
	return Feed(blogs, siteURL, now).WriteRss(w)
}

// ABOUTME: RSS/Atom feed parsing using the gofeed library
// ABOUTME: Converts gofeed documents to a provider-agnostic normalized shape

package parse

import (
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Feed is a normalized feed document.
type Feed struct {
	Title       string
	Description string
	SiteURL     string
	Items       []Item
}

// Item is a normalized feed entry.
type Item struct {
	GUID        string
	Title       string
	Link        string
	Content     string
	Summary     string
	Author      string
	PublishedAt *time.Time // nil when the provider gave no parseable date
}

// Parse parses RSS or Atom feed data into a normalized Feed.
//
// GUID resolution when the provider omits an explicit id: link, then title,
// then empty string. Items lacking all three collide on the (feed, guid)
// uniqueness key and overwrite one another; that is the documented fallback
// behavior, not a bug to paper over here.
func Parse(data []byte) (*Feed, error) {
	parser := gofeed.NewParser()
	src, err := parser.ParseString(string(data))
	if err != nil {
		return nil, err
	}

	feed := &Feed{
		Title:       src.Title,
		Description: src.Description,
		SiteURL:     src.Link,
		Items:       make([]Item, 0, len(src.Items)),
	}

	for _, it := range src.Items {
		item := Item{
			GUID:  it.GUID,
			Title: it.Title,
			Link:  it.Link,
		}

		if item.GUID == "" {
			item.GUID = it.Link
		}
		if item.GUID == "" {
			item.GUID = it.Title
		}

		// Prefer full content, keep the description as the short summary
		item.Content = strings.TrimSpace(it.Content)
		item.Summary = strings.TrimSpace(it.Description)
		if item.Content == "" {
			item.Content = item.Summary
		}

		if it.Author != nil {
			item.Author = it.Author.Name
		}

		// Unparseable or absent dates stay nil: never zero, never "now"
		if it.PublishedParsed != nil {
			item.PublishedAt = it.PublishedParsed
		} else if it.UpdatedParsed != nil {
			item.PublishedAt = it.UpdatedParsed
		}

		feed.Items = append(feed.Items, item)
	}

	return feed, nil
}

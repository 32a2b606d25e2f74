// ABOUTME: List item adapter mapping articles and search hits into the bubbles list
// ABOUTME: Carries read/starred markers and feed attribution for each row

package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/list"

	"github.com/quillfeed/quill/internal/models"
	"github.com/quillfeed/quill/internal/storage"
)

// articleItem is one row in the article list.
type articleItem struct {
	id        string
	title     string
	feedTitle string
	published *time.Time
	read      bool
	starred   bool
}

var _ list.Item = articleItem{}

func (i articleItem) Title() string {
	marker := "  "
	if !i.read {
		marker = "● "
	}
	star := ""
	if i.starred {
		star = " ★"
	}
	title := i.title
	if title == "" {
		title = "(untitled)"
	}
	return marker + title + star
}

func (i articleItem) Description() string {
	desc := i.feedTitle
	if i.published != nil {
		if desc != "" {
			desc += " · "
		}
		desc += i.published.Format("02 Jan 2006 15:04")
	}
	return desc
}

func (i articleItem) FilterValue() string {
	return i.title + " " + i.feedTitle
}

func itemFromArticle(a *models.Article, feedTitles map[string]string) articleItem {
	return articleItem{
		id:        a.ID,
		title:     a.Title,
		feedTitle: feedTitles[a.FeedID],
		published: a.PublishedAt,
		read:      a.IsRead,
		starred:   a.IsStarred,
	}
}

func itemFromSearchResult(r storage.SearchResult) articleItem {
	return articleItem{
		id:        r.ID,
		title:     r.Title,
		feedTitle: r.FeedTitle,
		published: r.PublishedAt,
		read:      r.IsRead,
		starred:   r.IsStarred,
	}
}

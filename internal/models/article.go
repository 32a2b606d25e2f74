// ABOUTME: Article model representing a single feed entry with read/starred state
// ABOUTME: Articles are owned by a feed and deduplicated on (feed, guid)

package models

import (
	"time"

	"github.com/google/uuid"
)

// Article represents a single entry within an RSS/Atom feed
type Article struct {
	ID          string
	FeedID      string
	GUID        string
	Title       string
	Link        string
	Content     string
	Summary     string
	Author      string
	PublishedAt *time.Time // nil when the provider supplied no parseable date
	IsRead      bool
	IsStarred   bool
	CreatedAt   time.Time
}

// NewArticle creates a new Article for the given feed and guid.
// Sets ID to a new UUID, CreatedAt to current time, and flags to false.
func NewArticle(feedID, guid string) *Article {
	return &Article{
		ID:        uuid.New().String(),
		FeedID:    feedID,
		GUID:      guid,
		CreatedAt: time.Now(),
	}
}

// SortTime returns the published time, falling back to the creation time
// when the provider supplied no date. Used for newest-first ordering.
func (a *Article) SortTime() time.Time {
	if a.PublishedAt != nil {
		return *a.PublishedAt
	}
	return a.CreatedAt
}

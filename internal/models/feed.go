// ABOUTME: Feed model representing an RSS/Atom subscription source
// ABOUTME: Tracks feed metadata, category label, and last successful fetch time

package models

import (
	"time"

	"github.com/google/uuid"
)

// Feed represents an RSS/Atom feed subscription
type Feed struct {
	ID            string     // Unique identifier for the feed
	URL           string     // Feed URL (globally unique)
	Title         string     // Feed title (from RSS/Atom metadata)
	Description   string     // Feed description
	SiteURL       string     // Website the feed belongs to
	Category      string     // Free-text category label (empty = uncategorized)
	CreatedAt     time.Time  // Feed creation timestamp
	LastFetchedAt *time.Time // Timestamp of last successful fetch, nil if never fetched
}

// NewFeed creates a new Feed instance with a generated ID and timestamp
func NewFeed(url string) *Feed {
	return &Feed{
		ID:        uuid.New().String(),
		URL:       url,
		CreatedAt: time.Now(),
	}
}

// DisplayName returns the feed title, falling back to the URL when untitled
func (f *Feed) DisplayName() string {
	if f.Title != "" {
		return f.Title
	}
	return f.URL
}

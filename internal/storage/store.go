// ABOUTME: Storage interface and types for quill data persistence
// ABOUTME: Defines the contract for feed, article, and tag storage operations

package storage

import (
	"time"

	"github.com/quillfeed/quill/internal/models"
)

// ArticleFilter specifies criteria for listing articles.
type ArticleFilter struct {
	FeedID      *string
	UnreadOnly  bool
	StarredOnly bool
	Since       *time.Time
	Until       *time.Time
	Limit       *int
	Offset      *int
}

// FeedSummary is a feed row joined with its unread article count.
type FeedSummary struct {
	Feed        models.Feed
	UnreadCount int
}

// SearchResult is one full-text search hit, flattened with the owning
// feed's title. Ordered by the engine's relevance rank.
type SearchResult struct {
	ID          string
	FeedID      string
	GUID        string
	Title       string
	Link        string
	Summary     string
	Author      string
	PublishedAt *time.Time
	IsRead      bool
	IsStarred   bool
	FeedTitle   string
}

// TagCount is a tag joined with the number of articles carrying it.
type TagCount struct {
	Tag   models.Tag
	Count int
}

// Store defines the storage contract for quill data. Implementations
// perform no network I/O; every mutation runs as a single statement or a
// single explicit transaction.
type Store interface {
	// Close closes the store and releases resources.
	Close() error

	// Feed operations

	// UpsertFeed inserts a feed keyed on its unique URL. If the URL is
	// already subscribed, the existing row's title, description, site URL,
	// and category are updated in place. Returns the resulting row.
	UpsertFeed(feed *models.Feed) (*models.Feed, error)

	// GetFeed retrieves a feed by ID.
	GetFeed(id string) (*models.Feed, error)

	// GetFeedByURL finds a feed by its URL.
	GetFeedByURL(url string) (*models.Feed, error)

	// ListFeeds returns all feeds ordered case-insensitively by title.
	ListFeeds() ([]*models.Feed, error)

	// ListFeedsWithUnread returns all feeds with per-feed unread counts,
	// ordered case-insensitively by title.
	ListFeedsWithUnread() ([]FeedSummary, error)

	// TouchFeedFetched records a successful fetch at the given time.
	TouchFeedFetched(id string, fetchedAt time.Time) error

	// DeleteFeed removes a feed, cascading to its articles and their tag
	// associations.
	DeleteFeed(id string) error

	// Article operations

	// UpsertArticle inserts an article keyed on (feed_id, guid). On
	// conflict the existing row's content fields (title, link, content,
	// summary, author, published_at) are updated; read/starred flags and
	// creation time are never reset. Returns the resulting row and whether
	// a new row was inserted.
	UpsertArticle(article *models.Article) (*models.Article, bool, error)

	// GetArticle retrieves an article by ID.
	GetArticle(id string) (*models.Article, error)

	// GetArticleByPrefix finds an article by ID prefix (min 6 chars).
	GetArticleByPrefix(prefix string) (*models.Article, error)

	// ListArticles returns articles matching the filter, newest first by
	// published time, falling back to creation time when unpublished.
	ListArticles(filter *ArticleFilter) ([]*models.Article, error)

	// MarkArticleRead sets the read flag.
	MarkArticleRead(id string, read bool) error

	// ToggleArticleStarred flips the starred flag and returns the new value.
	ToggleArticleStarred(id string) (bool, error)

	// CountUnread counts unread articles, optionally for a single feed.
	CountUnread(feedID *string) (int, error)

	// Tag operations

	// GetOrCreateTag returns the tag with the given name, creating it on
	// first use.
	GetOrCreateTag(name string) (*models.Tag, error)

	// TagArticle associates a tag with an article. Adding an existing
	// association is a no-op.
	TagArticle(articleID string, tagID int64) error

	// UntagArticle removes a tag association.
	UntagArticle(articleID string, tagID int64) error

	// ListTags returns all tags with usage counts, ordered by name.
	ListTags() ([]TagCount, error)

	// ListArticleTags returns the tags attached to an article.
	ListArticleTags(articleID string) ([]*models.Tag, error)

	// ListArticlesByTag returns articles carrying the named tag, newest
	// first.
	ListArticlesByTag(name string) ([]*models.Article, error)

	// Search

	// SearchArticles runs an already-sanitized full-text query and returns
	// up to limit hits ordered by relevance, joined with feed titles.
	// Callers must sanitize user input first (see internal/search).
	SearchArticles(match string, limit int) ([]SearchResult, error)
}

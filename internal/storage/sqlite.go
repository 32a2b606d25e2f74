// ABOUTME: SQLite storage implementation using modernc.org/sqlite (pure Go)
// ABOUTME: Provides feed, article, and tag persistence with FTS5 full-text search

package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/quillfeed/quill/internal/models"
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at dbPath and
// applies pending migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	// 0700: reading habits are personal data
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	// WAL for concurrent refresh writers, foreign keys for cascade deletes
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// DB exposes the underlying handle for migration inspection commands.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Feed operations

const feedColumns = `id, url, title, description, site_url, category, created_at, last_fetched_at`

// UpsertFeed inserts a feed or, when the URL is already subscribed, updates
// the existing row's metadata in place. A single atomic statement so two
// concurrent adds of the same URL cannot produce duplicates.
func (s *SQLiteStore) UpsertFeed(feed *models.Feed) (*models.Feed, error) {
	query := `
		INSERT INTO feeds (id, url, title, description, site_url, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			site_url = excluded.site_url,
			category = excluded.category
		RETURNING ` + feedColumns
	row := s.db.QueryRow(query,
		feed.ID, feed.URL, feed.Title, feed.Description, feed.SiteURL,
		feed.Category, feed.CreatedAt.Unix(),
	)
	got, err := scanFeed(row)
	if err != nil {
		return nil, fmt.Errorf("upsert feed: %w", err)
	}
	return got, nil
}

// GetFeed retrieves a feed by ID.
func (s *SQLiteStore) GetFeed(id string) (*models.Feed, error) {
	row := s.db.QueryRow(`SELECT `+feedColumns+` FROM feeds WHERE id = ?`, id)
	feed, err := scanFeed(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("feed not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get feed: %w", err)
	}
	return feed, nil
}

// GetFeedByURL finds a feed by its URL.
func (s *SQLiteStore) GetFeedByURL(url string) (*models.Feed, error) {
	row := s.db.QueryRow(`SELECT `+feedColumns+` FROM feeds WHERE url = ?`, url)
	feed, err := scanFeed(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("feed not found: %s", url)
	}
	if err != nil {
		return nil, fmt.Errorf("get feed by url: %w", err)
	}
	return feed, nil
}

// ListFeeds returns all feeds ordered case-insensitively by title.
func (s *SQLiteStore) ListFeeds() ([]*models.Feed, error) {
	rows, err := s.db.Query(`SELECT ` + feedColumns + ` FROM feeds ORDER BY title COLLATE NOCASE, url`)
	if err != nil {
		return nil, fmt.Errorf("query feeds: %w", err)
	}
	defer rows.Close()

	var feeds []*models.Feed
	for rows.Next() {
		feed, err := scanFeed(rows)
		if err != nil {
			return nil, fmt.Errorf("scan feed: %w", err)
		}
		feeds = append(feeds, feed)
	}
	return feeds, rows.Err()
}

// ListFeedsWithUnread returns all feeds with per-feed unread counts.
func (s *SQLiteStore) ListFeedsWithUnread() ([]FeedSummary, error) {
	query := `
		SELECT f.id, f.url, f.title, f.description, f.site_url, f.category,
		       f.created_at, f.last_fetched_at,
		       COUNT(CASE WHEN a.is_read = 0 THEN 1 END) AS unread
		FROM feeds f
		LEFT JOIN articles a ON a.feed_id = f.id
		GROUP BY f.id
		ORDER BY f.title COLLATE NOCASE, f.url
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query feed summaries: %w", err)
	}
	defer rows.Close()

	var summaries []FeedSummary
	for rows.Next() {
		var sum FeedSummary
		var createdAt int64
		var lastFetched sql.NullInt64
		if err := rows.Scan(
			&sum.Feed.ID, &sum.Feed.URL, &sum.Feed.Title, &sum.Feed.Description,
			&sum.Feed.SiteURL, &sum.Feed.Category, &createdAt, &lastFetched,
			&sum.UnreadCount,
		); err != nil {
			return nil, fmt.Errorf("scan feed summary: %w", err)
		}
		sum.Feed.CreatedAt = time.Unix(createdAt, 0)
		sum.Feed.LastFetchedAt = unixToTime(lastFetched)
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// TouchFeedFetched records a successful fetch at the given time.
func (s *SQLiteStore) TouchFeedFetched(id string, fetchedAt time.Time) error {
	result, err := s.db.Exec(`UPDATE feeds SET last_fetched_at = ? WHERE id = ?`, fetchedAt.Unix(), id)
	if err != nil {
		return fmt.Errorf("touch feed: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("feed not found: %s", id)
	}
	return nil
}

// DeleteFeed removes a feed and, via foreign keys, its articles and their
// tag associations.
func (s *SQLiteStore) DeleteFeed(id string) error {
	result, err := s.db.Exec(`DELETE FROM feeds WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete feed: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("feed not found: %s", id)
	}
	return nil
}

// Article operations

const articleColumns = `id, feed_id, guid, title, link, content, summary, author, published_at, is_read, is_starred, created_at`

// UpsertArticle inserts an article or updates the content fields of the
// existing (feed_id, guid) row. Read/starred flags and created_at survive
// re-ingestion untouched. The second return reports whether a new row was
// inserted.
func (s *SQLiteStore) UpsertArticle(article *models.Article) (*models.Article, bool, error) {
	query := `
		INSERT INTO articles (id, feed_id, guid, title, link, content, summary, author, published_at, is_read, is_starred, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 0, ?)
		ON CONFLICT(feed_id, guid) DO UPDATE SET
			title = excluded.title,
			link = excluded.link,
			content = excluded.content,
			summary = excluded.summary,
			author = excluded.author,
			published_at = excluded.published_at
		RETURNING ` + articleColumns
	row := s.db.QueryRow(query,
		article.ID, article.FeedID, article.GUID, article.Title, article.Link,
		article.Content, article.Summary, article.Author,
		timeToUnix(article.PublishedAt), article.CreatedAt.Unix(),
	)
	got, err := scanArticle(row)
	if err != nil {
		return nil, false, fmt.Errorf("upsert article: %w", err)
	}
	// On conflict the existing row keeps its original ID, so a returned ID
	// matching the candidate means a fresh insert.
	return got, got.ID == article.ID, nil
}

// GetArticle retrieves an article by ID.
func (s *SQLiteStore) GetArticle(id string) (*models.Article, error) {
	row := s.db.QueryRow(`SELECT `+articleColumns+` FROM articles WHERE id = ?`, id)
	article, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("article not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	return article, nil
}

// GetArticleByPrefix finds an article by ID prefix (min 6 chars).
func (s *SQLiteStore) GetArticleByPrefix(prefix string) (*models.Article, error) {
	if len(prefix) < 6 {
		return nil, fmt.Errorf("prefix must be at least 6 characters")
	}

	rows, err := s.db.Query(`SELECT `+articleColumns+` FROM articles WHERE id LIKE ?`, prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	matches, err := collectArticles(rows)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no article found with prefix %s", prefix)
	}
	if len(matches) > 1 {
		return nil, fmt.Errorf("ambiguous prefix %s matches %d articles", prefix, len(matches))
	}
	return matches[0], nil
}

// ListArticles returns articles matching the filter, newest first.
func (s *SQLiteStore) ListArticles(filter *ArticleFilter) ([]*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles`

	var conditions []string
	var args []any

	if filter != nil {
		if filter.FeedID != nil {
			conditions = append(conditions, "feed_id = ?")
			args = append(args, *filter.FeedID)
		}
		if filter.UnreadOnly {
			conditions = append(conditions, "is_read = 0")
		}
		if filter.StarredOnly {
			conditions = append(conditions, "is_starred = 1")
		}
		if filter.Since != nil {
			conditions = append(conditions, "COALESCE(published_at, created_at) >= ?")
			args = append(args, filter.Since.Unix())
		}
		if filter.Until != nil {
			conditions = append(conditions, "COALESCE(published_at, created_at) < ?")
			args = append(args, filter.Until.Unix())
		}
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	query += " ORDER BY COALESCE(published_at, created_at) DESC"

	if filter != nil {
		if filter.Limit != nil {
			query += fmt.Sprintf(" LIMIT %d", *filter.Limit)
		}
		if filter.Offset != nil {
			if filter.Limit == nil {
				query += " LIMIT -1"
			}
			query += fmt.Sprintf(" OFFSET %d", *filter.Offset)
		}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	return collectArticles(rows)
}

// MarkArticleRead sets the read flag.
func (s *SQLiteStore) MarkArticleRead(id string, read bool) error {
	result, err := s.db.Exec(`UPDATE articles SET is_read = ? WHERE id = ?`, boolToInt(read), id)
	if err != nil {
		return fmt.Errorf("mark article read: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("article not found: %s", id)
	}
	return nil
}

// ToggleArticleStarred flips the starred flag and returns the new value.
func (s *SQLiteStore) ToggleArticleStarred(id string) (bool, error) {
	var starred int
	err := s.db.QueryRow(`UPDATE articles SET is_starred = 1 - is_starred WHERE id = ? RETURNING is_starred`, id).Scan(&starred)
	if err == sql.ErrNoRows {
		return false, fmt.Errorf("article not found: %s", id)
	}
	if err != nil {
		return false, fmt.Errorf("toggle starred: %w", err)
	}
	return starred == 1, nil
}

// CountUnread counts unread articles, optionally for a single feed.
func (s *SQLiteStore) CountUnread(feedID *string) (int, error) {
	var count int
	var err error
	if feedID != nil {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM articles WHERE is_read = 0 AND feed_id = ?`, *feedID).Scan(&count)
	} else {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM articles WHERE is_read = 0`).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return count, nil
}

// Tag operations

// GetOrCreateTag returns the tag with the given name, creating it on first
// use. The no-op conflict update makes RETURNING yield the existing row.
func (s *SQLiteStore) GetOrCreateTag(name string) (*models.Tag, error) {
	var tag models.Tag
	query := `
		INSERT INTO tags (name) VALUES (?)
		ON CONFLICT(name) DO UPDATE SET name = excluded.name
		RETURNING id, name
	`
	if err := s.db.QueryRow(query, name).Scan(&tag.ID, &tag.Name); err != nil {
		return nil, fmt.Errorf("get or create tag: %w", err)
	}
	return &tag, nil
}

// TagArticle associates a tag with an article. Idempotent.
func (s *SQLiteStore) TagArticle(articleID string, tagID int64) error {
	_, err := s.db.Exec(`INSERT OR IGNORE INTO article_tags (article_id, tag_id) VALUES (?, ?)`, articleID, tagID)
	if err != nil {
		return fmt.Errorf("tag article: %w", err)
	}
	return nil
}

// UntagArticle removes a tag association.
func (s *SQLiteStore) UntagArticle(articleID string, tagID int64) error {
	_, err := s.db.Exec(`DELETE FROM article_tags WHERE article_id = ? AND tag_id = ?`, articleID, tagID)
	if err != nil {
		return fmt.Errorf("untag article: %w", err)
	}
	return nil
}

// ListTags returns all tags with usage counts, ordered by name.
func (s *SQLiteStore) ListTags() ([]TagCount, error) {
	query := `
		SELECT t.id, t.name, COUNT(at.article_id)
		FROM tags t
		LEFT JOIN article_tags at ON at.tag_id = t.id
		GROUP BY t.id
		ORDER BY t.name COLLATE NOCASE
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	var tags []TagCount
	for rows.Next() {
		var tc TagCount
		if err := rows.Scan(&tc.Tag.ID, &tc.Tag.Name, &tc.Count); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tc)
	}
	return tags, rows.Err()
}

// ListArticleTags returns the tags attached to an article.
func (s *SQLiteStore) ListArticleTags(articleID string) ([]*models.Tag, error) {
	query := `
		SELECT t.id, t.name
		FROM tags t
		JOIN article_tags at ON at.tag_id = t.id
		WHERE at.article_id = ?
		ORDER BY t.name COLLATE NOCASE
	`
	rows, err := s.db.Query(query, articleID)
	if err != nil {
		return nil, fmt.Errorf("query article tags: %w", err)
	}
	defer rows.Close()

	var tags []*models.Tag
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, &tag)
	}
	return tags, rows.Err()
}

// ListArticlesByTag returns articles carrying the named tag, newest first.
func (s *SQLiteStore) ListArticlesByTag(name string) ([]*models.Article, error) {
	query := `
		SELECT a.id, a.feed_id, a.guid, a.title, a.link, a.content, a.summary,
		       a.author, a.published_at, a.is_read, a.is_starred, a.created_at
		FROM articles a
		JOIN article_tags at ON at.article_id = a.id
		JOIN tags t ON t.id = at.tag_id
		WHERE t.name = ?
		ORDER BY COALESCE(a.published_at, a.created_at) DESC
	`
	rows, err := s.db.Query(query, name)
	if err != nil {
		return nil, fmt.Errorf("query articles by tag: %w", err)
	}
	defer rows.Close()

	return collectArticles(rows)
}

// Search

// SearchArticles runs an already-sanitized FTS5 query. Lower rank means a
// better match, so ascending order puts the most relevant hits first.
func (s *SQLiteStore) SearchArticles(match string, limit int) ([]SearchResult, error) {
	query := `
		SELECT a.id, a.feed_id, a.guid, a.title, a.link, a.summary, a.author,
		       a.published_at, a.is_read, a.is_starred, f.title
		FROM articles a
		JOIN articles_fts fts ON a.rowid = fts.rowid
		JOIN feeds f ON f.id = a.feed_id
		WHERE articles_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`
	rows, err := s.db.Query(query, match, limit)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		var publishedAt sql.NullInt64
		var isRead, isStarred int
		if err := rows.Scan(
			&r.ID, &r.FeedID, &r.GUID, &r.Title, &r.Link, &r.Summary,
			&r.Author, &publishedAt, &isRead, &isStarred, &r.FeedTitle,
		); err != nil {
			return nil, fmt.Errorf("scan search result: %w", err)
		}
		r.PublishedAt = unixToTime(publishedAt)
		r.IsRead = isRead == 1
		r.IsStarred = isStarred == 1
		results = append(results, r)
	}
	return results, rows.Err()
}

// Helpers

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanFeed(row rowScanner) (*models.Feed, error) {
	var feed models.Feed
	var createdAt int64
	var lastFetched sql.NullInt64
	if err := row.Scan(
		&feed.ID, &feed.URL, &feed.Title, &feed.Description, &feed.SiteURL,
		&feed.Category, &createdAt, &lastFetched,
	); err != nil {
		return nil, err
	}
	feed.CreatedAt = time.Unix(createdAt, 0)
	feed.LastFetchedAt = unixToTime(lastFetched)
	return &feed, nil
}

func scanArticle(row rowScanner) (*models.Article, error) {
	var article models.Article
	var publishedAt sql.NullInt64
	var isRead, isStarred int
	var createdAt int64
	if err := row.Scan(
		&article.ID, &article.FeedID, &article.GUID, &article.Title,
		&article.Link, &article.Content, &article.Summary, &article.Author,
		&publishedAt, &isRead, &isStarred, &createdAt,
	); err != nil {
		return nil, err
	}
	article.PublishedAt = unixToTime(publishedAt)
	article.IsRead = isRead == 1
	article.IsStarred = isStarred == 1
	article.CreatedAt = time.Unix(createdAt, 0)
	return &article, nil
}

func collectArticles(rows *sql.Rows) ([]*models.Article, error) {
	var articles []*models.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

func timeToUnix(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Unix()
}

func unixToTime(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(v.Int64, 0)
	return &t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ Store = (*SQLiteStore)(nil)

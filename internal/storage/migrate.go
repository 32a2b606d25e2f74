// ABOUTME: Versioned schema migrations for the SQLite store
// ABOUTME: Each pending migration runs inside its own transaction and is recorded in the migrations table

package storage

import (
	"database/sql"
	"fmt"
)

// migrations holds the ordered schema history. Entries are additive-only:
// never edit a version that has shipped, append a new one instead.
var migrations = []struct {
	version int
	sql     string
}{
	{
		version: 1,
		sql: `
		CREATE TABLE feeds (
			id TEXT PRIMARY KEY,
			url TEXT UNIQUE NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			site_url TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL,
			last_fetched_at INTEGER
		);

		CREATE INDEX idx_feeds_url ON feeds(url);

		CREATE TABLE articles (
			id TEXT PRIMARY KEY,
			feed_id TEXT NOT NULL REFERENCES feeds(id) ON DELETE CASCADE,
			guid TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			link TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			summary TEXT NOT NULL DEFAULT '',
			author TEXT NOT NULL DEFAULT '',
			published_at INTEGER,
			is_read INTEGER NOT NULL DEFAULT 0,
			is_starred INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			UNIQUE(feed_id, guid)
		);

		CREATE INDEX idx_articles_feed_id ON articles(feed_id);
		CREATE INDEX idx_articles_is_read ON articles(is_read);
		CREATE INDEX idx_articles_published_at ON articles(published_at);

		CREATE TABLE tags (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL
		);

		CREATE TABLE article_tags (
			article_id TEXT NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
			tag_id INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
			PRIMARY KEY (article_id, tag_id)
		);
		`,
	},
	{
		version: 2,
		sql: `
		CREATE VIRTUAL TABLE articles_fts USING fts5(
			title,
			content,
			content=articles,
			content_rowid=rowid
		);

		CREATE TRIGGER articles_ai AFTER INSERT ON articles BEGIN
			INSERT INTO articles_fts(rowid, title, content)
			VALUES (new.rowid, new.title, new.content);
		END;

		CREATE TRIGGER articles_ad AFTER DELETE ON articles BEGIN
			INSERT INTO articles_fts(articles_fts, rowid, title, content)
			VALUES ('delete', old.rowid, old.title, old.content);
		END;

		CREATE TRIGGER articles_au AFTER UPDATE ON articles BEGIN
			INSERT INTO articles_fts(articles_fts, rowid, title, content)
			VALUES ('delete', old.rowid, old.title, old.content);
			INSERT INTO articles_fts(rowid, title, content)
			VALUES (new.rowid, new.title, new.content);
		END;

		INSERT INTO articles_fts(rowid, title, content)
		SELECT rowid, title, content FROM articles;
		`,
	},
}

// Migrate applies all pending migrations. Each migration runs inside one
// transaction together with the version bookkeeping, so a partial migration
// can never be recorded as applied. Safe to run repeatedly.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS migrations (version INTEGER PRIMARY KEY)`); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.version] {
			continue
		}
		if err := applyMigration(db, m.version, m.sql); err != nil {
			return fmt.Errorf("apply migration %d: %w", m.version, err)
		}
	}

	return nil
}

// AppliedVersions returns the recorded migration versions in ascending order.
func AppliedVersions(db *sql.DB) ([]int, error) {
	rows, err := db.Query(`SELECT version FROM migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("query migrations: %w", err)
	}
	defer rows.Close()

	var versions []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan migration version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func appliedVersions(db *sql.DB) (map[int]bool, error) {
	versions, err := AppliedVersions(db)
	if err != nil {
		return nil, err
	}
	applied := make(map[int]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}
	return applied, nil
}

func applyMigration(db *sql.DB, version int, stmts string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(stmts); err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT INTO migrations (version) VALUES (?)`, version); err != nil {
		return fmt.Errorf("record version: %w", err)
	}

	return tx.Commit()
}

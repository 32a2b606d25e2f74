// ABOUTME: Tests for search query sanitization and the search entry point
// ABOUTME: Operator-laden input must never reach the index as syntax

package search

import (
	"path/filepath"
	"testing"

	"github.com/quillfeed/quill/internal/models"
	"github.com/quillfeed/quill/internal/storage"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single word gets prefix", "power", "power*"},
		{"last word gets prefix", "hello world", "hello world*"},
		{"whitespace collapsed", "  hello   world  ", "hello world*"},
		{"empty input", "", ""},
		{"whitespace only", "   ", ""},
		{"operators only", "***", ""},
		{"mixed operators only", `-()"+^:`, ""},
		{"operators stripped from words", `"quoted" -excluded`, "quoted excluded*"},
		{"column filter neutralized", "title:secret", "title secret*"},
		{"wildcard stripped then re-added", "foo*bar", "foo bar*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func newSearchStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "quill.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestArticlesPrefixMatch(t *testing.T) {
	store := newSearchStore(t)

	feed, err := store.UpsertFeed(models.NewFeed("https://example.com/feed.xml"))
	if err != nil {
		t.Fatal(err)
	}

	article := models.NewArticle(feed.ID, "g1")
	article.Title = "A powerful search engine"
	if _, _, err := store.UpsertArticle(article); err != nil {
		t.Fatal(err)
	}

	// "power" should match "powerful" through the trailing wildcard
	results, err := Articles(store, "power", 0)
	if err != nil {
		t.Fatalf("Articles failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result for prefix query, got %d", len(results))
	}
}

func TestArticlesEmptyQuery(t *testing.T) {
	store := newSearchStore(t)

	for _, query := range []string{"", "   ", "***", "-()"} {
		results, err := Articles(store, query, 10)
		if err != nil {
			t.Errorf("Articles(%q) returned error: %v", query, err)
		}
		if results != nil {
			t.Errorf("Articles(%q) should return no results, got %d", query, len(results))
		}
	}
}

func TestArticlesDoesNotChangeState(t *testing.T) {
	store := newSearchStore(t)

	feed, err := store.UpsertFeed(models.NewFeed("https://example.com/feed.xml"))
	if err != nil {
		t.Fatal(err)
	}
	article := models.NewArticle(feed.ID, "g1")
	article.Title = "Untouched by search"
	stored, _, err := store.UpsertArticle(article)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Articles(store, "untouched", 10); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetArticle(stored.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.IsRead || got.IsStarred {
		t.Error("searching must not change read or starred state")
	}
}

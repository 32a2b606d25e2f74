// ABOUTME: Tests for feed synchronization and refresh isolation
// ABOUTME: Exercises the merge path against httptest feed servers

package sync

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/quillfeed/quill/internal/fetch"
	"github.com/quillfeed/quill/internal/models"
	"github.com/quillfeed/quill/internal/storage"
)

func rssDocument(title string, items ...string) string {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
<title>` + title + `</title>
<link>https://example.com</link>
<description>test feed</description>`
	for _, item := range items {
		doc += item
	}
	return doc + `</channel></rss>`
}

func rssItem(guid, title string) string {
	return fmt.Sprintf(`<item><guid>%s</guid><title>%s</title><link>https://example.com/%s</link><description>body of %s</description><pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate></item>`, guid, title, guid, guid)
}

func newTestSyncer(t *testing.T) (*Syncer, *storage.SQLiteStore) {
	t.Helper()
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "quill.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return New(store, fetch.NewClient(0)), store
}

func serveFeed(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestAddFeedFetchesMetadataAndItems(t *testing.T) {
	syncer, store := newTestSyncer(t)
	server := serveFeed(t, rssDocument("Example Blog", rssItem("g1", "First"), rssItem("g2", "Second")))

	feed, added, err := syncer.AddFeed(context.Background(), server.URL, "tech")
	if err != nil {
		t.Fatalf("AddFeed failed: %v", err)
	}
	if feed.Title != "Example Blog" {
		t.Errorf("expected remote title, got %q", feed.Title)
	}
	if feed.Category != "tech" {
		t.Errorf("expected category tech, got %q", feed.Category)
	}
	if added != 2 {
		t.Errorf("expected 2 articles added, got %d", added)
	}
	if feed.LastFetchedAt == nil {
		// AddFeed returns the pre-touch row; confirm via a fresh read
		got, err := store.GetFeed(feed.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.LastFetchedAt == nil {
			t.Error("expected last fetched time to be recorded")
		}
	}
}

func TestAddFeedUnreachableURL(t *testing.T) {
	syncer, store := newTestSyncer(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	if _, _, err := syncer.AddFeed(context.Background(), server.URL, ""); err == nil {
		t.Fatal("expected error adding unreachable feed")
	}

	feeds, err := store.ListFeeds()
	if err != nil {
		t.Fatal(err)
	}
	if len(feeds) != 0 {
		t.Errorf("failed add should not persist a feed, found %d", len(feeds))
	}
}

func TestRefreshFeedAddsOnlyNewArticles(t *testing.T) {
	syncer, store := newTestSyncer(t)
	server := serveFeed(t, rssDocument("Blog", rssItem("g1", "First")))

	feed, _, err := syncer.AddFeed(context.Background(), server.URL, "")
	if err != nil {
		t.Fatal(err)
	}

	// Same document again: nothing new
	result := syncer.RefreshFeed(context.Background(), feed.ID)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Added != 0 {
		t.Errorf("re-refresh of unchanged feed added %d articles", result.Added)
	}

	count, err := store.CountUnread(nil)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected 1 article total, got %d", count)
	}
}

func TestRefreshFeedUnknownFeed(t *testing.T) {
	syncer, _ := newTestSyncer(t)

	result := syncer.RefreshFeed(context.Background(), "nonexistent")
	if len(result.Errors) == 0 {
		t.Fatal("expected an error for unknown feed")
	}
	if result.Added != 0 {
		t.Errorf("unknown feed should add nothing, got %d", result.Added)
	}
}

func TestRefreshFeedFailureLeavesLastFetchedUntouched(t *testing.T) {
	syncer, store := newTestSyncer(t)

	feed := models.NewFeed("http://127.0.0.1:1/feed.xml") // nothing listens here
	stored, err := store.UpsertFeed(feed)
	if err != nil {
		t.Fatal(err)
	}

	result := syncer.RefreshFeed(context.Background(), stored.ID)
	if len(result.Errors) == 0 {
		t.Fatal("expected fetch error")
	}

	got, err := store.GetFeed(stored.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.LastFetchedAt != nil {
		t.Error("failed fetch must not touch last_fetched_at")
	}
}

func TestRefreshAllIsolatesFailures(t *testing.T) {
	syncer, store := newTestSyncer(t)

	good := serveFeed(t, rssDocument("Good", rssItem("g1", "Works")))
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer bad.Close()

	goodFeed, err := store.UpsertFeed(models.NewFeed(good.URL))
	if err != nil {
		t.Fatal(err)
	}
	badFeed, err := store.UpsertFeed(models.NewFeed(bad.URL))
	if err != nil {
		t.Fatal(err)
	}

	results, err := syncer.RefreshAll(context.Background())
	if err != nil {
		t.Fatalf("RefreshAll failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	byFeed := make(map[string]Result)
	for _, r := range results {
		byFeed[r.FeedID] = r
	}

	if got := byFeed[goodFeed.ID]; got.Added != 1 || len(got.Errors) != 0 {
		t.Errorf("good feed: added=%d errors=%v", got.Added, got.Errors)
	}
	if got := byFeed[badFeed.ID]; len(got.Errors) == 0 {
		t.Error("bad feed should report an error")
	}

	// The failing feed must not block the healthy one's bookkeeping
	refreshed, err := store.GetFeed(goodFeed.ID)
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.LastFetchedAt == nil {
		t.Error("good feed should have last_fetched_at set")
	}
}

func TestRefreshAllEmptyStore(t *testing.T) {
	syncer, _ := newTestSyncer(t)

	results, err := syncer.RefreshAll(context.Background())
	if err != nil {
		t.Fatalf("RefreshAll failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestFetchAndNormalizeParseFailure(t *testing.T) {
	syncer, _ := newTestSyncer(t)
	server := serveFeed(t, "this is not a feed document")

	if _, err := syncer.FetchAndNormalize(context.Background(), server.URL); err == nil {
		t.Fatal("expected parse error for non-feed body")
	}
}

// ABOUTME: Feed synchronization core: fetch, normalize, and merge remote feeds
// ABOUTME: Isolates failures per feed and per item so bulk refreshes never abort

package sync

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/quillfeed/quill/internal/fetch"
	"github.com/quillfeed/quill/internal/models"
	"github.com/quillfeed/quill/internal/parse"
	"github.com/quillfeed/quill/internal/storage"
)

// defaultConcurrency bounds simultaneous feed fetches during RefreshAll.
const defaultConcurrency = 8

// Result reports the outcome of refreshing one feed. Errors holds per-feed
// and per-item failure messages; a non-empty Errors never prevents other
// feeds from refreshing.
type Result struct {
	FeedID string
	Added  int
	Errors []string
}

// Syncer merges remote feed state into local storage.
type Syncer struct {
	store       storage.Store
	client      *fetch.Client
	concurrency int
}

// New creates a Syncer over the given store and fetch client.
func New(store storage.Store, client *fetch.Client) *Syncer {
	return &Syncer{
		store:       store,
		client:      client,
		concurrency: defaultConcurrency,
	}
}

// Client exposes the fetch client for collaborators like feed discovery.
func (s *Syncer) Client() *fetch.Client {
	return s.client
}

// FetchAndNormalize fetches a feed URL and parses it into the normalized
// shape. Network and parse failures propagate to the caller; this is the
// single-feed boundary with no partial-success semantics.
func (s *Syncer) FetchAndNormalize(ctx context.Context, url string) (*parse.Feed, error) {
	body, err := s.client.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	remote, err := parse.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", url, err)
	}
	return remote, nil
}

// RefreshFeed fetches one feed and upserts its items. It never returns an
// error: unknown feeds, fetch failures, and per-item upsert failures are
// all recorded in the Result. The feed's last-fetched timestamp is only
// touched after a successful fetch, even if some items failed to persist.
func (s *Syncer) RefreshFeed(ctx context.Context, feedID string) Result {
	result := Result{FeedID: feedID}

	feed, err := s.store.GetFeed(feedID)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	remote, err := s.FetchAndNormalize(ctx, feed.URL)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	added, errs := s.mergeItems(feed.ID, remote.Items)
	result.Added = added
	result.Errors = append(result.Errors, errs...)

	if err := s.store.TouchFeedFetched(feed.ID, time.Now()); err != nil {
		result.Errors = append(result.Errors, err.Error())
	}

	return result
}

// RefreshAll refreshes every subscribed feed concurrently and returns one
// Result per feed. Ordering follows the feed listing, not fetch completion.
func (s *Syncer) RefreshAll(ctx context.Context) ([]Result, error) {
	feeds, err := s.store.ListFeeds()
	if err != nil {
		return nil, fmt.Errorf("list feeds: %w", err)
	}

	results := make([]Result, len(feeds))
	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i, feed := range feeds {
		g.Go(func() error {
			results[i] = s.RefreshFeed(ctx, feed.ID)
			return nil
		})
	}

	// Workers only record errors in their Result, so this cannot fail.
	g.Wait()

	return results, nil
}

// AddFeed subscribes to a feed URL: fetch and normalize (failures propagate
// to the caller — there is no partial success when adding one feed), upsert
// the feed with its remote metadata, then merge its items. Re-adding an
// existing URL updates metadata in place. Returns the stored feed and the
// number of articles added.
func (s *Syncer) AddFeed(ctx context.Context, url, category string) (*models.Feed, int, error) {
	remote, err := s.FetchAndNormalize(ctx, url)
	if err != nil {
		return nil, 0, err
	}

	feed := models.NewFeed(url)
	feed.Title = remote.Title
	feed.Description = remote.Description
	feed.SiteURL = remote.SiteURL
	feed.Category = category

	stored, err := s.store.UpsertFeed(feed)
	if err != nil {
		return nil, 0, fmt.Errorf("save feed: %w", err)
	}

	added, errs := s.mergeItems(stored.ID, remote.Items)
	if err := s.store.TouchFeedFetched(stored.ID, time.Now()); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return stored, added, fmt.Errorf("saved feed with %d item error(s): %s", len(errs), errs[0])
	}

	return stored, added, nil
}

// mergeItems upserts normalized items for a feed, isolating failures per
// item. Returns the number of newly inserted articles and any item errors.
func (s *Syncer) mergeItems(feedID string, items []parse.Item) (int, []string) {
	var added int
	var errs []string

	for _, item := range items {
		article := models.NewArticle(feedID, item.GUID)
		article.Title = item.Title
		article.Link = item.Link
		article.Content = item.Content
		article.Summary = item.Summary
		article.Author = item.Author
		article.PublishedAt = item.PublishedAt

		_, inserted, err := s.store.UpsertArticle(article)
		if err != nil {
			errs = append(errs, fmt.Sprintf("item %q: %v", item.GUID, err))
			continue
		}
		if inserted {
			added++
		}
	}

	return added, errs
}

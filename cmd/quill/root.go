// ABOUTME: Root cobra command and global flags
// ABOUTME: Opens the store and wires the syncer; bare invocation launches the TUI

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quillfeed/quill/internal/config"
	"github.com/quillfeed/quill/internal/fetch"
	"github.com/quillfeed/quill/internal/models"
	"github.com/quillfeed/quill/internal/storage"
	feedsync "github.com/quillfeed/quill/internal/sync"
	"github.com/quillfeed/quill/internal/tui"
)

var (
	dbPath string

	cfg    *config.Config
	store  *storage.SQLiteStore
	syncer *feedsync.Syncer
)

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Terminal RSS/Atom feed reader",
	Long: `quill is a terminal feed reader: subscribe to RSS/Atom feeds, read and
star articles, and search everything you have fetched — all stored locally.

Run without a subcommand to open the interactive reader.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		path := dbPath
		if path == "" {
			path = cfg.DBPath()
		}

		store, err = storage.NewSQLiteStore(path)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}

		client := fetch.NewClient(cfg.FetchTimeout())
		syncer = feedsync.New(store, client)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			if err := store.Close(); err != nil {
				return fmt.Errorf("close store: %w", err)
			}
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(store, syncer, cfg.GetGlamourStyle(), cfg.GetSearchLimit())
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: data dir from config)")
}

// resolveFeed finds a feed by URL, exact ID, or ID prefix.
func resolveFeed(ref string) (*models.Feed, error) {
	if feed, err := store.GetFeedByURL(ref); err == nil {
		return feed, nil
	}
	if feed, err := store.GetFeed(ref); err == nil {
		return feed, nil
	}

	feeds, err := store.ListFeeds()
	if err != nil {
		return nil, err
	}
	var matches []*models.Feed
	for _, f := range feeds {
		if strings.HasPrefix(f.ID, ref) {
			matches = append(matches, f)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	if len(matches) > 1 {
		return nil, fmt.Errorf("ambiguous reference %q matches %d feeds", ref, len(matches))
	}
	return nil, fmt.Errorf("feed not found: %s", ref)
}

// resolveArticle finds an article by exact ID or ID prefix.
func resolveArticle(ref string) (*models.Article, error) {
	if article, err := store.GetArticle(ref); err == nil {
		return article, nil
	}
	return store.GetArticleByPrefix(ref)
}

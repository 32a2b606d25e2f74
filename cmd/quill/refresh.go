// ABOUTME: Refresh command to fetch new articles from subscribed feeds
// ABOUTME: Bulk refresh runs concurrently with per-feed isolation and a colored summary

package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	feedsync "github.com/quillfeed/quill/internal/sync"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh [url-or-id]",
	Short: "Fetch new articles",
	Long: `Fetch new articles from all subscribed feeds, or one feed if given.

Feeds refresh concurrently and independently: one unreachable source never
aborts the rest, it just shows up in the summary as an error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var results []feedsync.Result
		if len(args) == 1 {
			feed, err := resolveFeed(args[0])
			if err != nil {
				return err
			}
			results = []feedsync.Result{syncer.RefreshFeed(ctx, feed.ID)}
		} else {
			var err error
			results, err = syncer.RefreshAll(ctx)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Println("No feeds. Add one with 'quill add <url>'")
				return nil
			}
		}

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		totalNew := 0
		totalErrors := 0
		for _, r := range results {
			name := r.FeedID
			if feed, err := store.GetFeed(r.FeedID); err == nil {
				name = feed.DisplayName()
			}

			switch {
			case len(r.Errors) > 0:
				fmt.Printf("%s %s: %s\n", red("x"), name, r.Errors[0])
				totalErrors++
			case r.Added > 0:
				fmt.Printf("%s %s: %d new\n", green("v"), name, r.Added)
			default:
				fmt.Printf("%s %s %s\n", green("v"), name, faint("no new articles"))
			}
			totalNew += r.Added
		}

		fmt.Println()
		fmt.Printf("Summary: %d feed(s) refreshed\n", len(results))
		if totalNew > 0 {
			fmt.Printf("  %s %d new article(s)\n", green("v"), totalNew)
		}
		if totalErrors > 0 {
			fmt.Printf("  %s %d error(s)\n", red("x"), totalErrors)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

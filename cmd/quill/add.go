// ABOUTME: Add command to subscribe to a feed by URL
// ABOUTME: Autodiscovers feeds from HTML pages and fetches items immediately

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/quillfeed/quill/internal/discover"
)

var addCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Subscribe to a feed",
	Long: `Subscribe to an RSS/Atom feed by URL and fetch its articles.

If the URL points at an HTML page rather than a feed document, quill looks
for an advertised feed link on the page. Re-adding an existing URL updates
the stored feed metadata instead of duplicating the subscription.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		ctx := context.Background()

		feedURL, err := discover.Resolve(ctx, syncer.Client(), args[0])
		if err != nil {
			if errors.Is(err, discover.ErrNoFeedFound) {
				return fmt.Errorf("no feed found at %s", args[0])
			}
			return err
		}

		feed, added, err := syncer.AddFeed(ctx, feedURL, category)
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s subscribed to %s (%d article(s))\n", green("v"), feed.DisplayName(), added)
		if feedURL != args[0] {
			fmt.Printf("  discovered feed: %s\n", feedURL)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringP("category", "c", "", "category label for the feed")
}

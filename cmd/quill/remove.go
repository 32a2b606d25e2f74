// ABOUTME: Remove command to unsubscribe from a feed
// ABOUTME: Deletes the feed row; articles and tag associations cascade away

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <url-or-id>",
	Aliases: []string{"rm"},
	Short:   "Unsubscribe from a feed",
	Long:    "Unsubscribe from a feed and delete all of its articles.",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		feed, err := resolveFeed(args[0])
		if err != nil {
			return err
		}

		if err := store.DeleteFeed(feed.ID); err != nil {
			return fmt.Errorf("remove feed: %w", err)
		}

		fmt.Printf("removed %s\n", feed.DisplayName())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

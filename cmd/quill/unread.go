// ABOUTME: Unread command printing the count of unread articles
// ABOUTME: Suitable for status bars; optionally scoped to a single feed

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var unreadCmd = &cobra.Command{
	Use:   "unread",
	Short: "Count unread articles",
	RunE: func(cmd *cobra.Command, args []string) error {
		feedRef, _ := cmd.Flags().GetString("feed")

		var feedID *string
		if feedRef != "" {
			feed, err := resolveFeed(feedRef)
			if err != nil {
				return err
			}
			feedID = &feed.ID
		}

		count, err := store.CountUnread(feedID)
		if err != nil {
			return fmt.Errorf("count unread: %w", err)
		}
		fmt.Println(count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unreadCmd)
	unreadCmd.Flags().StringP("feed", "f", "", "count only this feed (URL or id prefix)")
}

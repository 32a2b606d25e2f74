// ABOUTME: Feeds command listing subscriptions with unread counts
// ABOUTME: Shows short id, unread count, title, category, and last fetch time

package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var feedsCmd = &cobra.Command{
	Use:   "feeds",
	Short: "List subscribed feeds",
	Long:  "List all subscribed feeds with per-feed unread article counts.",
	RunE: func(cmd *cobra.Command, args []string) error {
		summaries, err := store.ListFeedsWithUnread()
		if err != nil {
			return fmt.Errorf("list feeds: %w", err)
		}

		if len(summaries) == 0 {
			fmt.Println("No feeds. Add one with 'quill add <url>'")
			return nil
		}

		faint := color.New(color.Faint).SprintFunc()
		bold := color.New(color.Bold).SprintFunc()

		for _, s := range summaries {
			id := s.Feed.ID
			if len(id) > 8 {
				id = id[:8]
			}
			fmt.Print(faint(id), " ")

			if s.UnreadCount > 0 {
				fmt.Printf("%s ", bold(fmt.Sprintf("%3d", s.UnreadCount)))
			} else {
				fmt.Print("  - ")
			}

			fmt.Print(s.Feed.DisplayName())
			if s.Feed.Category != "" {
				fmt.Printf(" %s", faint("["+s.Feed.Category+"]"))
			}
			if s.Feed.LastFetchedAt != nil {
				fmt.Printf(" %s", faint("fetched "+relativeTime(*s.Feed.LastFetchedAt)))
			} else {
				fmt.Printf(" %s", faint("never fetched"))
			}
			fmt.Println()
		}
		return nil
	},
}

// relativeTime renders a compact "3h ago" style timestamp.
func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func init() {
	rootCmd.AddCommand(feedsCmd)
}

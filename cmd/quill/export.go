// ABOUTME: Export command writing subscriptions to an OPML file
// ABOUTME: Categories become OPML folder outlines; default output goes to stdout

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillfeed/quill/internal/opml"
)

var exportCmd = &cobra.Command{
	Use:   "export [file.opml]",
	Short: "Export feeds to OPML",
	Long:  "Export all subscriptions as OPML. Writes to stdout unless a file is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		feeds, err := store.ListFeeds()
		if err != nil {
			return fmt.Errorf("list feeds: %w", err)
		}

		doc := &opml.Document{Title: "quill subscriptions"}
		for _, f := range feeds {
			doc.Feeds = append(doc.Feeds, opml.Feed{
				URL:      f.URL,
				Title:    f.DisplayName(),
				Category: f.Category,
			})
		}

		if len(args) == 1 {
			if err := doc.WriteFile(args[0]); err != nil {
				return fmt.Errorf("write opml: %w", err)
			}
			fmt.Printf("Exported %d feed(s) to %s\n", len(doc.Feeds), args[0])
			return nil
		}
		return doc.Write(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

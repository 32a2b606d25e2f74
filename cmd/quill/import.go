// ABOUTME: Import command for subscribing to feeds from an OPML file
// ABOUTME: Skips already-subscribed URLs and reports added, skipped, and error counts

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/quillfeed/quill/internal/models"
	"github.com/quillfeed/quill/internal/opml"
)

var importCmd = &cobra.Command{
	Use:   "import <file.opml>",
	Short: "Import feeds from an OPML file",
	Long: `Import feed subscriptions from an OPML file.

Feeds already subscribed (matched by URL) are skipped. Folder names in the
OPML become feed categories. Imported feeds are not fetched; run
'quill refresh' afterwards to pull their articles.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := opml.ParseFile(args[0])
		if err != nil {
			return fmt.Errorf("parse opml: %w", err)
		}

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		added, skipped, errored := 0, 0, 0
		for _, f := range doc.Feeds {
			if f.URL == "" {
				continue
			}
			if _, err := store.GetFeedByURL(f.URL); err == nil {
				fmt.Printf("%s %s %s\n", faint("-"), f.URL, faint("already subscribed"))
				skipped++
				continue
			}

			feed := models.NewFeed(f.URL)
			feed.Title = f.Title
			feed.Category = f.Category
			if _, err := store.UpsertFeed(feed); err != nil {
				fmt.Printf("%s %s: %v\n", red("x"), f.URL, err)
				errored++
				continue
			}
			fmt.Printf("%s %s\n", green("v"), feed.DisplayName())
			added++
		}

		fmt.Println()
		fmt.Printf("Imported %d feed(s), skipped %d, %d error(s)\n", added, skipped, errored)
		if added > 0 {
			fmt.Println("Run 'quill refresh' to fetch articles")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

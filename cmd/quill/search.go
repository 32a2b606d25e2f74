// ABOUTME: Search command for full-text search over article titles and content
// ABOUTME: Sanitizes user input and prints ranked hits with feed attribution

package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/quillfeed/quill/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search articles",
	Long: `Full-text search over article titles and content.

The last word of the query matches as a prefix, so "quill search power"
finds "powerful". FTS operator characters in the query are ignored.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		if limit <= 0 {
			limit = cfg.GetSearchLimit()
		}

		results, err := search.Articles(store, strings.Join(args, " "), limit)
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}

		if len(results) == 0 {
			fmt.Println("No matches")
			return nil
		}

		faint := color.New(color.Faint).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		for _, r := range results {
			id := r.ID
			if len(id) > 8 {
				id = id[:8]
			}
			fmt.Print(faint(id), " ")

			if r.IsStarred {
				fmt.Print(yellow("★ "))
			} else {
				fmt.Print("  ")
			}

			title := r.Title
			if title == "" {
				title = "(untitled)"
			}
			fmt.Printf("%s %s", title, faint("("+r.FeedTitle+")"))
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntP("limit", "n", 0, "max results (default from config)")
}

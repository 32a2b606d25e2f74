// ABOUTME: List command for viewing articles with filtering options
// ABOUTME: Displays read/starred status, title, and published date with color formatting

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/quillfeed/quill/internal/models"
	"github.com/quillfeed/quill/internal/storage"
	"github.com/quillfeed/quill/internal/timeutil"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List articles",
	Long:    "List articles with optional filtering by feed, tag, starred, and read status",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		starred, _ := cmd.Flags().GetBool("starred")
		feedRef, _ := cmd.Flags().GetString("feed")
		tagName, _ := cmd.Flags().GetString("tag")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")
		today, _ := cmd.Flags().GetBool("today")
		yesterday, _ := cmd.Flags().GetBool("yesterday")
		week, _ := cmd.Flags().GetBool("week")

		var articles []*models.Article
		var err error

		if tagName != "" {
			articles, err = store.ListArticlesByTag(tagName)
			if err != nil {
				return fmt.Errorf("list articles by tag: %w", err)
			}
		} else {
			filter := &storage.ArticleFilter{
				UnreadOnly:  !all && !starred,
				StarredOnly: starred,
				Limit:       &limit,
				Offset:      &offset,
			}

			if feedRef != "" {
				feed, err := resolveFeed(feedRef)
				if err != nil {
					return err
				}
				filter.FeedID = &feed.ID
			}

			if today {
				s := timeutil.StartOfToday()
				filter.Since = &s
			} else if yesterday {
				s := timeutil.StartOfYesterday()
				u := timeutil.EndOfYesterday()
				filter.Since = &s
				filter.Until = &u
			} else if week {
				s := timeutil.StartOfWeek()
				filter.Since = &s
			}

			articles, err = store.ListArticles(filter)
			if err != nil {
				return fmt.Errorf("list articles: %w", err)
			}
		}

		if len(articles) == 0 {
			fmt.Println("No articles found")
			return nil
		}

		faint := color.New(color.Faint).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		for _, a := range articles {
			id := a.ID
			if len(id) > 8 {
				id = id[:8]
			}
			fmt.Print(faint(id), " ")

			if a.IsRead {
				fmt.Print("  ")
			} else {
				fmt.Print("● ")
			}
			if a.IsStarred {
				fmt.Print(yellow("★ "))
			} else {
				fmt.Print("  ")
			}

			title := a.Title
			if title == "" {
				title = "(untitled)"
			}
			fmt.Print(title)

			if a.PublishedAt != nil {
				fmt.Print(" ", faint(a.PublishedAt.Format("02 Jan 06 15:04")))
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("all", "a", false, "show all articles including read")
	listCmd.Flags().BoolP("starred", "s", false, "show only starred articles")
	listCmd.Flags().StringP("feed", "f", "", "filter by feed URL or id prefix")
	listCmd.Flags().StringP("tag", "t", "", "filter by tag name")
	listCmd.Flags().IntP("limit", "n", 20, "max articles to show")
	listCmd.Flags().IntP("offset", "o", 0, "number of articles to skip")
	listCmd.Flags().Bool("today", false, "show only today's articles")
	listCmd.Flags().Bool("yesterday", false, "show only yesterday's articles")
	listCmd.Flags().Bool("week", false, "show only this week's articles")

	listCmd.MarkFlagsMutuallyExclusive("today", "yesterday", "week")
	listCmd.MarkFlagsMutuallyExclusive("feed", "tag")
	listCmd.MarkFlagsMutuallyExclusive("all", "starred")
}

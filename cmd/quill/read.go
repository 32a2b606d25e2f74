// ABOUTME: Read command rendering a single article in the terminal
// ABOUTME: Converts HTML bodies to Markdown, renders with glamour, and marks the article read

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/quillfeed/quill/internal/content"
)

var readCmd = &cobra.Command{
	Use:   "read <article-id>",
	Short: "Read an article",
	Long:  "Render an article's content in the terminal and mark it as read.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		noMark, _ := cmd.Flags().GetBool("no-mark")

		article, err := resolveArticle(args[0])
		if err != nil {
			return err
		}

		faint := color.New(color.Faint).SprintFunc()
		bold := color.New(color.Bold).SprintFunc()

		title := article.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Println(bold(title))

		var meta []string
		if feed, err := store.GetFeed(article.FeedID); err == nil {
			meta = append(meta, feed.DisplayName())
		}
		if article.Author != "" {
			meta = append(meta, article.Author)
		}
		if article.PublishedAt != nil {
			meta = append(meta, article.PublishedAt.Format("02 Jan 2006 15:04"))
		}
		if len(meta) > 0 {
			fmt.Println(faint(strings.Join(meta, " · ")))
		}
		if tags, err := store.ListArticleTags(article.ID); err == nil && len(tags) > 0 {
			names := make([]string, len(tags))
			for i, t := range tags {
				names[i] = "#" + t.Name
			}
			fmt.Println(faint(strings.Join(names, " ")))
		}
		fmt.Println()

		body := article.Content
		if body == "" {
			body = article.Summary
		}
		if body == "" {
			fmt.Println(faint("(no content fetched; open the link below)"))
		} else {
			markdown := content.ToMarkdown(body)
			renderer, err := glamour.NewTermRenderer(
				glamour.WithStylePath(cfg.GetGlamourStyle()),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				fmt.Println(markdown)
			} else if rendered, err := renderer.Render(markdown); err != nil {
				fmt.Println(markdown)
			} else {
				fmt.Print(rendered)
			}
		}

		if article.Link != "" {
			fmt.Println()
			fmt.Println(faint(article.Link))
		}

		if !noMark && !article.IsRead {
			if err := store.MarkArticleRead(article.ID, true); err != nil {
				return fmt.Errorf("mark read: %w", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().Bool("no-mark", false, "do not mark the article as read")
}

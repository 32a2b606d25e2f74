// ABOUTME: Tag command group for labeling articles
// ABOUTME: Subcommands add and remove tags and list tags with usage counts

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage article tags",
	Long:  "Add tags to articles, remove them, and list tags with usage counts.",
}

var tagAddCmd = &cobra.Command{
	Use:   "add <article-id> <tag>...",
	Short: "Tag an article",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		article, err := resolveArticle(args[0])
		if err != nil {
			return err
		}

		for _, name := range args[1:] {
			tag, err := store.GetOrCreateTag(name)
			if err != nil {
				return fmt.Errorf("create tag %q: %w", name, err)
			}
			if err := store.TagArticle(article.ID, tag.ID); err != nil {
				return fmt.Errorf("tag article: %w", err)
			}
		}

		fmt.Printf("tagged %s\n", article.Title)
		return nil
	},
}

var tagRemoveCmd = &cobra.Command{
	Use:     "remove <article-id> <tag>...",
	Aliases: []string{"rm"},
	Short:   "Remove tags from an article",
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		article, err := resolveArticle(args[0])
		if err != nil {
			return err
		}

		for _, name := range args[1:] {
			tag, err := store.GetOrCreateTag(name)
			if err != nil {
				return fmt.Errorf("look up tag %q: %w", name, err)
			}
			if err := store.UntagArticle(article.ID, tag.ID); err != nil {
				return fmt.Errorf("untag article: %w", err)
			}
		}

		fmt.Printf("untagged %s\n", article.Title)
		return nil
	},
}

var tagListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		tags, err := store.ListTags()
		if err != nil {
			return fmt.Errorf("list tags: %w", err)
		}

		if len(tags) == 0 {
			fmt.Println("No tags")
			return nil
		}

		faint := color.New(color.Faint).SprintFunc()
		for _, t := range tags {
			fmt.Printf("%s %s\n", t.Tag.Name, faint(fmt.Sprintf("(%d)", t.Count)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tagCmd)
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagRemoveCmd)
	tagCmd.AddCommand(tagListCmd)
}

// ABOUTME: Star command toggling an article's starred flag
// ABOUTME: Also hosts mark/unmark for flipping read status from the CLI

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var starCmd = &cobra.Command{
	Use:   "star <article-id>",
	Short: "Star or unstar an article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		article, err := resolveArticle(args[0])
		if err != nil {
			return err
		}

		starred, err := store.ToggleArticleStarred(article.ID)
		if err != nil {
			return fmt.Errorf("toggle starred: %w", err)
		}

		yellow := color.New(color.FgYellow).SprintFunc()
		if starred {
			fmt.Printf("%s %s\n", yellow("★"), article.Title)
		} else {
			fmt.Printf("unstarred %s\n", article.Title)
		}
		return nil
	},
}

var markCmd = &cobra.Command{
	Use:   "mark <article-id>",
	Short: "Mark an article as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setRead(args[0], true)
	},
}

var unmarkCmd = &cobra.Command{
	Use:   "unmark <article-id>",
	Short: "Mark an article as unread",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setRead(args[0], false)
	},
}

func setRead(ref string, read bool) error {
	article, err := resolveArticle(ref)
	if err != nil {
		return err
	}
	if err := store.MarkArticleRead(article.ID, read); err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	if read {
		fmt.Printf("marked read: %s\n", article.Title)
	} else {
		fmt.Printf("marked unread: %s\n", article.Title)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(starCmd)
	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(unmarkCmd)
}

// ABOUTME: Migrate command showing applied schema versions
// ABOUTME: Migrations run automatically on open; this surfaces what has been applied

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillfeed/quill/internal/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Show database schema status",
	Long: `Show applied schema migrations.

Pending migrations run automatically whenever quill opens its database,
so by the time this prints, the schema is current.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		versions, err := storage.AppliedVersions(store.DB())
		if err != nil {
			return fmt.Errorf("read migrations: %w", err)
		}

		for _, v := range versions {
			fmt.Printf("applied: version %d\n", v)
		}
		fmt.Printf("%d migration(s) applied, schema up to date\n", len(versions))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

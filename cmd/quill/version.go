// ABOUTME: Version command printing the quill release version
// ABOUTME: The version string is overridable at build time via ldflags

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the quill version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("quill %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

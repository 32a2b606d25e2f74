// ABOUTME: Entry point for the quill CLI
// ABOUTME: Initializes and executes the root command

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

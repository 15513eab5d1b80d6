// ABOUTME: Entry point for the agriai CLI
// ABOUTME: Command-line client for the AgriAI agricultural assistant

package main

import (
	"fmt"
	"os"

	"github.com/Gitesh-2005/AgriAI/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

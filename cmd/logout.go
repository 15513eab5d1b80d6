// ABOUTME: Logout command for the agriai CLI
// ABOUTME: Clears the session and its persisted credentials

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out of the AgriAI backend",
	Long:  `Clear the stored session. Safe to run when not logged in.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runLogout(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the session and returns exit code
func runLogout(w io.Writer) int {
	cfg := loadConfig()
	store := openSession(cfg)

	wasLoggedIn := store.IsAuthenticated()
	store.Clear()

	if wasLoggedIn {
		fmt.Fprintln(w, "Logged out.")
	} else {
		fmt.Fprintln(w, "Not logged in.")
	}
	return 0
}

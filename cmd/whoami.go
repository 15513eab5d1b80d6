// ABOUTME: Whoami command for the agriai CLI
// ABOUTME: Shows the current user's profile from /auth/me

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gitesh-2005/AgriAI/internal/client"
	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Long:  `Fetch and display the profile of the current session from the backend.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami fetches the current profile and returns exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	cfg := loadConfig()
	store := openSession(cfg)

	if !store.IsAuthenticated() {
		fmt.Fprintln(w, "Not logged in.")
		return 1
	}

	c := newClient(cfg, store)
	profile, err := c.CurrentUser(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatWhoamiJSON(profile))
	} else {
		fmt.Fprintln(w, formatWhoamiHuman(profile))
	}
	return 0
}

// formatWhoamiHuman formats the profile for human readability
func formatWhoamiHuman(p *client.UserProfile) string {
	out := fmt.Sprintf(`Name:      %s
Email:     %s
Type:      %s
Language:  %s`, p.FullName, p.Email, p.UserType, p.LanguagePreference)
	if p.Location != "" {
		out += fmt.Sprintf("\nLocation:  %s", p.Location)
	}
	if p.FarmSize != "" {
		out += fmt.Sprintf("\nFarm size: %s", p.FarmSize)
	}
	return out
}

// formatWhoamiJSON formats the profile as JSON
func formatWhoamiJSON(p *client.UserProfile) string {
	data, _ := json.MarshalIndent(p, "", "  ")
	return string(data)
}

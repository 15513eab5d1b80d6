// ABOUTME: Root command for the agriai CLI
// ABOUTME: Handles global flags and wires config, session store, and API client

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/Gitesh-2005/AgriAI/internal/client"
	"github.com/Gitesh-2005/AgriAI/internal/config"
	"github.com/Gitesh-2005/AgriAI/internal/session"
	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "agriai",
	Short: "CLI for the AgriAI agriculture assistant",
	Long: `agriai is a command-line client for the AgriAI backend.

It covers account login and registration, the multi-agent chat assistant,
agent status, weather lookups, and speech transcription.

Environment Variables:
  AGRIAI_API_URL     Backend API URL (default: http://localhost:8000)
  AGRIAI_CONFIG_DIR  Where session credentials are stored
  AGRIAI_LANGUAGE    Default chat language (default: en)`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides AGRIAI_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// loadConfig loads configuration with the --api-url flag taking priority
func loadConfig() *config.Config {
	cfg := config.Load()
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	return cfg
}

// openSession restores the persisted session, if any
func openSession(cfg *config.Config) *session.Store {
	store := session.NewStore(cfg.ConfigDir)
	store.Load()
	return store
}

// newClient builds the API client over the session store. Any authenticated
// call answered with 401 clears the session and tells the user to log in
// again; the failing command still reports its own error.
func newClient(cfg *config.Config, store *session.Store) *client.Client {
	return client.New(cfg.APIURL,
		client.WithTokenSource(store),
		client.WithTimeout(time.Duration(cfg.HTTPTimeout)*time.Second),
		client.WithSessionExpiredHandler(func() {
			store.Clear()
			fmt.Fprintln(os.Stderr, "Session expired. Please run 'agriai login' again.")
		}),
	)
}

// ABOUTME: Health command for the agriai CLI
// ABOUTME: Checks backend connectivity and dependency status

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

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Long:  `Check connectivity to the AgriAI backend and the status of its Redis and database dependencies.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHealth(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth executes the health check and returns exit code.
// Exit code 1 means the backend answered but reported itself unhealthy.
func runHealth(ctx context.Context, w io.Writer) int {
	cfg := loadConfig()
	c := client.New(cfg.APIURL)

	status, err := c.Health(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatHealthJSON(cfg.APIURL, status))
	} else {
		fmt.Fprintln(w, formatHealthHuman(cfg.APIURL, status))
	}

	if status.Status != "healthy" {
		return 1
	}
	return 0
}

// formatHealthHuman formats the health status for human readability
func formatHealthHuman(url string, status *client.HealthStatus) string {
	out := fmt.Sprintf("Backend:   %s\nStatus:    %s", url, status.Status)
	if status.Redis != "" {
		out += fmt.Sprintf("\nRedis:     %s", status.Redis)
	}
	if status.Database != "" {
		out += fmt.Sprintf("\nDatabase:  %s", status.Database)
	}
	if status.Error != "" {
		out += fmt.Sprintf("\nError:     %s", status.Error)
	}
	return out
}

// formatHealthJSON formats the health status as JSON
func formatHealthJSON(url string, status *client.HealthStatus) string {
	output := map[string]interface{}{
		"backend":  url,
		"status":   status.Status,
		"redis":    status.Redis,
		"database": status.Database,
	}
	if status.Error != "" {
		output["error"] = status.Error
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}

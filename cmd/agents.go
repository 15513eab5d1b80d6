// ABOUTME: Agents command for the agriai CLI
// ABOUTME: Shows agent capabilities and health, fetched concurrently

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/Gitesh-2005/AgriAI/internal/client"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "Show assistant agents and their health",
	Long:  `List the orchestrator's agents with their capabilities and current health status.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAgents(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(agentsCmd)
}

// agentStatus merges one agent's capability and health data
type agentStatus struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Capabilities []string `json:"capabilities,omitempty"`
	Health       string   `json:"health"`
}

// runAgents fetches capabilities and health in parallel and returns exit code.
// Exit code 1 means one or more agents are unhealthy.
func runAgents(ctx context.Context, w io.Writer) int {
	cfg := loadConfig()
	store := openSession(cfg)
	c := newClient(cfg, store)

	var (
		caps   map[string]client.AgentCapability
		health map[string]string
		list   *client.AgentList
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		caps, err = c.AgentCapabilities(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		health, err = c.AgentHealth(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		list, err = c.ListAgents(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	statuses := mergeAgentStatus(caps, health, list)

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(statuses, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatAgentsHuman(statuses))
	}

	for _, s := range statuses {
		if s.Health != "healthy" {
			return 1
		}
	}
	return 0
}

// mergeAgentStatus joins the three sources into a sorted slice. Agents present
// in any source appear; the registry's descriptions fill gaps left by the
// capabilities map.
func mergeAgentStatus(caps map[string]client.AgentCapability, health map[string]string, list *client.AgentList) []agentStatus {
	names := make(map[string]bool)
	for name := range caps {
		names[name] = true
	}
	for name := range health {
		names[name] = true
	}
	if list != nil {
		for _, name := range list.Agents {
			names[name] = true
		}
	}

	statuses := make([]agentStatus, 0, len(names))
	for name := range names {
		s := agentStatus{
			Name:         name,
			Description:  caps[name].Description,
			Capabilities: caps[name].Capabilities,
			Health:       health[name],
		}
		if s.Description == "" && list != nil {
			s.Description = list.Descriptions[name]
		}
		if s.Health == "" {
			s.Health = "unknown"
		}
		statuses = append(statuses, s)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Name < statuses[j].Name })
	return statuses
}

// formatAgentsHuman formats agent statuses as an aligned table
func formatAgentsHuman(statuses []agentStatus) string {
	if len(statuses) == 0 {
		return "No agents reported."
	}

	nameWidth := 0
	for _, s := range statuses {
		if len(s.Name) > nameWidth {
			nameWidth = len(s.Name)
		}
	}

	var b strings.Builder
	for _, s := range statuses {
		marker := "✓"
		if s.Health != "healthy" {
			marker = "✗"
		}
		fmt.Fprintf(&b, "%s %-*s  %-9s  %s\n", marker, nameWidth, s.Name, s.Health, s.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

// ABOUTME: History and sessions commands for the agriai CLI
// ABOUTME: Lists past conversations and chat sessions

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Gitesh-2005/AgriAI/internal/client"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history <session-id>",
	Short: "Show the conversation for a chat session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHistory(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List your chat sessions",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSessions(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(sessionsCmd)
}

// runHistory fetches one session's conversation and returns exit code
func runHistory(ctx context.Context, w io.Writer, sessionID string) int {
	cfg := loadConfig()
	store := openSession(cfg)

	if !store.IsAuthenticated() {
		fmt.Fprintln(w, "Not logged in. Run 'agriai login' first.")
		return 1
	}

	c := newClient(cfg, store)
	entries, err := c.ChatHistory(ctx, sessionID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(entries, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatHistoryHuman(sessionID, entries))
	}
	return 0
}

// formatHistoryHuman renders entries oldest first for reading order
func formatHistoryHuman(sessionID string, entries []client.ConversationEntry) string {
	if len(entries) == 0 {
		return fmt.Sprintf("No messages in session %s.", sessionID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Session %s (%d messages)\n", sessionID, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		fmt.Fprintf(&b, "\nYou:    %s\n", e.Query)
		fmt.Fprintf(&b, "AgriAI: %s\n", e.Response)
		fmt.Fprintf(&b, "        [%s, confidence %.0f%%]\n", e.AgentUsed, e.Confidence*100)
	}
	return strings.TrimRight(b.String(), "\n")
}

// runSessions lists chat sessions and returns exit code
func runSessions(ctx context.Context, w io.Writer) int {
	cfg := loadConfig()
	store := openSession(cfg)

	if !store.IsAuthenticated() {
		fmt.Fprintln(w, "Not logged in. Run 'agriai login' first.")
		return 1
	}

	c := newClient(cfg, store)
	sessions, err := c.ChatSessions(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(sessions, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(sessions) == 0 {
		fmt.Fprintln(w, "No chat sessions yet.")
		return 0
	}
	for _, s := range sessions {
		fmt.Fprintf(w, "%s  last activity %s\n", s.SessionID, s.LastActivity)
	}
	return 0
}

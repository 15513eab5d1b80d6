// ABOUTME: Chat command for the agriai CLI
// ABOUTME: One-shot question answering, or the interactive chat TUI with no arguments

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
	"time"

	"github.com/Gitesh-2005/AgriAI/internal/cache"
	"github.com/Gitesh-2005/AgriAI/internal/client"
	"github.com/Gitesh-2005/AgriAI/internal/tui/chat"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	chatSession  string
	chatLanguage string
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Ask the AgriAI assistant",
	Long: `Send a message to the multi-agent assistant.

With a message argument the answer is printed and the command exits.
With no arguments an interactive chat session opens.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		var exitCode int
		if len(args) == 0 {
			exitCode = runChatTUI(ctx)
		} else {
			exitCode = runChat(ctx, os.Stdout, strings.Join(args, " "))
		}
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVar(&chatSession, "session", "", "Chat session ID to continue")
	chatCmd.Flags().StringVar(&chatLanguage, "language", "", "Message language (overrides AGRIAI_LANGUAGE)")
}

// runChat sends a single message and returns exit code
func runChat(ctx context.Context, w io.Writer, message string) int {
	cfg := loadConfig()
	store := openSession(cfg)

	if !store.IsAuthenticated() {
		fmt.Fprintln(w, "Not logged in. Run 'agriai login' first.")
		return 1
	}

	language := cfg.Language
	if chatLanguage != "" {
		language = chatLanguage
	}

	c := newClient(cfg, store)
	resp, err := c.SendMessage(ctx, &client.ChatRequest{
		Message:   message,
		SessionID: chatSession,
		Language:  language,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatChatJSON(resp))
	} else {
		fmt.Fprintln(w, formatChatHuman(resp))
	}
	return 0
}

// runChatTUI opens the interactive chat screen
func runChatTUI(ctx context.Context) int {
	cfg := loadConfig()
	store := openSession(cfg)

	if !store.IsAuthenticated() {
		fmt.Fprintln(os.Stdout, "Not logged in. Run 'agriai login' first.")
		return 1
	}

	language := cfg.Language
	if chatLanguage != "" {
		language = chatLanguage
	}

	c := newClient(cfg, store)
	lookups := cache.New[map[string]string](time.Duration(cfg.CacheTTL) * time.Second)
	model := chat.New(c, store.User(), chat.Options{
		SessionID: chatSession,
		Language:  language,
		Health:    chat.NewHealthMonitor(c, lookups),
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}

// formatChatHuman formats a chat response for human readability
func formatChatHuman(resp *client.ChatResponse) string {
	out := resp.Response
	out += fmt.Sprintf("\n\n[%s, confidence %.0f%%, session %s]", resp.AgentUsed, resp.Confidence*100, resp.SessionID)
	if len(resp.Citations) > 0 {
		out += "\nSources: " + strings.Join(resp.Citations, ", ")
	}
	return out
}

// formatChatJSON formats a chat response as JSON
func formatChatJSON(resp *client.ChatResponse) string {
	data, _ := json.MarshalIndent(resp, "", "  ")
	return string(data)
}

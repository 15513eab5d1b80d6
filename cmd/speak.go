// ABOUTME: Speak command for the agriai CLI
// ABOUTME: Synthesizes text to speech and plays or saves the audio

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Gitesh-2005/AgriAI/internal/speech"
	"github.com/spf13/cobra"
)

var (
	speakLang string
	speakOut  string
)

var speakCmd = &cobra.Command{
	Use:   "speak <text>...",
	Short: "Speak text aloud",
	Long: `Synthesize the given text through the backend's text-to-speech and play
it with the local audio player. With --out the MPEG audio is written to a
file instead of played.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSpeak(ctx, os.Stdout, strings.Join(args, " "))
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(speakCmd)
	speakCmd.Flags().StringVar(&speakLang, "lang", "", "Speech language (overrides AGRIAI_LANGUAGE)")
	speakCmd.Flags().StringVar(&speakOut, "out", "", "Write audio to this file instead of playing it")
}

// runSpeak synthesizes and renders the text, returning exit code
func runSpeak(ctx context.Context, w io.Writer, text string) int {
	cfg := loadConfig()
	store := openSession(cfg)
	c := newClient(cfg, store)

	lang := cfg.Language
	if speakLang != "" {
		lang = speakLang
	}

	speaker := speech.NewBackendSpeaker(cfg.PlayerCmd, c)
	speaker.OutPath = speakOut

	if err := speaker.Speak(ctx, text, lang); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if speakOut != "" {
		fmt.Fprintf(w, "Wrote %s\n", speakOut)
	}
	return 0
}

// ABOUTME: Transcribe command for the agriai CLI
// ABOUTME: Turns an audio file or a live microphone capture into English text

package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Gitesh-2005/AgriAI/internal/speech"
	"github.com/spf13/cobra"
)

var (
	transcribeLanguage string
	transcribeMic      bool
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe [audio-file]",
	Short: "Transcribe spoken audio to text",
	Long: `Send an audio file to the backend's speech recognition and print the
English transcript. With --mic the audio is captured from the microphone
instead; press Enter to stop recording.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		file := ""
		if len(args) == 1 {
			file = args[0]
		}

		exitCode := runTranscribe(ctx, os.Stdout, os.Stdin, file, transcribeMic)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(transcribeCmd)
	transcribeCmd.Flags().StringVar(&transcribeLanguage, "language", "", "Spoken language hint (overrides AGRIAI_LANGUAGE)")
	transcribeCmd.Flags().BoolVar(&transcribeMic, "mic", false, "Capture audio from the microphone")
}

// runTranscribe transcribes a file or a mic capture and returns exit code
func runTranscribe(ctx context.Context, w io.Writer, stdin io.Reader, file string, mic bool) int {
	if mic == (file != "") {
		fmt.Fprintln(w, "Provide an audio file or --mic, not both.")
		return 1
	}

	cfg := loadConfig()
	store := openSession(cfg)
	c := newClient(cfg, store)

	language := cfg.Language
	if transcribeLanguage != "" {
		language = transcribeLanguage
	}

	var (
		transcript string
		err        error
	)
	if mic {
		transcript, err = captureFromMic(ctx, w, stdin, speech.NewMicRecognizer(cfg.RecorderCmd, language, c))
	} else {
		transcript, err = transcribeFile(ctx, c, file, language)
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.Marshal(map[string]string{"translation": transcript})
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, transcript)
	}
	return 0
}

// transcribeFile sends an existing audio file for recognition
func transcribeFile(ctx context.Context, t speech.Transcriber, file, language string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	return t.Transcribe(ctx, filepath.Base(file), f, language)
}

// captureFromMic records until the user presses Enter, then transcribes
func captureFromMic(ctx context.Context, w io.Writer, stdin io.Reader, rec speech.Recognizer) (string, error) {
	if err := rec.Start(ctx); err != nil {
		return "", err
	}

	fmt.Fprintln(w, "Recording... press Enter to stop.")

	done := make(chan struct{})
	go func() {
		bufio.NewReader(stdin).ReadString('\n')
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}

	return rec.Stop(ctx)
}

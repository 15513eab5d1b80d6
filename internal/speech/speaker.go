// ABOUTME: Speaker implementation backed by the backend TTS endpoint
// ABOUTME: Plays synthesized audio through an external player or writes it to a file

package speech

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
)

// BackendSpeaker fetches synthesized speech from the backend and plays it
// with an external command (mpg123 by default). When OutPath is set the
// audio is written there instead of played.
type BackendSpeaker struct {
	synthesizer Synthesizer
	player      string

	// OutPath, when non-empty, receives the MPEG audio instead of the player
	OutPath string
}

// NewBackendSpeaker creates a speaker that plays audio via playerCmd
func NewBackendSpeaker(playerCmd string, s Synthesizer) *BackendSpeaker {
	return &BackendSpeaker{synthesizer: s, player: playerCmd}
}

// Speak synthesizes text and renders it audibly (or to OutPath)
func (b *BackendSpeaker) Speak(ctx context.Context, text, lang string) error {
	audio, err := b.synthesizer.Synthesize(ctx, text, lang)
	if err != nil {
		return err
	}

	if b.OutPath != "" {
		return os.WriteFile(b.OutPath, audio, 0644)
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("agriai-speech-%s.mp3", uuid.NewString()))
	if err := os.WriteFile(path, audio, 0600); err != nil {
		return fmt.Errorf("failed to stage audio: %w", err)
	}
	defer os.Remove(path)

	cmd := exec.CommandContext(ctx, b.player, path)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("player %q failed: %w (%s)", b.player, err, out)
	}
	return nil
}

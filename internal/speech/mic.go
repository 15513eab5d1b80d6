// ABOUTME: Microphone-backed Recognizer using an external recorder command
// ABOUTME: Records to a temp WAV and sends it to the backend transcription endpoint

package speech

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
)

// MicRecognizer records microphone audio with an external command (arecord
// by default) and transcribes the capture through the backend.
type MicRecognizer struct {
	recorder    string
	language    string
	transcriber Transcriber

	cmd  *exec.Cmd
	path string
}

// NewMicRecognizer creates a recognizer that shells out to recorderCmd.
// Transcripts come back in English regardless of the spoken language; the
// language hint helps the backend's Whisper model.
func NewMicRecognizer(recorderCmd, language string, t Transcriber) *MicRecognizer {
	return &MicRecognizer{
		recorder:    recorderCmd,
		language:    language,
		transcriber: t,
	}
}

// Start begins recording into a temp WAV file
func (m *MicRecognizer) Start(ctx context.Context) error {
	if m.cmd != nil {
		return errors.New("capture already in progress")
	}

	m.path = filepath.Join(os.TempDir(), fmt.Sprintf("agriai-capture-%s.wav", uuid.NewString()))

	cmd := exec.CommandContext(ctx, m.recorder, recorderArgs(m.recorder, m.path)...)
	if err := cmd.Start(); err != nil {
		m.path = ""
		return fmt.Errorf("failed to start recorder %q: %w", m.recorder, err)
	}

	m.cmd = cmd
	return nil
}

// Stop ends the recording and returns the transcript
func (m *MicRecognizer) Stop(ctx context.Context) (string, error) {
	if m.cmd == nil {
		return "", errors.New("no capture in progress")
	}

	cmd, path := m.cmd, m.path
	m.cmd, m.path = nil, ""
	defer os.Remove(path)

	// Recorders stop cleanly on interrupt; fall back to kill if that fails
	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		cmd.Process.Kill()
	}
	cmd.Wait()

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("recorder produced no audio: %w", err)
	}
	defer f.Close()

	return m.transcriber.Transcribe(ctx, filepath.Base(path), f, m.language)
}

// recorderArgs returns command arguments for the known recorder tools
func recorderArgs(recorder, path string) []string {
	switch filepath.Base(recorder) {
	case "arecord":
		return []string{"-q", "-f", "cd", "-t", "wav", path}
	case "sox", "rec":
		return []string{"-q", "-d", path}
	default:
		return []string{path}
	}
}

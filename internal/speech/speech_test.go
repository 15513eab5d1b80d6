// ABOUTME: Tests for the speech capability implementations
// ABOUTME: Uses fake transcribers/synthesizers and a scripted recorder command

package speech

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

type fakeTranscriber struct {
	transcript string
	filename   string
	language   string
	audio      []byte
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, filename string, audio io.Reader, language string) (string, error) {
	f.filename = filename
	f.language = language
	f.audio, _ = io.ReadAll(audio)
	return f.transcript, nil
}

type fakeSynthesizer struct {
	audio []byte
	text  string
	lang  string
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	f.text = text
	f.lang = lang
	return f.audio, nil
}

// writeRecorderScript creates a stand-in recorder: it writes fake audio to
// the path it is given, then waits to be interrupted like a real capture.
func writeRecorderScript(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("recorder script requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fake-recorder")
	script := "#!/bin/sh\nprintf 'RIFF-fake-audio' > \"$1\"\nexec sleep 60\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMicRecognizer_CaptureRoundTrip(t *testing.T) {
	ft := &fakeTranscriber{transcript: "when should I irrigate"}
	rec := NewMicRecognizer(writeRecorderScript(t), "hi", ft)

	ctx := context.Background()
	if err := rec.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	// Give the script a moment to write the capture file
	time.Sleep(100 * time.Millisecond)

	text, err := rec.Stop(ctx)
	if err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if text != "when should I irrigate" {
		t.Errorf("unexpected transcript: %q", text)
	}
	if ft.language != "hi" {
		t.Errorf("expected language hint hi, got %q", ft.language)
	}
	if string(ft.audio) != "RIFF-fake-audio" {
		t.Errorf("captured audio not forwarded: %q", ft.audio)
	}
}

func TestMicRecognizer_StopWithoutStart(t *testing.T) {
	rec := NewMicRecognizer("arecord", "en", &fakeTranscriber{})
	if _, err := rec.Stop(context.Background()); err == nil {
		t.Error("expected error when no capture is in progress")
	}
}

func TestMicRecognizer_DoubleStart(t *testing.T) {
	rec := NewMicRecognizer(writeRecorderScript(t), "en", &fakeTranscriber{})

	ctx := context.Background()
	if err := rec.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	defer rec.Stop(ctx)

	if err := rec.Start(ctx); err == nil {
		t.Error("expected error on second Start")
	}
}

func TestMicRecognizer_MissingRecorder(t *testing.T) {
	rec := NewMicRecognizer("/nonexistent/recorder", "en", &fakeTranscriber{})
	if err := rec.Start(context.Background()); err == nil {
		t.Error("expected error for missing recorder command")
	}
}

func TestRecorderArgs(t *testing.T) {
	tests := []struct {
		recorder string
		first    string
	}{
		{"arecord", "-q"},
		{"/usr/bin/arecord", "-q"},
		{"sox", "-q"},
		{"rec", "-q"},
		{"custom-tool", "/tmp/out.wav"},
	}

	for _, tt := range tests {
		args := recorderArgs(tt.recorder, "/tmp/out.wav")
		if len(args) == 0 || args[0] != tt.first {
			t.Errorf("recorderArgs(%q) = %v, expected first arg %q", tt.recorder, args, tt.first)
		}
	}
}

func TestBackendSpeaker_WritesToFile(t *testing.T) {
	fs := &fakeSynthesizer{audio: []byte("ID3-fake-mp3")}
	out := filepath.Join(t.TempDir(), "speech.mp3")

	speaker := NewBackendSpeaker("mpg123", fs)
	speaker.OutPath = out

	if err := speaker.Speak(context.Background(), "namaste", "hi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fs.text != "namaste" || fs.lang != "hi" {
		t.Errorf("synthesizer called with %q/%q", fs.text, fs.lang)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if string(data) != "ID3-fake-mp3" {
		t.Errorf("unexpected file contents: %q", data)
	}
}

func TestBackendSpeaker_PlayerFailure(t *testing.T) {
	fs := &fakeSynthesizer{audio: []byte("ID3-fake-mp3")}
	speaker := NewBackendSpeaker("/nonexistent/player", fs)

	if err := speaker.Speak(context.Background(), "hello", "en"); err == nil {
		t.Error("expected error for missing player command")
	}
}

// ABOUTME: Tests for the speak command
// ABOUTME: Verifies synthesis requests and audio file output

package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSpeakCommand_WritesFile(t *testing.T) {
	seedSession(t, "")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/tts/tts" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("text") != "Irrigate tomorrow morning" {
			t.Errorf("unexpected text %q", q.Get("text"))
		}
		if q.Get("lang") != "mr" {
			t.Errorf("expected lang mr, got %q", q.Get("lang"))
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("fake-mpeg-bytes"))
	}))
	defer server.Close()
	useServer(t, server)

	out := filepath.Join(t.TempDir(), "advice.mp3")
	speakLang = "mr"
	speakOut = out
	defer func() { speakLang = ""; speakOut = "" }()

	var buf bytes.Buffer
	exitCode := runSpeak(context.Background(), &buf, "Irrigate tomorrow morning")

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	audio, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("expected audio file: %v", err)
	}
	if string(audio) != "fake-mpeg-bytes" {
		t.Errorf("unexpected audio content: %q", audio)
	}
	if !strings.Contains(buf.String(), "Wrote") {
		t.Errorf("expected confirmation, got: %s", buf.String())
	}
}

func TestSpeakCommand_BackendError(t *testing.T) {
	seedSession(t, "")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()
	useServer(t, server)

	speakOut = filepath.Join(t.TempDir(), "advice.mp3")
	defer func() { speakOut = "" }()

	var buf bytes.Buffer
	exitCode := runSpeak(context.Background(), &buf, "hello")

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
}

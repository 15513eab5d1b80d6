// ABOUTME: Tests for the login command
// ABOUTME: Verifies credential exchange, session persistence, and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Gitesh-2005/AgriAI/internal/client"
	"github.com/Gitesh-2005/AgriAI/internal/session"
)

func loginBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Email != "asha@example.com" || creds.Password != "secret123" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect email or password"})
			return
		}
		json.NewEncoder(w).Encode(client.TokenResponse{
			AccessToken: "tok-abc",
			TokenType:   "bearer",
			UserID:      1,
			UserType:    "farmer",
		})
	})
	mux.HandleFunc("/api/v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-abc" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
			return
		}
		json.NewEncoder(w).Encode(testProfile())
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestLoginCommand_Success(t *testing.T) {
	dir := seedSession(t, "")
	useServer(t, loginBackend(t))

	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), &buf, "asha@example.com", "secret123")

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !strings.Contains(buf.String(), "Logged in as Asha Patil") {
		t.Errorf("expected login confirmation, got: %s", buf.String())
	}

	// The session must be durable
	token, err := os.ReadFile(filepath.Join(dir, "token"))
	if err != nil {
		t.Fatalf("expected stored token: %v", err)
	}
	if strings.TrimSpace(string(token)) != "tok-abc" {
		t.Errorf("expected stored token tok-abc, got %q", token)
	}

	store := session.NewStore(dir)
	store.Load()
	if !store.IsAuthenticated() {
		t.Error("expected a reloaded store to be authenticated")
	}
}

func TestLoginCommand_BadCredentials(t *testing.T) {
	dir := seedSession(t, "")
	useServer(t, loginBackend(t))

	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), &buf, "asha@example.com", "wrong")

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "Incorrect email or password") {
		t.Errorf("expected backend detail in output, got: %s", buf.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "token")); !os.IsNotExist(err) {
		t.Error("expected no token stored after rejected login")
	}
}

func TestLoginCommand_ConnectionError(t *testing.T) {
	seedSession(t, "")
	apiURL = "http://localhost:1"
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), &buf, "asha@example.com", "secret123")

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
}

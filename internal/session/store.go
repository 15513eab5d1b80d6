// ABOUTME: Session store holding the authenticated identity for the CLI
// ABOUTME: In-memory source of truth mirrored to token and profile files on disk

package session

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Gitesh-2005/AgriAI/internal/client"
)

// File names of the two durable entries inside the config directory.
// They are written together, read together, and removed together.
const (
	tokenFile = "token"
	userFile  = "user.json"
)

// Store is the single owner of the current session. The in-memory fields are
// authoritative; the files on disk are a mirror consulted only by Load.
type Store struct {
	dir string

	mu    sync.RWMutex
	token string
	user  *client.UserProfile
}

// NewStore creates a session store rooted at the given config directory
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Load restores a previously persisted session. It never fails visibly: a
// missing, partial, or corrupt mirror is treated as no session at all.
func (s *Store) Load() {
	token, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return
	}

	data, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return
	}

	var user client.UserProfile
	if err := json.Unmarshal(data, &user); err != nil {
		slog.Debug("Stored profile unreadable, starting anonymous", "error", err)
		return
	}

	trimmed := strings.TrimSpace(string(token))
	if trimmed == "" {
		return
	}

	s.mu.Lock()
	s.token = trimmed
	s.user = &user
	s.mu.Unlock()
	slog.Debug("Session restored", "email", user.Email)
}

// Set replaces both session fields atomically and mirrors them to disk. The
// disk writes happen under the same lock, so overlapping Sets can never leave
// one operation's token next to another's profile in the mirror.
func (s *Store) Set(token string, user *client.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.user = user

	if err := s.persist(token, user); err != nil {
		// A half-written mirror could pair this token with an older
		// profile, which Load has no way to detect. Remove both entries
		// so the next Load starts anonymous instead.
		os.Remove(filepath.Join(s.dir, tokenFile))
		os.Remove(filepath.Join(s.dir, userFile))
		return err
	}

	slog.Debug("Session persisted", "email", user.Email)
	return nil
}

func (s *Store) persist(token string, user *client.UserProfile) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return err
	}
	if err := writeEntry(filepath.Join(s.dir, tokenFile), []byte(token)); err != nil {
		return err
	}
	return writeEntry(filepath.Join(s.dir, userFile), data)
}

// writeEntry stages the data in a temp file and renames it into place, so an
// interrupted write never leaves a torn entry behind.
func writeEntry(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Clear empties the session and removes both durable entries. Calling it on
// an already-empty store is a no-op.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.user = nil

	os.Remove(filepath.Join(s.dir, tokenFile))
	os.Remove(filepath.Join(s.dir, userFile))
}

// Token returns the current bearer token, or "" when anonymous. This
// satisfies the client's TokenSource so the store can back the request
// pipeline directly.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the current profile, or nil when anonymous
func (s *Store) User() *client.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated is derived from the two fields rather than stored, so it
// can never drift from them. Token and user are only ever set together.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

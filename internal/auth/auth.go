// ABOUTME: Login, registration, and logout operations
// ABOUTME: Exchanges credentials for a token, fetches the profile, and populates the session store

package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Gitesh-2005/AgriAI/internal/client"
	"github.com/Gitesh-2005/AgriAI/internal/session"
)

// Authenticator runs the credential flows against the backend and owns the
// transition between the anonymous and authenticated session states.
type Authenticator struct {
	client *client.Client
	store  *session.Store
}

// New creates an Authenticator over the given client and session store
func New(c *client.Client, store *session.Store) *Authenticator {
	return &Authenticator{client: c, store: store}
}

// Login exchanges credentials for a token, fetches the matching profile, and
// stores both. On any failure the session store is left untouched.
//
// The profile fetch is pinned to the token returned by this login, not read
// back from the store, so two overlapping logins can never mix one
// operation's token with the other's profile.
func (a *Authenticator) Login(ctx context.Context, email, password string) (*client.UserProfile, error) {
	token, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	profile, err := a.client.CurrentUserWithToken(ctx, token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if err := a.store.Set(token.AccessToken, profile); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	slog.Debug("Login complete", "email", profile.Email, "user_type", profile.UserType)
	return profile, nil
}

// Register creates an account and logs it in using the same
// token-then-profile sequence as Login.
func (a *Authenticator) Register(ctx context.Context, input client.RegistrationInput) (*client.UserProfile, error) {
	token, err := a.client.Register(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	profile, err := a.client.CurrentUserWithToken(ctx, token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	if err := a.store.Set(token.AccessToken, profile); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	slog.Debug("Registration complete", "email", profile.Email, "user_type", profile.UserType)
	return profile, nil
}

// Logout clears the session unconditionally. Logging out while anonymous is
// a no-op.
func (a *Authenticator) Logout() {
	a.store.Clear()
}

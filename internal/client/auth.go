// ABOUTME: Authentication endpoints of the AgriAI backend
// ABOUTME: Login, registration, and current-user profile lookup

package client

import (
	"context"
)

// TokenResponse is the payload returned by login and register
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      int    `json:"user_id"`
	UserType    string `json:"user_type"`
}

// UserProfile is the authenticated user's record as served by /auth/me
type UserProfile struct {
	ID                 int    `json:"id"`
	Email              string `json:"email"`
	FullName           string `json:"full_name"`
	UserType           string `json:"user_type"`
	LanguagePreference string `json:"language_preference"`
	Location           string `json:"location,omitempty"`
	FarmSize           string `json:"farm_size,omitempty"`
}

// RegistrationInput carries the fields for a new account
type RegistrationInput struct {
	Email              string `json:"email"`
	Password           string `json:"password"`
	FullName           string `json:"full_name"`
	Phone              string `json:"phone,omitempty"`
	UserType           string `json:"user_type"`
	LanguagePreference string `json:"language_preference"`
	Location           string `json:"location,omitempty"`
	FarmSize           string `json:"farm_size,omitempty"`
}

// loginInput is the credential payload for /auth/login
type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token via POST /auth/login.
// The request is always sent unauthenticated; a rejected login is a
// credential error, not a session expiry.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	var token TokenResponse
	if err := c.postJSONWith(ctx, "/auth/login", nil, loginInput{Email: email, Password: password}, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// Register creates an account and returns its bearer token via POST /auth/register
func (c *Client) Register(ctx context.Context, input RegistrationInput) (*TokenResponse, error) {
	var token TokenResponse
	if err := c.postJSONWith(ctx, "/auth/register", nil, input, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// CurrentUser fetches the profile for the session's token via GET /auth/me
func (c *Client) CurrentUser(ctx context.Context) (*UserProfile, error) {
	var profile UserProfile
	if err := c.getJSON(ctx, "/auth/me", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// CurrentUserWithToken fetches the profile using an explicit token instead of
// the configured token source. Auth operations use this so the fetch is bound
// to the token they just received, even if another login is in flight.
func (c *Client) CurrentUserWithToken(ctx context.Context, token string) (*UserProfile, error) {
	var profile UserProfile
	if err := c.getJSONWith(ctx, "/auth/me", staticToken(token), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

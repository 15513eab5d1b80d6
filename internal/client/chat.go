// ABOUTME: Chat endpoints of the AgriAI backend
// ABOUTME: Message dispatch, per-session history, and session listing

package client

import (
	"context"
	"fmt"
	"net/url"
)

// ChatRequest is the payload for POST /chat/message
type ChatRequest struct {
	Message   string                 `json:"message"`
	SessionID string                 `json:"session_id,omitempty"`
	Language  string                 `json:"language"`
	Context   map[string]interface{} `json:"context,omitempty"`
}

// ChatResponse is the orchestrator's answer to a chat message
type ChatResponse struct {
	Response         string                 `json:"response"`
	AgentUsed        string                 `json:"agent_used"`
	Confidence       float64                `json:"confidence"`
	SessionID        string                 `json:"session_id"`
	Metadata         map[string]interface{} `json:"metadata"`
	Citations        []string               `json:"citations"`
	RequiresFollowup bool                   `json:"requires_followup"`
}

// ConversationEntry is one stored turn from GET /chat/history/{session}
type ConversationEntry struct {
	ID         int     `json:"id"`
	Query      string  `json:"query"`
	Response   string  `json:"response"`
	AgentUsed  string  `json:"agent_used"`
	Confidence float64 `json:"confidence"`
	CreatedAt  string  `json:"created_at"`
	Intent     string  `json:"intent"`
}

// SessionInfo identifies one chat session from GET /chat/sessions
type SessionInfo struct {
	SessionID    string `json:"session_id"`
	LastActivity string `json:"last_activity"`
}

// SendMessage calls POST /chat/message
func (c *Client) SendMessage(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	var resp ChatResponse
	if err := c.postJSON(ctx, "/chat/message", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ChatHistory calls GET /chat/history/{sessionID}. Entries arrive newest first.
func (c *Client) ChatHistory(ctx context.Context, sessionID string) ([]ConversationEntry, error) {
	var entries []ConversationEntry
	path := fmt.Sprintf("/chat/history/%s", url.PathEscape(sessionID))
	if err := c.getJSON(ctx, path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ChatSessions calls GET /chat/sessions
func (c *Client) ChatSessions(ctx context.Context) ([]SessionInfo, error) {
	var sessions []SessionInfo
	if err := c.getJSON(ctx, "/chat/sessions", &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ABOUTME: Service health endpoint of the AgriAI backend
// ABOUTME: Reports overall status and dependency connectivity

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// HealthStatus is the response from GET /health
type HealthStatus struct {
	Status   string `json:"status"`
	Redis    string `json:"redis,omitempty"`
	Database string `json:"database,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Health calls GET /health. The endpoint lives at the service root, outside
// the versioned API prefix, and never requires authentication.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.send(req, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var status HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}
	return &status, nil
}

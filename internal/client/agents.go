// ABOUTME: Agent registry endpoints of the AgriAI backend
// ABOUTME: Capabilities, health, and listing of the orchestrator's agents

package client

import "context"

// AgentCapability describes one agent from GET /agents/capabilities
type AgentCapability struct {
	Description  string   `json:"description"`
	Capabilities []string `json:"capabilities"`
	Status       string   `json:"status"`
}

// AgentList is the summary from GET /agents/list
type AgentList struct {
	Agents       []string          `json:"agents"`
	TotalCount   int               `json:"total_count"`
	Descriptions map[string]string `json:"descriptions"`
}

// AgentCapabilities calls GET /agents/capabilities
func (c *Client) AgentCapabilities(ctx context.Context) (map[string]AgentCapability, error) {
	caps := make(map[string]AgentCapability)
	if err := c.getJSON(ctx, "/agents/capabilities", &caps); err != nil {
		return nil, err
	}
	return caps, nil
}

// AgentHealth calls GET /agents/health. Values are "healthy" or a
// backend-defined failure string.
func (c *Client) AgentHealth(ctx context.Context) (map[string]string, error) {
	health := make(map[string]string)
	if err := c.getJSON(ctx, "/agents/health", &health); err != nil {
		return nil, err
	}
	return health, nil
}

// ListAgents calls GET /agents/list
func (c *Client) ListAgents(ctx context.Context) (*AgentList, error) {
	var list AgentList
	if err := c.getJSON(ctx, "/agents/list", &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ABOUTME: Background agent health polling for the chat screen
// ABOUTME: Runs lookups through the TTL cache so repeated polls stay cheap

package chat

import (
	"context"
	"time"

	"github.com/Gitesh-2005/AgriAI/internal/cache"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	healthCacheKey  = "agent-health"
	healthPollEvery = 30 * time.Second
)

// HealthChecker is the slice of the API client the monitor needs
type HealthChecker interface {
	AgentHealth(ctx context.Context) (map[string]string, error)
}

// healthPolledMsg carries the latest agent health snapshot
type healthPolledMsg struct {
	health map[string]string
	err    error
}

// HealthMonitor periodically checks agent health, deduplicating lookups
// through a shared cache.
type HealthMonitor struct {
	checker HealthChecker
	lookups *cache.Cache[map[string]string]
}

// NewHealthMonitor creates a monitor backed by the given cache
func NewHealthMonitor(checker HealthChecker, lookups *cache.Cache[map[string]string]) *HealthMonitor {
	return &HealthMonitor{checker: checker, lookups: lookups}
}

// Check returns agent health, serving from the cache when fresh
func (h *HealthMonitor) Check(ctx context.Context) (map[string]string, error) {
	if cached, ok := h.lookups.Get(healthCacheKey); ok {
		return cached, nil
	}

	health, err := h.checker.AgentHealth(ctx)
	if err != nil {
		return nil, err
	}
	h.lookups.Set(healthCacheKey, health)
	return health, nil
}

// poll fetches health immediately
func (h *HealthMonitor) poll() tea.Cmd {
	return func() tea.Msg {
		health, err := h.Check(context.Background())
		return healthPolledMsg{health: health, err: err}
	}
}

// pollLater schedules the next health check
func (h *HealthMonitor) pollLater() tea.Cmd {
	return tea.Tick(healthPollEvery, func(time.Time) tea.Msg {
		health, err := h.Check(context.Background())
		return healthPolledMsg{health: health, err: err}
	})
}

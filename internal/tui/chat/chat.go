// ABOUTME: Interactive chat screen for conversing with the assistant
// ABOUTME: Bubbletea model with a scrolling transcript, input box, and agent health line

package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Gitesh-2005/AgriAI/internal/client"
	"github.com/Gitesh-2005/AgriAI/internal/tui/styles"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// Layout constants
const (
	inputHeight   = 3 // Input box rows
	chromeHeight  = 7 // Header, health line, input border, help line
	minChatWidth  = 40
	maxTranscript = 200 // Turns kept in the transcript before trimming
)

// Backend is the slice of the API client the chat screen needs
type Backend interface {
	SendMessage(ctx context.Context, req *client.ChatRequest) (*client.ChatResponse, error)
	ChatHistory(ctx context.Context, sessionID string) ([]client.ConversationEntry, error)
}

// Options configures a chat screen
type Options struct {
	// SessionID resumes an existing session when set; a fresh ID is minted
	// otherwise.
	SessionID string
	Language  string
	Health    *HealthMonitor
}

// turn is one rendered exchange in the transcript
type turn struct {
	query      string
	response   string
	agent      string
	confidence float64
	citations  []string
	err        error
}

// answerMsg carries the backend's reply to a sent message
type answerMsg struct {
	query string
	resp  *client.ChatResponse
	err   error
}

// historyMsg carries the preloaded conversation when resuming a session
type historyMsg struct {
	entries []client.ConversationEntry
	err     error
}

// Model is the chat screen's bubbletea model
type Model struct {
	backend   Backend
	user      *client.UserProfile
	sessionID string
	resuming  bool
	language  string
	health    *HealthMonitor

	turns   []turn
	waiting bool

	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model

	agentHealth map[string]string
	width       int
	height      int
	ready       bool
}

// New creates the chat screen. A non-empty Options.SessionID resumes that
// conversation with its history preloaded; otherwise a new session ID is
// minted up front so every turn lands in the same conversation.
func New(backend Backend, user *client.UserProfile, opts Options) *Model {
	sessionID := opts.SessionID
	resuming := sessionID != ""
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	ta := textarea.New()
	ta.Placeholder = "Ask about crops, weather, schemes, market prices..."
	ta.Prompt = "> "
	ta.CharLimit = 2000
	ta.SetHeight(inputHeight - 2)
	ta.ShowLineNumbers = false
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &Model{
		backend:   backend,
		user:      user,
		sessionID: sessionID,
		resuming:  resuming,
		language:  opts.Language,
		health:    opts.Health,
		input:     ta,
		spinner:   sp,
	}
}

// SessionID returns the active session's ID
func (m *Model) SessionID() string {
	return m.sessionID
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.resuming {
		cmds = append(cmds, m.loadHistory())
	}
	if m.health != nil {
		cmds = append(cmds, m.health.poll())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			return m, m.send()
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case answerMsg:
		m.waiting = false
		// An expired session already triggered the notice via the client's
		// handler; nothing useful remains on screen.
		if errors.Is(msg.err, client.ErrUnauthorized) {
			return m, tea.Quit
		}
		m.appendAnswer(msg)
		m.refreshTranscript()
		return m, nil

	case historyMsg:
		if msg.err == nil {
			m.prependHistory(msg.entries)
			m.refreshTranscript()
		}
		return m, nil

	case healthPolledMsg:
		if msg.err == nil {
			m.agentHealth = msg.health
		}
		if m.health != nil {
			return m, m.health.pollLater()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send dispatches the typed message as a backend call
func (m *Model) send() tea.Cmd {
	query := strings.TrimSpace(m.input.Value())
	if query == "" || m.waiting {
		return nil
	}

	m.input.Reset()
	m.waiting = true

	req := &client.ChatRequest{
		Message:   query,
		SessionID: m.sessionID,
		Language:  m.language,
	}
	ask := func() tea.Msg {
		resp, err := m.backend.SendMessage(context.Background(), req)
		return answerMsg{query: query, resp: resp, err: err}
	}
	return tea.Batch(ask, m.spinner.Tick)
}

// loadHistory fetches the resumed session's past conversation
func (m *Model) loadHistory() tea.Cmd {
	sessionID := m.sessionID
	return func() tea.Msg {
		entries, err := m.backend.ChatHistory(context.Background(), sessionID)
		return historyMsg{entries: entries, err: err}
	}
}

// appendAnswer records a completed exchange, keeping errors as inline turns
func (m *Model) appendAnswer(msg answerMsg) {
	t := turn{query: msg.query}
	if msg.err != nil {
		t.err = msg.err
	} else {
		t.response = msg.resp.Response
		t.agent = msg.resp.AgentUsed
		t.confidence = msg.resp.Confidence
		t.citations = msg.resp.Citations
		if msg.resp.SessionID != "" {
			m.sessionID = msg.resp.SessionID
		}
	}

	m.turns = append(m.turns, t)
	if len(m.turns) > maxTranscript {
		m.turns = m.turns[len(m.turns)-maxTranscript:]
	}
}

// prependHistory inserts past entries, newest-first on the wire, ahead of
// anything typed this run
func (m *Model) prependHistory(entries []client.ConversationEntry) {
	past := make([]turn, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		past = append(past, turn{
			query:      e.Query,
			response:   e.Response,
			agent:      e.AgentUsed,
			confidence: e.Confidence,
		})
	}
	m.turns = append(past, m.turns...)
}

func (m *Model) layout() {
	w := m.width
	if w < minChatWidth {
		w = minChatWidth
	}
	h := m.height - inputHeight - chromeHeight
	if h < 3 {
		h = 3
	}

	if !m.ready {
		m.viewport = viewport.New(w, h)
		m.ready = true
	} else {
		m.viewport.Width = w
		m.viewport.Height = h
	}
	m.input.SetWidth(w - 4)
	m.refreshTranscript()
}

// refreshTranscript re-renders all turns into the viewport, pinned to bottom
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTurns())
	m.viewport.GotoBottom()
}

func (m *Model) renderTurns() string {
	if len(m.turns) == 0 {
		return styles.Subtitle.Render("Ask your first question to get started.")
	}

	var sb strings.Builder
	for _, t := range m.turns {
		sb.WriteString(styles.UserLabel.Render("You"))
		sb.WriteString("  " + t.query + "\n")

		if t.err != nil {
			sb.WriteString(styles.ErrorStyle.Render("Error: " + t.err.Error()))
			sb.WriteString("\n\n")
			continue
		}

		sb.WriteString(styles.AssistantLabel.Render("AgriAI"))
		sb.WriteString("  " + t.response + "\n")
		if t.agent != "" {
			meta := fmt.Sprintf("%s  %s %.0f%%", t.agent, styles.ConfidenceBar(t.confidence, 10), t.confidence*100)
			sb.WriteString(styles.MetaStyle.Render(meta) + "\n")
		}
		if len(t.citations) > 0 {
			sb.WriteString(styles.MetaStyle.Render("Sources: "+strings.Join(t.citations, ", ")) + "\n")
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// View implements tea.Model
func (m *Model) View() string {
	if !m.ready {
		return "Starting chat..."
	}

	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")

	if m.waiting {
		sb.WriteString(m.spinner.View() + " Thinking...\n")
	} else {
		sb.WriteString("\n")
	}

	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("Enter send  PgUp/PgDn scroll  Esc quit"))

	return sb.String()
}

// renderHeader shows who is chatting and how the agent fleet is doing
func (m *Model) renderHeader() string {
	title := styles.Title.Render("AgriAI Chat")

	who := ""
	if m.user != nil {
		who = styles.Subtitle.Render(fmt.Sprintf("%s (%s)", m.user.FullName, m.user.UserType))
	}

	health := m.renderHealthLine()

	parts := []string{title}
	if who != "" {
		parts = append(parts, who)
	}
	if health != "" {
		parts = append(parts, health)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderHealthLine summarizes agent health from the latest poll
func (m *Model) renderHealthLine() string {
	if len(m.agentHealth) == 0 {
		return ""
	}

	healthy := 0
	for _, status := range m.agentHealth {
		if status == "healthy" {
			healthy++
		}
	}

	text := fmt.Sprintf("agents %d/%d healthy", healthy, len(m.agentHealth))
	if healthy == len(m.agentHealth) {
		return styles.StatusOK.Render(text)
	}
	return styles.StatusWarning.Render(text)
}

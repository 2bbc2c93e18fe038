package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type advisorReplyMsg string
type advisorErrMsg struct{ err error }

type speaker int

const (
	speakerUser speaker = iota
	speakerAdvisor
)

type transcriptEntry struct {
	From speaker
	Body string
	At   time.Time
}

// resetCommand clears the advisor session from inside the chat tab.
const resetCommand = "/reset"

// ChatModel is the advisor chat tab: a transcript viewport over a prompt
// line, with a spinner while a question is in flight.
type ChatModel struct {
	services   Services
	transcript []transcriptEntry
	input      textinput.Model
	viewport   viewport.Model
	spinner    spinner.Model
	waiting    bool
	err        error
	width      int
	height     int
	ready      bool
}

func NewChatModel(svc Services) ChatModel {
	ti := textinput.New()
	ti.Placeholder = "Ask about a stock, or /reset to start over..."
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(SpinnerColor)

	return ChatModel{
		services: svc,
		input:    ti,
		spinner:  sp,
	}
}

func (m ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case advisorReplyMsg:
		m.transcript = append(m.transcript, transcriptEntry{
			From: speakerAdvisor,
			Body: string(msg),
			At:   time.Now(),
		})
		m.waiting = false
		m.err = nil
		m.refreshTranscript()
		return m, nil

	case advisorErrMsg:
		m.waiting = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter && !m.waiting {
			if cmd := m.submit(); cmd != nil {
				return m, cmd
			}
		}

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m.passthrough(msg, cmd)
		}
	}

	return m.passthrough(msg, nil)
}

// submit consumes the prompt line. Returns nil when there is nothing to do.
func (m *ChatModel) submit() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return nil
	}
	m.input.SetValue("")

	if strings.EqualFold(text, resetCommand) {
		if m.services.Advisor != nil {
			m.services.Advisor.Reset(m.services.SessionID())
		}
		m.transcript = nil
		m.err = nil
		m.refreshTranscript()
		return nil
	}

	m.transcript = append(m.transcript, transcriptEntry{
		From: speakerUser,
		Body: text,
		At:   time.Now(),
	})
	m.waiting = true
	m.refreshTranscript()
	return tea.Batch(m.askAdvisorCmd(text), m.spinner.Tick)
}

// passthrough forwards msg to the prompt (while idle) and the viewport.
func (m ChatModel) passthrough(msg tea.Msg, extra tea.Cmd) (ChatModel, tea.Cmd) {
	cmds := []tea.Cmd{extra}
	if !m.waiting {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m ChatModel) View() string {
	header := HeaderStyle.Render("  Chat with Stock Advisor")
	if m.services.Advisor == nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			"",
			header,
			"",
			SubtextStyle.Render("  Advisor not available. Set OPENAI_API_KEY to enable."),
		)
	}

	if !m.ready {
		m.initViewport()
	}

	rule := SubtextStyle.Render(strings.Repeat("─", max(m.width-2, 1)))
	footer := "  " + m.input.View()
	if m.waiting {
		footer = fmt.Sprintf("  %s Thinking...", m.spinner.View())
	} else if m.err != nil {
		footer = lipgloss.JoinVertical(lipgloss.Left,
			ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err)),
			footer,
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		rule,
		m.viewport.View(),
		rule,
		footer,
	)
}

func (m *ChatModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.input.Width = w - 6
	m.ready = false // viewport is rebuilt on next View
}

func (m *ChatModel) Focus() { m.input.Focus() }
func (m *ChatModel) Blur()  { m.input.Blur() }

func (m ChatModel) IsWaiting() bool   { return m.waiting }
func (m ChatModel) MessageCount() int { return len(m.transcript) }

func (m *ChatModel) initViewport() {
	m.viewport = viewport.New(max(m.width-2, 10), max(m.height-6, 3))
	m.viewport.SetContent(m.renderTranscript())
	m.ready = true
}

func (m *ChatModel) refreshTranscript() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m ChatModel) renderTranscript() string {
	if len(m.transcript) == 0 {
		return SubtextStyle.Render("  Start a conversation by typing a question below.")
	}

	var b strings.Builder
	for _, entry := range m.transcript {
		stamp := SubtextStyle.Render(entry.At.Format("15:04"))
		if entry.From == speakerUser {
			fmt.Fprintf(&b, "  %s  %s %s\n\n", stamp, UserMsgStyle.Render("You:"), entry.Body)
			continue
		}
		fmt.Fprintf(&b, "  %s  %s\n", stamp, AssistantMsgStyle.Render("Advisor:"))
		for _, line := range strings.Split(entry.Body, "\n") {
			fmt.Fprintf(&b, "         %s\n", line)
		}
		b.WriteString("\n")
	}

	if m.waiting {
		fmt.Fprintf(&b, "  %s  %s",
			SubtextStyle.Render(time.Now().Format("15:04")),
			SubtextStyle.Render("Advisor is thinking..."),
		)
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m ChatModel) askAdvisorCmd(question string) tea.Cmd {
	sessionID := m.services.SessionID()
	advisor := m.services.Advisor
	return func() tea.Msg {
		if advisor == nil {
			return advisorErrMsg{err: fmt.Errorf("advisor not available")}
		}
		return advisorReplyMsg(advisor.Ask(context.Background(), sessionID, question))
	}
}

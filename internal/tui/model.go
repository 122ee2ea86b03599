// Package tui is the interactive terminal chat.
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

	"github.com/wellnexa/backend/internal/model/chat"
)

// Replier produces the assistant's reply to one user message.
type Replier func(ctx context.Context, text string) (chat.Message, error)

// Config configures the chat model.
type Config struct {
	Title        string
	Greeting     string
	CrisisNotice string
	Delay        time.Duration
	Reply        Replier
}

type replyMsg struct {
	message chat.Message
	err     error
}

type styles struct {
	header    lipgloss.Style
	user      lipgloss.Style
	assistant lipgloss.Style
	crisis    lipgloss.Style
	notice    lipgloss.Style
	status    lipgloss.Style
	errStatus lipgloss.Style
}

func defaultStyles() styles {
	teal := lipgloss.Color("#2dd4bf")
	muted := lipgloss.Color("#94a3b8")
	alert := lipgloss.Color("#f87171")

	return styles{
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(teal).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(teal).
			Padding(0, 1),
		user:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a5b4fc")),
		assistant: lipgloss.NewStyle().Bold(true).Foreground(teal),
		crisis: lipgloss.NewStyle().
			Foreground(alert).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(alert).
			Padding(0, 1),
		notice:    lipgloss.NewStyle().Foreground(muted).Italic(true),
		status:    lipgloss.NewStyle().Foreground(muted),
		errStatus: lipgloss.NewStyle().Foreground(alert).Bold(true),
	}
}

// Model is the bubbletea model for a single chat session.
type Model struct {
	cfg      Config
	input    textinput.Model
	timeline viewport.Model
	spinner  spinner.Model
	styles   styles

	messages []chat.Message
	pending  int
	err      error
	width    int
	ready    bool
}

// New creates a chat model seeded with the greeting.
func New(cfg Config) Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "Share what's on your mind..."
	input.CharLimit = 2000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#2dd4bf"))

	m := Model{
		cfg:      cfg,
		input:    input,
		timeline: viewport.New(80, 20),
		spinner:  sp,
		styles:   defaultStyles(),
		width:    80,
	}
	if cfg.Greeting != "" {
		m.messages = append(m.messages, chat.Message{
			Sender:    chat.SenderAssistant,
			Content:   cfg.Greeting,
			Category:  chat.CategoryNormal,
			CreatedAt: time.Now(),
		})
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.timeline.Width = msg.Width
		// header, status, input and notice lines
		m.timeline.Height = max(msg.Height-8, 3)
		m.input.Width = max(msg.Width-4, 10)
		m.ready = true
		m.refresh()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	case replyMsg:
		m.pending--
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.messages = append(m.messages, msg.message)
		}
		m.refresh()
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			m.messages = append(m.messages, chat.Message{
				Sender:    chat.SenderUser,
				Content:   text,
				Category:  chat.CategoryNormal,
				CreatedAt: time.Now(),
			})
			m.pending++
			m.refresh()
			return m, m.compose(text)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	default:
		var cmd tea.Cmd
		m.timeline, cmd = m.timeline.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// compose waits out the typing delay, then asks the replier.
func (m Model) compose(text string) tea.Cmd {
	reply := m.cfg.Reply
	return tea.Tick(m.cfg.Delay, func(time.Time) tea.Msg {
		msg, err := reply(context.Background(), text)
		return replyMsg{message: msg, err: err}
	})
}

func (m *Model) refresh() {
	m.timeline.SetContent(m.renderTimeline())
	m.timeline.GotoBottom()
}

func (m Model) renderTimeline() string {
	wrap := lipgloss.NewStyle().Width(max(m.width-4, 20))

	var b strings.Builder
	for i, msg := range m.messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch {
		case msg.Sender == chat.SenderUser:
			b.WriteString(m.styles.user.Render("You"))
			b.WriteString("\n")
			b.WriteString(wrap.Render(msg.Content))
		case msg.IsCrisis():
			b.WriteString(m.styles.assistant.Render("Assistant"))
			b.WriteString("\n")
			b.WriteString(m.styles.crisis.Width(max(m.width-6, 20)).Render(msg.Content))
		default:
			b.WriteString(m.styles.assistant.Render("Assistant"))
			b.WriteString("\n")
			b.WriteString(wrap.Render(msg.Content))
		}
	}
	return b.String()
}

func (m Model) View() string {
	var b strings.Builder
	title := m.cfg.Title
	if title == "" {
		title = "Support chat"
	}
	b.WriteString(m.styles.header.Render(title))
	b.WriteString("\n")
	b.WriteString(m.timeline.View())
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(m.styles.errStatus.Render(fmt.Sprintf("error: %v", m.err)))
	case m.pending > 0:
		b.WriteString(m.spinner.View() + " " + m.styles.status.Render("Assistant is typing..."))
	default:
		b.WriteString(m.styles.status.Render("enter to send, esc to quit"))
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	if m.cfg.CrisisNotice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.notice.Render(m.cfg.CrisisNotice))
	}
	return b.String()
}

// Messages returns the conversation so far.
func (m Model) Messages() []chat.Message {
	return append([]chat.Message(nil), m.messages...)
}

// Pending reports how many replies are still being composed.
func (m Model) Pending() int {
	return m.pending
}

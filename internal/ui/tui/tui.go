// Package tui is the interactive chat surface: a sidebar of past sessions
// grouped by recency, the conversation viewport, and an input line that
// goes inert while a reply is pending.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/streetbotapp/streetbot/internal/agent"
	"github.com/streetbotapp/streetbot/internal/controller"
	"github.com/streetbotapp/streetbot/internal/history"
)

const sidebarWidth = 30

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2F6F4F")).
			Padding(0, 1)

	sidebarStyle = lipgloss.NewStyle().
			Width(sidebarWidth).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true)

	bucketStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#04B575"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F5FD7"))

	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5F87FF"))
	assistantStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
	systemStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8700"))
	serviceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8A8A"))
)

// replyMsg carries a finished agent call back into the update loop.
type replyMsg struct {
	turn  *controller.Turn
	reply *agent.Reply
	err   error
}

// sidebarEntry is one selectable row: a session under its bucket heading.
type sidebarEntry struct {
	heading   string // non-empty on the first row of a bucket
	sessionID string
	title     string
}

type Model struct {
	ctrl *controller.Controller

	viewport  viewport.Model
	input     textinput.Model
	spin      spinner.Model
	entries   []sidebarEntry
	selected  int
	inSidebar bool
	ready     bool
	width     int
	height    int
	quitting  bool
}

func NewModel(ctrl *controller.Controller) Model {
	in := textinput.New()
	in.Placeholder = "What do you need help with?"
	in.CharLimit = 500
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{ctrl: ctrl, input: in, spin: sp}
	m.rebuildSidebar()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyCtrlN:
			m.ctrl.NewChat()
			m.refreshConversation()
			m.rebuildSidebar()
			return m, nil
		case tea.KeyTab:
			m.inSidebar = !m.inSidebar
			if m.inSidebar {
				m.input.Blur()
			} else {
				m.input.Focus()
			}
			return m, nil
		case tea.KeyUp, tea.KeyDown:
			if m.inSidebar {
				m.moveSelection(msg.Type == tea.KeyDown)
				return m, nil
			}
		case tea.KeyEnter:
			if m.inSidebar {
				m.openSelected()
				return m, nil
			}
			return m.submit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		mainWidth := msg.Width - sidebarWidth - 2
		if !m.ready {
			m.viewport = viewport.New(mainWidth, msg.Height-5)
			m.ready = true
		} else {
			m.viewport.Width = mainWidth
			m.viewport.Height = msg.Height - 5
		}
		m.input.Width = mainWidth - 4
		m.refreshConversation()

	case replyMsg:
		m.ctrl.Resolve(msg.turn, msg.reply, msg.err)
		m.refreshConversation()
		m.rebuildSidebar()
		return m, nil

	case spinner.TickMsg:
		if m.ctrl.Pending() {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			m.refreshConversation()
			cmds = append(cmds, cmd)
		}
	}

	// The input control is inert while a turn is pending.
	if !m.ctrl.Pending() && !m.inSidebar {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	turn, err := m.ctrl.Submit(m.input.Value())
	if err != nil {
		// Empty input or a turn already in flight; nothing to show.
		return m, nil
	}
	m.input.Reset()
	m.refreshConversation()
	if turn == nil {
		return m, nil
	}

	call := func() tea.Msg {
		reply, callErr := m.ctrl.Call(context.Background(), turn)
		return replyMsg{turn: turn, reply: reply, err: callErr}
	}
	return m, tea.Batch(call, m.spin.Tick)
}

func (m *Model) moveSelection(down bool) {
	if len(m.entries) == 0 {
		return
	}
	if down && m.selected < len(m.entries)-1 {
		m.selected++
	}
	if !down && m.selected > 0 {
		m.selected--
	}
}

func (m *Model) openSelected() {
	if m.selected >= len(m.entries) {
		return
	}
	if m.ctrl.Open(m.entries[m.selected].sessionID) {
		m.refreshConversation()
		m.inSidebar = false
		m.input.Focus()
	}
}

func (m *Model) refreshConversation() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(renderMessages(m.ctrl.Messages()))
	m.viewport.GotoBottom()
}

func (m *Model) rebuildSidebar() {
	b := m.ctrl.Buckets()
	m.entries = nil

	add := func(heading string, sessions []history.Session) {
		for i, s := range sessions {
			e := sidebarEntry{sessionID: s.SessionID, title: s.Title}
			if i == 0 {
				e.heading = heading
			}
			m.entries = append(m.entries, e)
		}
	}

	add("Today", b.Today)
	add("Yesterday", b.Yesterday)
	add("Previous 7 days", b.Last7Days)
	for _, g := range b.Monthly {
		add(g.Key, g.Sessions)
	}
	if m.selected >= len(m.entries) {
		m.selected = 0
	}
}

func (m Model) View() string {
	if !m.ready {
		return "\n  Loading..."
	}

	header := titleStyle.Render(" Street Bot ")
	if !m.ctrl.Connected() {
		header += systemStyle.Render(" disconnected ")
	}

	inputView := m.input.View()
	if m.ctrl.Pending() {
		inputView = m.spin.View() + " waiting for the assistant..."
	}

	main := fmt.Sprintf("%s\n%s\n\n%s", header, m.viewport.View(), inputView)
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarStyle.Render(m.sidebarView()), main)
}

func (m Model) sidebarView() string {
	if len(m.entries) == 0 {
		return "No conversations yet\n\nctrl+n new chat\ntab   switch pane"
	}

	var sb strings.Builder
	for i, e := range m.entries {
		if e.heading != "" {
			sb.WriteString(bucketStyle.Render(e.heading))
			sb.WriteString("\n")
		}
		title := e.title
		if r := []rune(title); len(r) > sidebarWidth-4 {
			title = string(r[:sidebarWidth-4])
		}
		line := "  " + title
		if m.inSidebar && i == m.selected {
			line = selectedStyle.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderMessages(msgs []history.Message) string {
	var sb strings.Builder
	for _, msg := range msgs {
		switch msg.Role {
		case history.RoleUser:
			sb.WriteString(userStyle.Render("You: "))
		case history.RoleSystem:
			sb.WriteString(systemStyle.Render("Notice: "))
		default:
			sb.WriteString(assistantStyle.Render("Street Bot: "))
		}
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
		if msg.Metadata != nil {
			sb.WriteString(renderServices(msg.Metadata.Services))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderServices(services []history.Service) string {
	var sb strings.Builder
	for _, s := range services {
		line := "  - " + s.Name
		var details []string
		if s.Address != "" {
			details = append(details, s.Address)
		}
		if s.Phone != "" {
			details = append(details, s.Phone)
		}
		if s.Hours != "" {
			details = append(details, s.Hours)
		}
		if len(details) > 0 {
			line += " (" + strings.Join(details, ", ") + ")"
		}
		sb.WriteString(serviceStyle.Render(line))
		sb.WriteString("\n")
	}
	return sb.String()
}

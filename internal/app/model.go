package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"

	"github.com/mergedocs/mergedocs/internal/merge"
)

var (
	titleStyle   = color.New(color.FgCyan, color.Bold).SprintFunc()
	cursorStyle  = color.New(color.FgGreen, color.Bold).SprintFunc()
	successStyle = color.New(color.FgGreen).SprintFunc()
	errorStyle   = color.New(color.FgRed).SprintFunc()
	faintStyle   = color.New(color.Faint).SprintFunc()
)

// Model is the bubbletea model driving the interactive menu. All document
// state lives in the session; the model only tracks navigation and the
// in-progress prompt input.
type Model struct {
	session *merge.Session

	menu   *Menu
	cursor int

	// Prompt input state. prompting toggles the update loop between menu
	// navigation and line editing.
	prompting bool
	prompts   []Prompt
	values    []string
	promptIdx int
	buffer    string
	pending   func(s *merge.Session, values []string) tea.Cmd

	status   []string
	quitting bool
}

// NewModel builds the menu tree around an existing session.
func NewModel(session *merge.Session) Model {
	return Model{
		session: session,
		menu:    buildMenuTree(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		if m.prompting {
			return m.updatePrompt(msg)
		}
		return m.updateMenu(msg)

	case opResult:
		m.status = m.status[:0]
		if msg.text != "" {
			m.status = append(m.status, successStyle(msg.text))
		}
		for _, e := range msg.errs {
			m.status = append(m.status, errorStyle(e))
		}
		return m, nil
	}

	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {

	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.menu.Items)-1 {
			m.cursor++
		}

	case "esc", "left", "h":
		if m.menu.Parent != nil {
			m.menu = m.menu.Parent
			m.cursor = 0
		}

	case "enter", "right", "l":
		return m.selectItem()
	}

	return m, nil
}

func (m Model) selectItem() (tea.Model, tea.Cmd) {
	item := m.menu.Items[m.cursor]
	m.status = nil

	switch {
	case item.Label == "Quit":
		m.quitting = true
		return m, tea.Quit

	case item.Label == "Back":
		if item.Submenu != nil {
			m.menu = item.Submenu
			m.cursor = 0
		}
		return m, nil

	case item.Submenu != nil:
		m.menu = item.Submenu
		m.cursor = 0
		return m, nil

	case len(item.Prompts) > 0:
		m.prompting = true
		m.prompts = item.Prompts
		m.values = make([]string, 0, len(item.Prompts))
		m.promptIdx = 0
		m.buffer = ""
		m.pending = item.Action
		return m, nil

	case item.Action != nil:
		return m, item.Action(m.session, nil)
	}

	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {

	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEsc:
		m.prompting = false
		return m, nil

	case tea.KeyBackspace:
		if m.buffer != "" {
			r := []rune(m.buffer)
			m.buffer = string(r[:len(r)-1])
		}

	case tea.KeyEnter:
		value := m.buffer
		if value == "" {
			value = m.prompts[m.promptIdx].Default
		}
		m.values = append(m.values, value)
		m.buffer = ""
		m.promptIdx++

		if m.promptIdx < len(m.prompts) {
			return m, nil
		}

		m.prompting = false
		return m, m.pending(m.session, m.values)

	case tea.KeySpace:
		m.buffer += " "

	case tea.KeyRunes:
		m.buffer += string(msg.Runes)
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle(m.menu.Title))
	b.WriteString("\n")
	b.WriteString(m.sessionLine())
	b.WriteString("\n\n")

	if m.prompting {
		p := m.prompts[m.promptIdx]
		label := p.Label
		if p.Default != "" {
			label += fmt.Sprintf(" [%s]", p.Default)
		}
		fmt.Fprintf(&b, "%s: %s_\n\n", label, m.buffer)
		b.WriteString(faintStyle("enter to confirm, esc to cancel"))
		b.WriteString("\n")
		return b.String()
	}

	for i, item := range m.menu.Items {
		if i == m.cursor {
			fmt.Fprintf(&b, "%s %s\n", cursorStyle(">"), cursorStyle(item.Label))
		} else {
			fmt.Fprintf(&b, "  %s\n", item.Label)
		}
	}

	for _, line := range m.status {
		b.WriteString("\n")
		b.WriteString(line)
	}
	if len(m.status) > 0 {
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(faintStyle("j/k move · enter select · esc back · q quit"))
	b.WriteString("\n")

	return b.String()
}

// sessionLine summarizes what has been loaded so far.
func (m Model) sessionLine() string {
	parts := make([]string, 0, 3)

	if m.session.Template() == "" {
		parts = append(parts, "no template")
	} else {
		parts = append(parts, fmt.Sprintf("%d placeholder(s)", len(m.session.Placeholders())))
	}

	if n := m.session.RowCount(); n == 0 {
		parts = append(parts, "no data")
	} else {
		parts = append(parts, fmt.Sprintf("%d row(s)", n))
	}

	d := m.session.Delimiters()
	parts = append(parts, fmt.Sprintf("delimiters %s...%s", d.Start, d.End))

	return faintStyle(strings.Join(parts, " | "))
}

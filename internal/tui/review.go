// Package tui provides the interactive rename plan review.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/scramble-dev/scramble/internal/core/batch"
	"github.com/scramble-dev/scramble/internal/styles"
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	All     key.Binding
	None    key.Binding
	Confirm key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		All:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		None:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "select none")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "rename selected")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "cancel")),
	}
}

var (
	titleStyle    = lipgloss.NewStyle().Foreground(styles.ColorBlue).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(styles.ColorBlue)
	checkedStyle  = lipgloss.NewStyle().Foreground(styles.ColorGreen)
	excludedStyle = lipgloss.NewStyle().Foreground(styles.ColorGray).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Foreground(styles.ColorGray)
)

// Model is the plan review list: every planned pair can be toggled on or
// off before execution.
type Model struct {
	pairs     []batch.Pair
	included  []bool
	cursor    int
	confirmed bool
	keys      keyMap
}

// NewReview creates a review model with every pair included.
func NewReview(pairs []batch.Pair) Model {
	included := make([]bool, len(pairs))
	for i := range included {
		included[i] = true
	}
	return Model{
		pairs:    pairs,
		included: included,
		keys:     defaultKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.pairs)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Toggle):
		m.included[m.cursor] = !m.included[m.cursor]
	case key.Matches(keyMsg, m.keys.All):
		for i := range m.included {
			m.included[i] = true
		}
	case key.Matches(keyMsg, m.keys.None):
		for i := range m.included {
			m.included[i] = false
		}
	case key.Matches(keyMsg, m.keys.Confirm):
		m.confirmed = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Quit):
		m.confirmed = false
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("Rename plan (%d/%d selected)", m.selectedCount(), len(m.pairs))))
	sb.WriteString("\n\n")

	for i, pair := range m.pairs {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}

		check := excludedStyle.Render("[ ]")
		line := fmt.Sprintf("%s %s %s",
			filepath.Base(pair.Source),
			styles.ArrowStyle.Render("->"),
			filepath.Base(pair.Destination),
		)
		if m.included[i] {
			check = checkedStyle.Render("[x]")
		} else {
			line = excludedStyle.Render(line)
		}

		sb.WriteString(fmt.Sprintf("%s%s %s\n", cursor, check, line))
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("space toggle • a all • n none • enter rename • q cancel"))
	sb.WriteString("\n")
	return sb.String()
}

// Selected returns the pairs left included, in plan order.
func (m Model) Selected() []batch.Pair {
	var selected []batch.Pair
	for i, pair := range m.pairs {
		if m.included[i] {
			selected = append(selected, pair)
		}
	}
	return selected
}

// Confirmed reports whether the user confirmed the selection.
func (m Model) Confirmed() bool {
	return m.confirmed
}

func (m Model) selectedCount() int {
	count := 0
	for _, inc := range m.included {
		if inc {
			count++
		}
	}
	return count
}

// ReviewPlan runs the review TUI and returns the pairs to execute. A
// cancelled review returns no pairs and no error.
func ReviewPlan(pairs []batch.Pair) ([]batch.Pair, error) {
	program := tea.NewProgram(NewReview(pairs))

	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("run review: %w", err)
	}

	model, ok := final.(Model)
	if !ok || !model.Confirmed() {
		return nil, nil
	}
	return model.Selected(), nil
}

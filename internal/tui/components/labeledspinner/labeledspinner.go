// Package labeledspinner renders a spinner with a title, a subtitle and help text.
package labeledspinner

import (
	"strings"

	"github.com/alkime/storyform/internal/tui/style"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Model displays a spinner while a long-running step (drafting, publishing) is in flight.
type Model struct {
	Spinner  spinner.Model
	Title    string
	Subtitle string
	Help     string
}

// New creates a new labeled spinner with the given configuration.
func New(s spinner.Spinner, title, subtitle, help string) Model {
	sp := spinner.New()
	sp.Spinner = s
	sp.Style = style.Key

	return Model{
		Spinner:  sp,
		Title:    title,
		Subtitle: subtitle,
		Help:     help,
	}
}

// Init returns the initial command for the spinner.
func (ls Model) Init() tea.Cmd {
	return ls.Spinner.Tick
}

// Update handles spinner tick messages.
func (ls Model) Update(teaMsg tea.Msg) (Model, tea.Cmd) {
	if tickMsg, ok := teaMsg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		ls.Spinner, cmd = ls.Spinner.Update(tickMsg)

		return ls, cmd
	}

	return ls, nil
}

// View renders the spinner line; empty subtitle and help lines are left out.
func (ls Model) View() string {
	var sb strings.Builder

	sb.WriteString(ls.Spinner.View())
	sb.WriteString(" ")
	sb.WriteString(style.Title.Render(ls.Title))

	for _, line := range []string{
		style.Subtitle.Render(ls.Subtitle),
		style.Help.Render(ls.Help),
	} {
		if strings.TrimSpace(line) == "" {
			continue
		}
		sb.WriteString("\n\n")
		sb.WriteString(line)
	}

	return sb.String()
}

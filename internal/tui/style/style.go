// Package style defines lipgloss styles for the TUI.
package style

import (
	"github.com/alkime/storyform/internal/notice"
	"github.com/charmbracelet/lipgloss"
)

// Styles are package-level values; lipgloss styles are immutable and safe to share.
var (
	// Title is used for phase titles and headers.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205"))

	// Subtitle is used for secondary text.
	Subtitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	Success = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	Error = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	Warning = lipgloss.NewStyle().
		Foreground(lipgloss.Color("214"))

	Info = lipgloss.NewStyle().
		Foreground(lipgloss.Color("39"))

	// Panel frames the story preview.
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1)

	// Help is used for keyboard shortcut hints.
	Help = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	// Key highlights keyboard keys inside help text.
	Key = lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)

	// Label is used for field names such as "Story URL:".
	Label = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("255"))

	// Link renders URLs and file paths.
	Link = lipgloss.NewStyle().
		Underline(true).
		Foreground(lipgloss.Color("45"))
)

// ForNotice picks the style and marker for a notice level.
func ForNotice(level notice.Level) (lipgloss.Style, string) {
	switch level {
	case notice.LevelWarning:
		return Warning, "!"
	case notice.LevelSuccess:
		return Success, "✓"
	default:
		return Info, "i"
	}
}

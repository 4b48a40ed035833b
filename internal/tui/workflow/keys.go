package workflow

import (
	"strings"

	"github.com/alkime/storyform/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the bindings shared by every phase.
type KeyMap struct {
	Proceed   key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Proceed: key.NewBinding(
			key.WithKeys("enter", "y"),
			key.WithHelp("enter/y", "publish"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
	}
}

func renderKeyHelp(keyBinding key.Binding, suffix ...string) string {
	s := style.Help.Render("[") + style.Key.Render(keyBinding.Help().Key) +
		style.Help.Render("] ") +
		style.Help.Render(keyBinding.Help().Desc)

	return s + strings.Join(suffix, "")
}

func renderGlobalKeyHelp() string {
	km := DefaultKeyMap()

	return renderKeyHelp(km.Quit, " ") + renderKeyHelp(km.ForceQuit, "\n")
}

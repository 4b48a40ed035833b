package labeledspinner_test

import (
	"testing"

	"github.com/alkime/storyform/internal/tui/components/labeledspinner"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

//nolint:gochecknoinits // recommend for CI by bubbletea folks
func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestLabeledSpinner(t *testing.T) {
	m := labeledspinner.New(spinner.Dot, "Publishing story...", "Uploading HTML", "This may take a moment")

	v0 := m.View()
	t.Run("view output", func(t *testing.T) {
		assert.Contains(t, v0, "Publishing story...")
		assert.Contains(t, v0, "Uploading HTML")
		assert.Contains(t, v0, "This may take a moment")
		assert.Contains(t, v0, spinner.Dot.Frames[0])
	})

	t.Run("check updates", func(t *testing.T) {
		m, _ = m.Update(spinner.TickMsg{})
		assert.Contains(t, m.View(), spinner.Dot.Frames[1])
		m, _ = m.Update(spinner.TickMsg{})
		assert.Contains(t, m.View(), spinner.Dot.Frames[2])
	})

	t.Run("blank lines skipped", func(t *testing.T) {
		bare := labeledspinner.New(spinner.Dot, "Only title", "", "")
		assert.NotContains(t, bare.View(), "\n")
	})
}

// Package tui runs the terminal publishing workflow.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/alkime/storyform/internal/tui/components/phases"
	"github.com/alkime/storyform/internal/tui/style"
	"github.com/alkime/storyform/internal/tui/workflow"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Config wires the workflow to its collaborators.
type Config struct {
	Ctx       context.Context
	Cancel    context.CancelFunc
	Story     *workflow.Story
	Drafter   workflow.Drafter
	Publisher workflow.Publisher
	OutputDir string
}

type model struct {
	config Config
	keys   workflow.KeyMap
	phases phases.Model
}

// New creates the workflow model: metadata, publish, summary.
func New(config Config) tea.Model {
	if config.Ctx == nil {
		config.Ctx = context.Background()
	}

	return &model{
		config: config,
		keys:   workflow.DefaultKeyMap(),
		phases: phases.New([]phases.Phase{
			phases.NewPhase("Metadata", workflow.NewMetadataPhase(config.Ctx, config.Story, config.Drafter)),
			phases.NewPhase("Publish", workflow.NewPublishingPhase(config.Ctx, config.Story, config.Publisher, config.OutputDir)),
			phases.NewPhase("Summary", workflow.NewSummaryPhase(config.Story)),
		}),
	}
}

// Init returns the initial command.
func (m *model) Init() tea.Cmd {
	return m.phases.Init()
}

// Update handles all messages.
func (m *model) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	// Global key handling (quit from any phase)
	if km, ok := teaMsg.(tea.KeyMsg); ok {
		if key.Matches(km, m.keys.ForceQuit) || key.Matches(km, m.keys.Quit) {
			if m.config.Cancel != nil {
				m.config.Cancel()
			}

			return m, tea.Quit
		}
	}

	// Delegate to phases container
	updatedPhases, cmd := m.phases.Update(teaMsg)
	m.phases = updatedPhases.(phases.Model) //nolint:forcetypeassert // phases.Model always returns phases.Model

	return m, cmd
}

// View renders the current UI.
func (m *model) View() string {
	var sb strings.Builder

	pos, total := m.phases.Progress()
	sb.WriteString(style.Subtitle.Render(fmt.Sprintf("Step %d/%d: %s", pos, total, m.phases.CurrentPhaseName())))
	sb.WriteString("\n\n")

	sb.WriteString(m.phases.View())

	return sb.String()
}

package workflow

import (
	"context"
	"log/slog"
	"strings"

	"github.com/alkime/storyform/internal/content"
	"github.com/alkime/storyform/internal/tui/components/labeledspinner"
	"github.com/alkime/storyform/internal/tui/components/phases"
	"github.com/alkime/storyform/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type metadataDraftedMsg struct {
	metadata content.Metadata
	cached   bool
	err      error
}

type metadataPhase struct {
	ctx     context.Context
	story   *Story
	drafter Drafter
	spinner labeledspinner.Model
	keys    KeyMap

	done    bool
	skipped bool
	cached  bool
	err     error
}

// NewMetadataPhase drafts the blank metadata fields for the story title, then
// waits for the operator to confirm before publishing.
func NewMetadataPhase(ctx context.Context, st *Story, drafter Drafter) tea.Model {
	return &metadataPhase{
		ctx:     ctx,
		story:   st,
		drafter: drafter,
		spinner: labeledspinner.New(
			spinner.Pulse,
			"Drafting metadata...",
			st.Submission.Title,
			"Asking the model for a description, keywords and tags",
		),
		keys: DefaultKeyMap(),
	}
}

func (mp *metadataPhase) Init() tea.Cmd {
	if !mp.story.NeedsMetadata() {
		mp.done = true
		mp.skipped = true

		return nil
	}

	return tea.Batch(mp.spinner.Init(), mp.draftCmd(mp.story.Submission.Title))
}

func (mp *metadataPhase) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := teaMsg.(type) {
	case metadataDraftedMsg:
		mp.done = true
		mp.cached = msg.cached
		mp.err = msg.err
		if msg.err == nil {
			mp.story.ApplyMetadata(msg.metadata)
		}

		return mp, nil

	case tea.KeyMsg:
		if mp.done && key.Matches(msg, mp.keys.Proceed) {
			return mp, phases.NextPhaseCmd
		}

		return mp, nil
	}

	var cmd tea.Cmd
	mp.spinner, cmd = mp.spinner.Update(teaMsg)

	return mp, cmd
}

func (mp *metadataPhase) View() string {
	if !mp.done {
		return mp.spinner.View()
	}

	var sb strings.Builder

	sb.WriteString(style.Title.Render(mp.story.Submission.Title))
	sb.WriteString("\n\n")

	switch {
	case mp.err != nil:
		sb.WriteString(style.Warning.Render("! Metadata generation failed: " + mp.err.Error()))
		sb.WriteString("\n\n")
	case mp.skipped:
		sb.WriteString(style.Subtitle.Render("Using the metadata provided on the command line."))
		sb.WriteString("\n\n")
	case mp.cached:
		sb.WriteString(style.Subtitle.Render("Reusing metadata drafted earlier for this title."))
		sb.WriteString("\n\n")
	}

	sub := mp.story.Submission
	for _, field := range []struct{ label, value string }{
		{"Description", sub.MetaDescription},
		{"Keywords", sub.MetaKeywords},
		{"Tags", sub.FilterTags},
	} {
		sb.WriteString(style.Label.Render(field.label + ": "))
		if blank(field.value) {
			sb.WriteString(style.Warning.Render("(blank)"))
		} else {
			sb.WriteString(field.value)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(renderKeyHelp(mp.keys.Proceed, "\n"))
	sb.WriteString(renderGlobalKeyHelp())

	return sb.String()
}

func (mp *metadataPhase) draftCmd(title string) tea.Cmd {
	return func() tea.Msg {
		md, cached, err := mp.drafter.Draft(mp.ctx, title)
		if err != nil {
			slog.Warn("Metadata generation failed", "error", err)
		}

		return metadataDraftedMsg{metadata: md, cached: cached, err: err}
	}
}

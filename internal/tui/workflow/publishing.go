package workflow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alkime/storyform/internal/pipeline"
	"github.com/alkime/storyform/internal/story"
	"github.com/alkime/storyform/internal/tui/components/labeledspinner"
	"github.com/alkime/storyform/internal/tui/components/phases"
	"github.com/alkime/storyform/internal/tui/style"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type publishedMsg struct {
	result      *pipeline.Result
	archivePath string
}

type publishFailedMsg struct {
	err error
}

type publishingPhase struct {
	ctx       context.Context
	story     *Story
	publisher Publisher
	outputDir string
	spinner   labeledspinner.Model
	err       error
}

// NewPublishingPhase submits the story and writes the downloaded archive into outputDir.
func NewPublishingPhase(ctx context.Context, st *Story, publisher Publisher, outputDir string) tea.Model {
	return &publishingPhase{
		ctx:       ctx,
		story:     st,
		publisher: publisher,
		outputDir: outputDir,
		spinner: labeledspinner.New(
			spinner.Dot,
			"Publishing story...",
			"Uploading the image and the composed HTML",
			"",
		),
	}
}

func (pp *publishingPhase) Init() tea.Cmd {
	return tea.Batch(pp.spinner.Init(), pp.publishCmd(pp.story.Submission))
}

func (pp *publishingPhase) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := teaMsg.(type) {
	case publishedMsg:
		pp.story.Result = msg.result
		pp.story.ArchivePath = msg.archivePath

		return pp, phases.NextPhaseCmd

	case publishFailedMsg:
		pp.err = msg.err

		return pp, nil
	}

	if pp.err != nil {
		return pp, nil
	}

	var cmd tea.Cmd
	pp.spinner, cmd = pp.spinner.Update(teaMsg)

	return pp, cmd
}

func (pp *publishingPhase) View() string {
	if pp.err == nil {
		return pp.spinner.View()
	}

	var sb strings.Builder

	sb.WriteString(style.Error.Render("✗ Story was not published"))
	sb.WriteString("\n\n")

	var verr *story.ValidationError
	if errors.As(pp.err, &verr) {
		if len(verr.Missing) > 0 {
			sb.WriteString(style.Label.Render("Missing: "))
			sb.WriteString(strings.Join(verr.Missing, ", "))
			sb.WriteString("\n")
		}
		for _, p := range verr.Problems {
			sb.WriteString(style.Warning.Render("! " + p))
			sb.WriteString("\n")
		}
	} else {
		sb.WriteString(style.Error.Render(pp.err.Error()))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(renderGlobalKeyHelp())

	return sb.String()
}

func (pp *publishingPhase) publishCmd(sub story.Submission) tea.Cmd {
	return func() tea.Msg {
		res, err := pp.publisher.Submit(pp.ctx, sub)
		if err != nil {
			return publishFailedMsg{err: err}
		}

		path := filepath.Join(pp.outputDir, res.ArchiveName)
		//nolint:gosec // Bundles are meant to be shared
		if err := os.WriteFile(path, res.Archive, 0o644); err != nil {
			return publishFailedMsg{err: fmt.Errorf("story published at %s but the archive could not be saved: %w", res.StoryURL, err)}
		}

		return publishedMsg{result: res, archivePath: path}
	}
}

package workflow

import (
	"strings"

	"github.com/alkime/storyform/internal/tui/style"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const minPreviewWidth = 20

type summaryPhase struct {
	story *Story
	width int
}

// NewSummaryPhase shows the published URLs, the archive location, notices and a preview.
func NewSummaryPhase(st *Story) tea.Model {
	return &summaryPhase{
		story: st,
		width: 80,
	}
}

func (sp *summaryPhase) Init() tea.Cmd {
	return tea.WindowSize()
}

func (sp *summaryPhase) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := teaMsg.(tea.WindowSizeMsg); ok {
		sp.width = msg.Width
	}

	return sp, nil
}

func (sp *summaryPhase) View() string {
	res := sp.story.Result
	if res == nil {
		return style.Subtitle.Render("Nothing published yet.")
	}

	var sb strings.Builder

	sb.WriteString(style.Success.Render("✓ Story published!"))
	sb.WriteString("\n\n")

	for _, line := range []struct{ label, value string }{
		{"Live Story URL: ", res.StoryURL},
		{"HTML: ", res.IDs.HostedURL},
		{"Archive: ", sp.story.ArchivePath},
	} {
		sb.WriteString(style.Label.Render(line.label))
		sb.WriteString(style.Link.Render(line.value))
		sb.WriteString("\n")
	}

	if len(res.Notices) > 0 {
		sb.WriteString("\n")
		for _, n := range res.Notices {
			st, marker := style.ForNotice(n.Level)
			sb.WriteString(st.Render(marker + " " + n.Message))
			sb.WriteString("\n")
		}
	}

	if res.Preview != "" {
		width := max(sp.width-4, minPreviewWidth)
		sb.WriteString("\n")
		sb.WriteString(style.Panel.Render(lipgloss.NewStyle().Width(width).Render(res.Preview)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(renderGlobalKeyHelp())

	return sb.String()
}

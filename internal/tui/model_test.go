package tui

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alkime/storyform/internal/config"
	"github.com/alkime/storyform/internal/content"
	"github.com/alkime/storyform/internal/pipeline"
	"github.com/alkime/storyform/internal/session"
	"github.com/alkime/storyform/internal/storage"
	"github.com/alkime/storyform/internal/story"
	"github.com/alkime/storyform/internal/tui/workflow"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:gochecknoinits // recommend for CI by bubbletea folks
func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

type staticGenerator struct{}

func (staticGenerator) GenerateMetadata(context.Context, string) (content.Metadata, error) {
	return content.Metadata{
		Description: "An evening of live jazz",
		Keywords:    "jazz, mumbai, live music",
		Tags:        "jazz, music",
	}, nil
}

func waitFor(t *testing.T, tm *teatest.TestModel, substr string) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), func(buf []byte) bool {
		return bytes.Contains(buf, []byte(substr))
	}, teatest.WithCheckInterval(50*time.Millisecond), teatest.WithDuration(3*time.Second))
}

func TestWorkflow_EndToEnd(t *testing.T) {
	outDir := t.TempDir()
	store := storage.NewMemory()
	cfg := &config.Config{
		TemplatePath:      filepath.Join("..", "..", "templates", "masterregex.html"),
		MediaBucket:       "suvichaarapp",
		StoriesBucket:     "suvichaarstories",
		S3Prefix:          "media/",
		CDNBase:           "https://media.suvichaar.org/",
		MediaHost:         "https://media.suvichaar.org/",
		StoryHost:         "https://stories.suvichaar.org/",
		CanonicalBase:     "https://suvichaar.org/stories/",
		ImageFetchTimeout: time.Second,
	}

	st := &workflow.Story{Submission: story.Submission{
		Title:       "Jazz in Mumbai",
		ContentType: "Article",
		Language:    "en-US",
		ImageURL:    "https://media.suvichaar.org/media/jazz.jpg",
		RawHTML: `<html><head><style amp-custom>h1{}</style></head><body><amp-story>` +
			`<amp-story-page id="p1"><h1>Live tonight</h1></amp-story-page></amp-story></body></html>`,
		Category: "Culture",
	}}

	m := New(Config{
		Story:     st,
		Drafter:   workflow.CachedDrafter{Cache: session.NewCache(), Generator: staticGenerator{}},
		Publisher: pipeline.New(cfg, store, config.DefaultProfile()),
		OutputDir: outDir,
	})

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(120, 40))

	waitFor(t, tm, "Step 1/3: Metadata")
	waitFor(t, tm, "An evening of live jazz")

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	waitFor(t, tm, "Step 3/3: Summary")
	waitFor(t, tm, "Story published!")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	archive, err := os.ReadFile(filepath.Join(outDir, "Jazz in Mumbai.zip"))
	require.NoError(t, err)
	assert.Equal(t, "PK", string(archive[:2]))

	require.NotNil(t, st.Result)
	_, ok := store.Get("suvichaarstories", st.Result.IDs.Composite+".html")
	assert.True(t, ok)
}

func TestWorkflow_QuitCancels(t *testing.T) {
	cancelled := false
	st := &workflow.Story{Submission: story.Submission{
		Title:           "Anything",
		MetaDescription: "d",
		MetaKeywords:    "k",
		FilterTags:      "t",
	}}

	m := New(Config{
		Cancel: func() { cancelled = true },
		Story:  st,
	})

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))
	waitFor(t, tm, "Using the metadata provided")

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	assert.True(t, cancelled)
}

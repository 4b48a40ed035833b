package workflow

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alkime/storyform/internal/content"
	"github.com/alkime/storyform/internal/notice"
	"github.com/alkime/storyform/internal/pipeline"
	"github.com/alkime/storyform/internal/story"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
)

//nolint:gochecknoinits // recommend for CI by bubbletea folks
func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// outputChecker provides helpers for testing teatest output.
type outputChecker struct {
	intervl, timeout time.Duration
}

func defaultChecker() outputChecker {
	return outputChecker{
		intervl: 100 * time.Millisecond,
		timeout: 3 * time.Second,
	}
}

func (o outputChecker) check(t *testing.T, tm *teatest.TestModel, checkFunc func(buf []byte) bool) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), checkFunc,
		teatest.WithCheckInterval(o.intervl),
		teatest.WithDuration(o.timeout))
}

func (o outputChecker) checkString(t *testing.T, tm *teatest.TestModel, substr string) {
	t.Helper()
	o.check(t, tm, func(buf []byte) bool {
		return bytes.Contains(buf, []byte(substr))
	})
}

// mockDrafter implements Drafter for testing.
type mockDrafter struct {
	mu       sync.Mutex
	metadata content.Metadata
	cached   bool
	err      error
	calls    int
}

func (m *mockDrafter) Draft(_ context.Context, _ string) (content.Metadata, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++

	return m.metadata, m.cached, m.err
}

func (m *mockDrafter) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.calls
}

// mockPublisher implements Publisher for testing.
type mockPublisher struct {
	mu     sync.Mutex
	result *pipeline.Result
	err    error
	got    story.Submission
}

func (m *mockPublisher) Submit(_ context.Context, sub story.Submission) (*pipeline.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.got = sub

	return m.result, m.err
}

func testResult() *pipeline.Result {
	return &pipeline.Result{
		IDs: story.Identifiers{
			Suffix:       "abcdefghijG",
			Composite:    "jazz-in-mumbai_abcdefghijG",
			CanonicalURL: "https://suvichaar.org/stories/jazz-in-mumbai_abcdefghijG",
			HostedURL:    "https://stories.suvichaar.org/jazz-in-mumbai_abcdefghijG.html",
		},
		StoryURL:    "https://suvichaar.org/stories/jazz-in-mumbai_abcdefghijG",
		Archive:     []byte("PK-archive"),
		ArchiveName: "Jazz in Mumbai.zip",
		Notices: []notice.Notice{
			{Level: notice.LevelInfo, Message: "No <style amp-custom> block found in uploaded HTML."},
			{Level: notice.LevelSuccess, Message: "HTML uploaded successfully!"},
		},
		Preview: "# Jazz in Mumbai",
	}
}

func testStory() *Story {
	return &Story{
		Submission: story.Submission{
			Title:       "Jazz in Mumbai",
			ContentType: "Article",
			Language:    "en-US",
			ImageURL:    "https://media.suvichaar.org/media/a.jpg",
			RawHTML:     "<amp-story-page></amp-story-page>",
			Category:    "Culture",
		},
	}
}

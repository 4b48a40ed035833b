package workflow

import (
	"testing"

	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
)

func TestSummaryPhase(t *testing.T) {
	st := testStory()
	st.Result = testResult()
	st.ArchivePath = "/tmp/Jazz in Mumbai.zip"

	tm := teatest.NewTestModel(t, NewSummaryPhase(st), teatest.WithInitialTermSize(100, 40))
	checker := defaultChecker()

	checker.checkString(t, tm, "Story published!")
	checker.checkString(t, tm, "https://suvichaar.org/stories/jazz-in-mumbai_abcdefghijG")
	checker.checkString(t, tm, "HTML uploaded successfully!")
	checker.checkString(t, tm, "# Jazz in Mumbai")
}

func TestSummaryPhase_NothingPublished(t *testing.T) {
	assert.Contains(t, NewSummaryPhase(testStory()).View(), "Nothing published yet")
}

package workflow

import (
	"strings"

	"github.com/alkime/storyform/internal/content"
	"github.com/alkime/storyform/internal/pipeline"
	"github.com/alkime/storyform/internal/story"
)

// Story is the state shared by the workflow phases. Only Update methods mutate it.
type Story struct {
	Submission  story.Submission
	Result      *pipeline.Result
	ArchivePath string
}

// NeedsMetadata reports whether any drafted field is still blank.
func (s *Story) NeedsMetadata() bool {
	sub := s.Submission

	return blank(sub.MetaDescription) || blank(sub.MetaKeywords) || blank(sub.FilterTags)
}

// ApplyMetadata fills the blank metadata fields; operator-supplied values win.
func (s *Story) ApplyMetadata(md content.Metadata) {
	if blank(s.Submission.MetaDescription) {
		s.Submission.MetaDescription = md.Description
	}
	if blank(s.Submission.MetaKeywords) {
		s.Submission.MetaKeywords = md.Keywords
	}
	if blank(s.Submission.FilterTags) {
		s.Submission.FilterTags = md.Tags
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

package story

import (
	"fmt"
	"strings"

	"github.com/alkime/storyform/pkg/collections"
)

// Submission is one operator form submission. It is never persisted.
type Submission struct {
	Title           string
	MetaDescription string
	MetaKeywords    string
	ContentType     string
	Language        string
	ImageURL        string
	RawHTML         string
	Category        string
	FilterTags      string
	CustomCoverURL  string
}

// ValidationError lists everything wrong with a submission at once.
type ValidationError struct {
	Missing  []string
	Problems []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(e.Missing, ", "))
	}
	parts = append(parts, e.Problems...)

	return strings.Join(parts, "; ")
}

// Validate checks the submission in full before any side effect.
// It returns a *ValidationError or nil.
func (s Submission) Validate() error {
	required := []struct {
		label string
		value string
	}{
		{"Story Title", s.Title},
		{"Meta Description", s.MetaDescription},
		{"Meta Keywords", s.MetaKeywords},
		{"Content Type", s.ContentType},
		{"Language", s.Language},
		{"Image URL", s.ImageURL},
		{"Filter Tags", s.FilterTags},
		{"Category", s.Category},
		{"Raw HTML File", s.RawHTML},
	}

	verr := &ValidationError{}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			verr.Missing = append(verr.Missing, f.label)
		}
	}

	if strings.TrimSpace(s.Category) != "" {
		if _, err := ParseCategory(s.Category); err != nil {
			verr.Problems = append(verr.Problems, err.Error())
		}
	}

	if len(verr.Missing) > 0 || len(verr.Problems) > 0 {
		return verr
	}

	return nil
}

// CategoryCode resolves the submission's category.
func (s Submission) CategoryCode() (Category, error) {
	c, err := ParseCategory(s.Category)
	if err != nil {
		return 0, fmt.Errorf("submission category: %w", err)
	}

	return c, nil
}

// TagList splits the comma-separated tags, dropping blanks.
func (s Submission) TagList() []string {
	return SplitList(s.FilterTags)
}

// CoverURL is the custom cover when given, else the image URL.
func (s Submission) CoverURL() string {
	if c := strings.TrimSpace(s.CustomCoverURL); c != "" {
		return c
	}

	return strings.TrimSpace(s.ImageURL)
}

// SplitList splits a comma-separated list into trimmed, non-empty items.
func SplitList(csv string) []string {
	items := collections.Apply(strings.Split(csv, ","), strings.TrimSpace)

	return collections.Filter(items, func(s string) bool { return s != "" })
}

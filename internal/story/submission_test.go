package story

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() Submission {
	return Submission{
		Title:           "Test Story",
		MetaDescription: "A short description.",
		MetaKeywords:    "music, culture",
		ContentType:     "Article",
		Language:        "en-US",
		ImageURL:        "https://example.com/cover.png",
		RawHTML:         "<html></html>",
		Category:        "Culture",
		FilterTags:      "music, culture",
	}
}

func TestSubmission_Validate(t *testing.T) {
	require.NoError(t, validSubmission().Validate())
}

func TestSubmission_Validate_MissingFields(t *testing.T) {
	s := validSubmission()
	s.ImageURL = "  "
	s.RawHTML = ""
	s.MetaKeywords = ""

	err := s.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"Meta Keywords", "Image URL", "Raw HTML File"}, verr.Missing)
	assert.Contains(t, err.Error(), "Image URL")
}

func TestSubmission_Validate_EverythingMissing(t *testing.T) {
	var verr *ValidationError
	require.ErrorAs(t, Submission{}.Validate(), &verr)

	assert.Equal(t, []string{
		"Story Title", "Meta Description", "Meta Keywords", "Content Type", "Language",
		"Image URL", "Filter Tags", "Category", "Raw HTML File",
	}, verr.Missing)
	assert.Empty(t, verr.Problems)
}

func TestSubmission_Validate_UnknownCategory(t *testing.T) {
	s := validSubmission()
	s.Category = "Gardening"

	var verr *ValidationError
	require.ErrorAs(t, s.Validate(), &verr)
	assert.Empty(t, verr.Missing)
	assert.Equal(t, []string{`unknown category "Gardening"`}, verr.Problems)
}

func TestSubmission_CoverURL(t *testing.T) {
	s := validSubmission()
	assert.Equal(t, s.ImageURL, s.CoverURL())

	s.CustomCoverURL = " https://example.com/custom.jpg "
	assert.Equal(t, "https://example.com/custom.jpg", s.CoverURL())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"music", "culture", "lata mangeshkar"}, SplitList(" music, culture,, lata mangeshkar ,"))
	assert.Empty(t, SplitList(" , "))
}

func TestCategories(t *testing.T) {
	seen := map[Category]bool{}

	for _, name := range Categories() {
		c, err := ParseCategory(name)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, int(c), 1)
		assert.LessOrEqual(t, int(c), 11)
		assert.False(t, seen[c], "duplicate code for %s", name)
		seen[c] = true
		assert.Equal(t, name, c.Name())
	}

	assert.Len(t, seen, 11)
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("art")
	require.NoError(t, err)
	assert.Equal(t, Category(1), c)

	c, err = ParseCategory("Food")
	require.NoError(t, err)
	assert.Equal(t, Category(11), c)

	_, err = ParseCategory("Gardening")
	assert.Error(t, err)

	_, err = ParseCategory("")
	assert.Error(t, err)

	assert.Equal(t, "", Category(12).Name())
}

package content

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompleter implements Completer for testing.
type fakeCompleter struct {
	result string
	err    error
	calls  int
	system string
	user   string
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	f.calls++
	f.system = system
	f.user = user
	return f.result, f.err
}

func TestParseMetadata_Arrays(t *testing.T) {
	raw := "```json\n" + `{
  "meta_description": "  The life of a legend.  ",
  "meta_keywords": ["lata mangeshkar", " indian music ", ""],
  "filter_tags": ["Music", "Culture"]
}` + "\n```"

	md, err := ParseMetadata(raw)
	require.NoError(t, err)

	assert.Equal(t, Metadata{
		Description: "The life of a legend.",
		Keywords:    "lata mangeshkar, indian music",
		Tags:        "Music, Culture",
	}, md)
}

func TestParseMetadata_CommaStrings(t *testing.T) {
	raw := `Result: {"meta_description": "d", "meta_keywords": "a, b,,c", "filter_tags": "x"}`

	md, err := ParseMetadata(raw)
	require.NoError(t, err)
	assert.Equal(t, "a, b, c", md.Keywords)
	assert.Equal(t, "x", md.Tags)
}

func TestParseMetadata_NonStringItems(t *testing.T) {
	md, err := ParseMetadata(`{"meta_description": 42, "meta_keywords": [1, "two", true]}`)
	require.NoError(t, err)
	assert.Equal(t, "42", md.Description)
	assert.Equal(t, "1, two, true", md.Keywords)
	assert.Equal(t, "", md.Tags)
}

func TestParseMetadata_TruncatesDescription(t *testing.T) {
	long := strings.Repeat("é", DescriptionLimit+40)

	md, err := ParseMetadata(`{"meta_description": "` + long + `"}`)
	require.NoError(t, err)
	assert.Equal(t, DescriptionLimit, len([]rune(md.Description)))
}

func TestParseMetadata_InvalidJSON(t *testing.T) {
	_, err := ParseMetadata("I cannot help with that.")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse metadata JSON")
}

func TestWriter_GenerateMetadata(t *testing.T) {
	fc := &fakeCompleter{result: `{"meta_description": "d", "meta_keywords": ["k"], "filter_tags": ["t"]}`}
	w := NewWriter(fc)

	md, err := w.GenerateMetadata(context.Background(), "  Test Story ")
	require.NoError(t, err)

	assert.Equal(t, Metadata{Description: "d", Keywords: "k", Tags: "t"}, md)
	assert.Equal(t, 1, fc.calls)
	assert.Equal(t, MetadataSystemPrompt, fc.system)
	assert.Contains(t, fc.user, "Title: Test Story\n")
	assert.Contains(t, fc.user, "meta_description (<= 160 chars)")
}

func TestWriter_GenerateMetadata_CompleterError(t *testing.T) {
	fc := &fakeCompleter{err: errors.New("503 service unavailable")}

	md, err := NewWriter(fc).GenerateMetadata(context.Background(), "Test Story")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Equal(t, Metadata{}, md)
	assert.Equal(t, 1, fc.calls, "no retries")
}

func TestWriter_GenerateMetadata_BlankTitle(t *testing.T) {
	fc := &fakeCompleter{}

	_, err := NewWriter(fc).GenerateMetadata(context.Background(), " ")
	assert.Error(t, err)
	assert.Zero(t, fc.calls)
}

package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alkime/storyform/pkg/collections"
)

// DescriptionLimit is the character budget for a meta description.
const DescriptionLimit = 160

// Metadata is the SEO metadata drafted for a story title.
type Metadata struct {
	Description string `json:"meta_description"`
	Keywords    string `json:"meta_keywords"`
	Tags        string `json:"filter_tags"`
}

// Completer runs one chat-style completion: a system and a user instruction in,
// free-form text out.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Writer drafts story metadata with a text-generation service.
type Writer struct {
	completer Completer
}

// NewWriter creates a metadata writer on top of a completer.
func NewWriter(completer Completer) *Writer {
	return &Writer{
		completer: completer,
	}
}

// GenerateMetadata makes exactly one completion call for the title and parses the result.
func (w *Writer) GenerateMetadata(ctx context.Context, title string) (Metadata, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Metadata{}, errors.New("title required for metadata generation")
	}

	raw, err := w.completer.Complete(ctx, MetadataSystemPrompt, MetadataUserPrompt(title))
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to generate metadata: %w", err)
	}

	md, err := ParseMetadata(raw)
	if err != nil {
		return Metadata{}, err
	}

	slog.Debug("Generated metadata", "title", title, "keywords", md.Keywords)

	return md, nil
}

// ParseMetadata extracts and normalizes metadata from raw model output.
func ParseMetadata(raw string) (Metadata, error) {
	jsonStr, err := ExtractJSON(raw)
	if err != nil {
		return Metadata{}, err
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return Metadata{}, fmt.Errorf("failed to parse metadata JSON: %w", err)
	}

	desc := strings.TrimSpace(stringify(data["meta_description"]))

	return Metadata{
		Description: truncate(desc, DescriptionLimit),
		Keywords:    strings.Join(normalizeList(data["meta_keywords"]), ", "),
		Tags:        strings.Join(normalizeList(data["filter_tags"]), ", "),
	}, nil
}

// normalizeList accepts either a JSON array or a comma-separated string.
func normalizeList(v any) []string {
	var items []string

	switch val := v.(type) {
	case nil:
		return nil
	case string:
		items = strings.Split(val, ",")
	case []any:
		items = collections.Apply(val, stringify)
	default:
		items = []string{stringify(val)}
	}

	items = collections.Apply(items, strings.TrimSpace)

	return collections.Filter(items, func(s string) bool { return s != "" })
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit])
}

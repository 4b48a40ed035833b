package compose

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// Preview renders the story pages as markdown text, cut to at most limit runes.
func Preview(pages string, limit int) (string, error) {
	if strings.TrimSpace(pages) == "" {
		return "", nil
	}

	converter := md.NewConverter("", true, nil)

	text, err := converter.ConvertString(pages)
	if err != nil {
		return "", fmt.Errorf("failed to render story preview: %w", err)
	}

	text = strings.TrimSpace(text)
	if runes := []rune(text); limit > 0 && len(runes) > limit {
		text = strings.TrimSpace(string(runes[:limit])) + "…"
	}

	return text, nil
}

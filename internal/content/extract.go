package content

import (
	"errors"
	"regexp"
	"strings"
)

// ErrEmptyOutput is returned when the model produced no text at all.
var ErrEmptyOutput = errors.New("empty generation output")

var fencedJSON = regexp.MustCompile("(?is)```json\\s*(\\{.*?\\})\\s*```")

// ExtractJSON pulls a JSON object out of free-form model output.
// It tries, in order: a ```json fenced block, the first balanced {...} object,
// and finally the whole trimmed text.
func ExtractJSON(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyOutput
	}

	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), nil
	}

	if obj, ok := firstObject(text); ok {
		return obj, nil
	}

	return strings.TrimSpace(text), nil
}

// firstObject finds the first brace-balanced object, skipping braces inside
// JSON string literals. Starts whose braces never balance are skipped.
func firstObject(text string) (string, bool) {
	for start := strings.IndexByte(text, '{'); start >= 0; {
		if end, ok := matchBrace(text, start); ok {
			return text[start : end+1], true
		}

		next := strings.IndexByte(text[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}

	return "", false
}

// matchBrace returns the index of the brace closing the one at start.
func matchBrace(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}

			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}

	return 0, false
}

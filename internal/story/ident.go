package story

import (
	"errors"
	"math/rand/v2"
	"regexp"
	"strings"
)

const (
	suffixAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_-"
	suffixRandLen  = 10
	suffixMarker   = "G"
)

// ErrInvalidTitle is returned when identifiers are requested for a blank title.
var ErrInvalidTitle = errors.New("invalid title")

var slugStrip = regexp.MustCompile(`[^a-z0-9-]+`)

// URLs holds the bases identifiers are interpolated into.
type URLs struct {
	// CanonicalBase prefixes the canonical story link, e.g. https://suvichaar.org/stories/
	CanonicalBase string
	// StoryHost prefixes the hosted HTML document, e.g. https://stories.suvichaar.org/
	StoryHost string
}

// Identifiers are derived once per submission and never change afterwards.
type Identifiers struct {
	Suffix       string
	Slug         string
	Composite    string
	CanonicalURL string
	HostedURL    string
}

// Slugify converts a title to a URL-friendly slug.
// Example: "Voice of India_2024" -> "voice-of-india-2024"
func Slugify(title string) string {
	// Convert to lowercase
	slug := strings.ToLower(title)

	// Spaces and underscores become hyphens
	slug = strings.NewReplacer(" ", "-", "_", "-").Replace(slug)

	// Remove everything else (keep alphanumeric and hyphens)
	slug = slugStrip.ReplaceAllString(slug, "")

	// Trim hyphens from start and end
	return strings.Trim(slug, "-")
}

// NewSuffix returns 10 random characters followed by the fixed marker.
// It only lowers collision odds; it is neither secure nor unique.
func NewSuffix() string {
	var sb strings.Builder
	sb.Grow(suffixRandLen + len(suffixMarker))

	for range suffixRandLen {
		sb.WriteByte(suffixAlphabet[rand.IntN(len(suffixAlphabet))])
	}
	sb.WriteString(suffixMarker)

	return sb.String()
}

// NewIdentifiers derives the identifier bundle for a title.
func NewIdentifiers(title string, urls URLs) (Identifiers, error) {
	if strings.TrimSpace(title) == "" {
		return Identifiers{}, ErrInvalidTitle
	}

	return identifiersWith(title, NewSuffix(), urls), nil
}

func identifiersWith(title, suffix string, urls URLs) Identifiers {
	slug := Slugify(title)
	composite := slug + "_" + suffix

	return Identifiers{
		Suffix:       suffix,
		Slug:         slug,
		Composite:    composite,
		CanonicalURL: urls.CanonicalBase + composite,
		HostedURL:    urls.StoryHost + composite + ".html",
	}
}

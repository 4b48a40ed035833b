// Package compose merges submission values and uploaded fragments into the story template.
package compose

import (
	"fmt"
	"math/rand/v2"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/alkime/storyform/internal/config"
	"github.com/alkime/storyform/internal/notice"
)

const timestampLayout = "2006-01-02T15:04:05-07:00"

var (
	headClose    = regexp.MustCompile(`(?i)</head>`)
	storyOpen    = regexp.MustCompile(`<amp-story(?:\s[^>]*)?>`)
	bracedURLRef = regexp.MustCompile(`(href|src)="\{(https://[^}]+)\}"`)
)

// Input carries the values substituted into the template.
type Input struct {
	Title        string
	Description  string
	Keywords     string
	ContentType  string
	Language     string
	CanonicalURL string
	HostedURL    string
	// Image is the story image for {{image0}}.
	Image string
	// ImageVariants maps resize preset names to URLs.
	ImageVariants map[string]string
	// RawHTML is the operator-uploaded document fragments are lifted from.
	RawHTML string
}

// Compositor renders story documents from a template file.
type Compositor struct {
	templatePath string
	profile      config.Profile
	now          func() time.Time
	pick         func(n int) int
}

// NewCompositor creates a compositor for the template at templatePath.
func NewCompositor(templatePath string, profile config.Profile) *Compositor {
	return &Compositor{
		templatePath: templatePath,
		profile:      profile,
		now:          time.Now,
		pick:         rand.IntN,
	}
}

// Placeholders lists every literal token the compositor substitutes.
func (c *Compositor) Placeholders() []string {
	tokens := []string{
		"{{user}}", "{{userprofileurl}}", "{{publishedtime}}", "{{modifiedtime}}",
		"{{storytitle}}", "{{metadescription}}", "{{metakeywords}}", "{{contenttype}}",
		"{{lang}}", "{{pagetitle}}", "{{canurl}}", "{{canurl1}}", "{{image0}}",
	}
	for _, p := range c.profile.ResizePresets {
		tokens = append(tokens, "{{"+p.Name+"}}")
	}

	return tokens
}

// PageTitle is the document title shown in browsers and search results.
func (c *Compositor) PageTitle(title string) string {
	return title + " | " + c.profile.Brand
}

// Compose loads the template and produces the final document.
// Missing landmarks are reported through notices; only I/O failures are errors.
func (c *Compositor) Compose(in Input, notices *notice.List) (string, error) {
	tmpl, err := os.ReadFile(c.templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", c.templatePath, err)
	}

	doc := c.substitute(string(tmpl), in)
	doc = CleanBracedURLs(doc)

	frags, err := ExtractFragments(in.RawHTML)
	if err != nil {
		notices.Warn("Could not parse uploaded HTML: %v", err)
		return doc, nil
	}

	if frags.Style == "" {
		notices.Info("No <style amp-custom> block found in uploaded HTML.")
	} else {
		doc = c.insertStyle(doc, frags.Style, notices)
	}

	if frags.Pages == "" {
		notices.Warn("No complete <amp-story> block found in uploaded HTML.")
	} else {
		doc = c.insertPages(doc, frags.Pages, notices)
	}

	return doc, nil
}

func (c *Compositor) substitute(doc string, in Input) string {
	var author config.Author
	if n := len(c.profile.Authors); n > 0 {
		author = c.profile.Authors[c.pick(n)]
	}
	stamp := c.now().UTC().Format(timestampLayout)

	pairs := []string{
		"{{user}}", author.Name,
		"{{userprofileurl}}", author.ProfileURL,
		"{{publishedtime}}", stamp,
		"{{modifiedtime}}", stamp,
		"{{storytitle}}", in.Title,
		"{{metadescription}}", in.Description,
		"{{metakeywords}}", in.Keywords,
		"{{contenttype}}", in.ContentType,
		"{{lang}}", in.Language,
		"{{pagetitle}}", c.PageTitle(in.Title),
		"{{canurl}}", in.CanonicalURL,
		"{{canurl1}}", in.HostedURL,
		"{{image0}}", in.Image,
	}
	for _, p := range c.profile.ResizePresets {
		pairs = append(pairs, "{{"+p.Name+"}}", in.ImageVariants[p.Name])
	}

	return strings.NewReplacer(pairs...).Replace(doc)
}

func (c *Compositor) insertStyle(doc, style string, notices *notice.List) string {
	loc := headClose.FindStringIndex(doc)
	if loc == nil {
		notices.Warn("No </head> tag found in HTML template to insert <style amp-custom>.")
		return doc
	}

	return doc[:loc[0]] + "\n" + style + "\n" + doc[loc[0]:]
}

func (c *Compositor) insertPages(doc, pages string, notices *notice.List) string {
	loc := storyOpen.FindStringIndex(doc)
	if loc == nil || !strings.Contains(doc, c.profile.AnalyticsMarker) {
		notices.Warn("Could not find insertion points in the HTML template.")
		return doc
	}

	return doc[:loc[1]] + "\n\n" + pages + "\n\n" + doc[loc[1]:]
}

// CleanBracedURLs rewrites href="{https://…}" and src="{https://…}" to plain attributes.
func CleanBracedURLs(doc string) string {
	return bracedURLRef.ReplaceAllString(doc, `$1="$2"`)
}

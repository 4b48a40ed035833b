package compose

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Fragments are the pieces lifted from an operator-uploaded story document.
type Fragments struct {
	// Style is the <style amp-custom> element, or "" when absent.
	Style string
	// Pages holds every top-level <amp-story-page> element, in document order.
	Pages string
}

// ExtractFragments parses the uploaded HTML and locates the style and story page
// elements by tag and attribute, so nested pages and stray text cannot skew the span.
func ExtractFragments(rawHTML string) (Fragments, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return Fragments{}, fmt.Errorf("failed to parse uploaded HTML: %w", err)
	}

	var frags Fragments

	if style := doc.Find("style[amp-custom]").First(); style.Length() > 0 {
		if frags.Style, err = goquery.OuterHtml(style); err != nil {
			return Fragments{}, fmt.Errorf("failed to render style block: %w", err)
		}
	}

	pages := doc.Find("amp-story-page").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.ParentsFiltered("amp-story-page").Length() == 0
	})

	rendered := make([]string, 0, pages.Length())
	var renderErr error
	pages.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		page, err := goquery.OuterHtml(s)
		if err != nil {
			renderErr = err
			return false
		}
		rendered = append(rendered, page)
		return true
	})
	if renderErr != nil {
		return Fragments{}, fmt.Errorf("failed to render story pages: %w", renderErr)
	}

	frags.Pages = strings.Join(rendered, "\n")

	return frags, nil
}

package story

import (
	"fmt"
	"strings"
)

// Category is the numeric filter code stored with a published story.
type Category int

// categoryNames is ordered by code: index i holds the name for code i+1.
var categoryNames = []string{
	"Art", "Travel", "Entertainment", "Literature", "Books",
	"Sports", "History", "Culture", "Wildlife", "Spiritual", "Food",
}

// ContentTypes lists the content types offered to operators.
var ContentTypes = []string{"News", "Article"}

// Languages lists the language codes offered to operators.
var Languages = []string{"en-US", "hi"}

// Categories returns the category names in code order.
func Categories() []string {
	out := make([]string, len(categoryNames))
	copy(out, categoryNames)

	return out
}

// ParseCategory maps a category name to its code. Matching ignores case.
func ParseCategory(name string) (Category, error) {
	name = strings.TrimSpace(name)
	for i, n := range categoryNames {
		if strings.EqualFold(n, name) {
			return Category(i + 1), nil
		}
	}

	return 0, fmt.Errorf("unknown category %q", name)
}

// Name returns the display name, or "" for codes outside the enumeration.
func (c Category) Name() string {
	if c < 1 || int(c) > len(categoryNames) {
		return ""
	}

	return categoryNames[c-1]
}

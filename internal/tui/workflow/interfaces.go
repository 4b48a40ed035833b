package workflow

import (
	"context"

	"github.com/alkime/storyform/internal/content"
	"github.com/alkime/storyform/internal/pipeline"
	"github.com/alkime/storyform/internal/session"
	"github.com/alkime/storyform/internal/story"
)

// Drafter drafts metadata for a title and reports whether it was remembered
// from an earlier attempt.
type Drafter interface {
	Draft(ctx context.Context, title string) (content.Metadata, bool, error)
}

// Publisher runs a submission through the publishing pipeline.
type Publisher interface {
	Submit(ctx context.Context, sub story.Submission) (*pipeline.Result, error)
}

// CachedDrafter drafts through a session cache so a title is sent at most once.
type CachedDrafter struct {
	Cache     *session.Cache
	Generator session.Generator
}

// Draft implements Drafter.
func (d CachedDrafter) Draft(ctx context.Context, title string) (content.Metadata, bool, error) {
	return d.Cache.Generate(ctx, d.Generator, title)
}

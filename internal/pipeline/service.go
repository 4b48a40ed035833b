// Package pipeline runs a validated submission through upload, composition and publishing.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alkime/storyform/internal/compose"
	"github.com/alkime/storyform/internal/config"
	"github.com/alkime/storyform/internal/media"
	"github.com/alkime/storyform/internal/notice"
	"github.com/alkime/storyform/internal/publish"
	"github.com/alkime/storyform/internal/storage"
	"github.com/alkime/storyform/internal/story"
)

const previewLimit = 600

// Result is everything a surface needs to report a published story.
type Result struct {
	IDs         story.Identifiers
	StoryURL    string
	Archive     []byte
	ArchiveName string
	Notices     []notice.Notice
	Preview     string
}

// Service publishes story submissions.
type Service struct {
	uploader    *media.Uploader
	compositor  *compose.Compositor
	publisher   *publish.Publisher
	profile     config.Profile
	urls        story.URLs
	mediaHost   string
	mediaBucket string
}

// New wires a service from configuration, a store and the site profile.
func New(cfg *config.Config, store storage.Store, profile config.Profile) *Service {
	uploader := media.NewUploader(store, media.Options{
		Bucket:       cfg.MediaBucket,
		Prefix:       cfg.S3Prefix,
		CDNBase:      cfg.CDNBase,
		MediaHost:    cfg.MediaHost,
		OwnHosts:     []string{cfg.StoryHost, cfg.CDNBase, cfg.MediaHost},
		FetchTimeout: cfg.ImageFetchTimeout,
	})

	return &Service{
		uploader:    uploader,
		compositor:  compose.NewCompositor(cfg.TemplatePath, profile),
		publisher:   publish.NewPublisher(store, cfg.StoriesBucket),
		profile:     profile,
		urls:        story.URLs{CanonicalBase: cfg.CanonicalBase, StoryHost: cfg.StoryHost},
		mediaHost:   cfg.MediaHost,
		mediaBucket: cfg.MediaBucket,
	}
}

// Submit validates sub in full, then resolves the image, composes and publishes the story.
// A *story.ValidationError is returned before any side effect.
func (s *Service) Submit(ctx context.Context, sub story.Submission) (*Result, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	category, err := sub.CategoryCode()
	if err != nil {
		return nil, err
	}

	ids, err := story.NewIdentifiers(sub.Title, s.urls)
	if err != nil {
		return nil, err
	}

	logger := slog.With("story", ids.Composite)
	logger.Info("Publishing story", "title", sub.Title)

	notices := &notice.List{}

	asset := s.uploader.Resolve(ctx, sub.ImageURL, notices)
	image := asset.PublicURL
	if image == "" {
		image = sub.ImageURL
	}

	doc, err := s.compositor.Compose(compose.Input{
		Title:         sub.Title,
		Description:   sub.MetaDescription,
		Keywords:      sub.MetaKeywords,
		ContentType:   sub.ContentType,
		Language:      sub.Language,
		CanonicalURL:  ids.CanonicalURL,
		HostedURL:     ids.HostedURL,
		Image:         image,
		ImageVariants: s.imageVariants(image, asset.Key, notices),
		RawHTML:       sub.RawHTML,
	}, notices)
	if err != nil {
		return nil, fmt.Errorf("failed to compose story: %w", err)
	}

	bundle, err := s.publisher.Publish(ctx, ids.Composite, doc, publish.MetadataDocument{
		StoryTitle:      sub.Title,
		Categories:      int(category),
		FilterTags:      sub.TagList(),
		StoryUID:        ids.Suffix,
		StoryLink:       ids.CanonicalURL,
		StoryHTMLURL:    ids.HostedURL,
		URLSlug:         ids.Composite,
		CoverImageLink:  sub.CoverURL(),
		PublisherID:     s.profile.PublisherID,
		StoryLogoLink:   s.profile.StoryLogoLink,
		Keywords:        sub.MetaKeywords,
		MetaDescription: sub.MetaDescription,
		Lang:            sub.Language,
	})
	if err != nil {
		return nil, err
	}

	notices.Success("HTML uploaded successfully!")
	logger.Info("Story published", "url", ids.CanonicalURL, "warnings", len(notices.Warnings()))

	return &Result{
		IDs:         ids,
		StoryURL:    ids.CanonicalURL,
		Archive:     bundle.Archive,
		ArchiveName: publish.ArchiveName(sub.Title),
		Notices:     notices.All(),
		Preview:     preview(sub.RawHTML),
	}, nil
}

// imageVariants fills every resize preset. Images on the media host get transform
// URLs; anything else is used as is.
func (s *Service) imageVariants(image, key string, notices *notice.List) map[string]string {
	variants := make(map[string]string, len(s.profile.ResizePresets))

	if image != "" && key != "" && s.uploader.OnMediaHost(image) {
		urls, err := media.TransformURLs(s.mediaHost, s.mediaBucket, key, s.profile.ResizePresets)
		if err == nil {
			return urls
		}
		notices.Warn("Failed to build resize URLs: %v", err)
	} else {
		notices.Info("Image is not on the media host; cover renditions use the image URL as is.")
	}

	for _, p := range s.profile.ResizePresets {
		variants[p.Name] = image
	}

	return variants
}

func preview(rawHTML string) string {
	frags, err := compose.ExtractFragments(rawHTML)
	if err != nil {
		return ""
	}

	text, err := compose.Preview(frags.Pages, previewLimit)
	if err != nil {
		slog.Debug("Preview unavailable", "error", err)
		return ""
	}

	return text
}

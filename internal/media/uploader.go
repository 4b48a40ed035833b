// Package media resolves story images into the media bucket and builds resize URLs.
package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/alkime/storyform/internal/notice"
	"github.com/alkime/storyform/internal/storage"
	"github.com/google/uuid"
)

const (
	defaultExt         = ".jpg"
	defaultContentType = "image/jpeg"
	maxImageBytes      = 25 << 20 // 25MB
)

var allowedExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true}

// Options configures an Uploader.
type Options struct {
	// Bucket receives fetched images.
	Bucket string
	// Prefix is prepended to generated keys; it ends in "/" or is empty.
	Prefix string
	// CDNBase is the public base URL for keys in Bucket.
	CDNBase string
	// MediaHost is the image host backed by the transform service.
	MediaHost string
	// OwnHosts are base URLs whose images are reused instead of re-uploaded.
	OwnHosts []string
	// FetchTimeout bounds the image download.
	FetchTimeout time.Duration
}

// Asset is a resolved story image.
type Asset struct {
	// PublicURL is empty when the image could not be stored.
	PublicURL string
	Key       string
	Uploaded  bool
}

// Uploader copies story images into object storage.
type Uploader struct {
	store  storage.Store
	client *http.Client
	opts   Options
}

// NewUploader creates an uploader writing to store.
func NewUploader(store storage.Store, opts Options) *Uploader {
	timeout := opts.FetchTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Uploader{
		store:  store,
		client: &http.Client{Timeout: timeout},
		opts:   opts,
	}
}

// Resolve reuses an image already on one of our hosts, or fetches and stores a copy.
// Failures become warnings and yield an Asset with an empty PublicURL.
func (u *Uploader) Resolve(ctx context.Context, imageURL string, notices *notice.List) Asset {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		notices.Info("No Image URL provided. Using default.")
		return Asset{}
	}

	parsed, err := url.Parse(imageURL)
	if err != nil {
		notices.Warn("Failed to fetch/upload image. Using fallback. Error: %v", err)
		return Asset{}
	}

	if u.isOwnHost(parsed) {
		// Key is the full path on every own host. Only media-host keys feed
		// transform URLs, so story-host keys are informational.
		return Asset{PublicURL: imageURL, Key: strings.TrimPrefix(parsed.Path, "/")}
	}

	key := u.opts.Prefix + strings.ReplaceAll(uuid.NewString(), "-", "") + imageExt(parsed.Path)

	if err := u.fetchAndStore(ctx, imageURL, key); err != nil {
		notices.Warn("Failed to fetch/upload image. Using fallback. Error: %v", err)
		return Asset{}
	}

	notices.Success("Image uploaded successfully!")

	return Asset{PublicURL: u.opts.CDNBase + key, Key: key, Uploaded: true}
}

func (u *Uploader) fetchAndStore(ctx context.Context, imageURL, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build image request: %w", err)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("failed to fetch image: %s returned %s", imageURL, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return fmt.Errorf("failed to read image body: %w", err)
	}
	if len(body) > maxImageBytes {
		return fmt.Errorf("image larger than %d bytes", maxImageBytes)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}

	return u.store.Put(ctx, u.opts.Bucket, key, body, contentType)
}

// OnMediaHost reports whether raw points at the transform-backed media host.
func (u *Uploader) OnMediaHost(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return false
	}

	return sameHost(parsed, u.opts.MediaHost)
}

func (u *Uploader) isOwnHost(parsed *url.URL) bool {
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}

	for _, base := range u.opts.OwnHosts {
		if sameHost(parsed, base) {
			return true
		}
	}

	return false
}

func sameHost(u *url.URL, base string) bool {
	b, err := url.Parse(base)
	if err != nil || b.Host == "" {
		return false
	}

	return strings.EqualFold(u.Host, b.Host)
}

// imageExt keeps a known image extension from the URL path, else ".jpg".
func imageExt(p string) string {
	ext := strings.ToLower(path.Ext(path.Base(p)))
	if allowedExts[ext] {
		return ext
	}

	return defaultExt
}

// Package session remembers drafted metadata per operator session.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"

	"github.com/alkime/storyform/internal/content"
)

// Generator drafts metadata for a title.
type Generator interface {
	GenerateMetadata(ctx context.Context, title string) (content.Metadata, error)
}

// Cache holds the metadata for the last title seen in a session.
// A title is generated at most once, even when the attempt failed.
type Cache struct {
	// genMu serializes Generate so concurrent callers share one call per title
	genMu sync.Mutex

	mu       sync.Mutex
	hash     string
	metadata content.Metadata
	err      error
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// Entry is a remembered generation outcome.
type Entry struct {
	Metadata content.Metadata
	Err      error
}

// Lookup returns the remembered outcome for title, if it is the last one seen.
func (c *Cache) Lookup(title string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hash == "" || c.hash != TitleHash(title) {
		return Entry{}, false
	}

	return Entry{Metadata: c.metadata, Err: c.err}, true
}

// Remember records the outcome of generating metadata for title.
func (c *Cache) Remember(title string, md content.Metadata, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hash = TitleHash(title)
	c.metadata = md
	c.err = err
}

// Generate returns the remembered outcome for title, or calls gen once and remembers it.
// The returned bool reports whether the outcome came from the cache.
func (c *Cache) Generate(ctx context.Context, gen Generator, title string) (content.Metadata, bool, error) {
	c.genMu.Lock()
	defer c.genMu.Unlock()

	if e, ok := c.Lookup(title); ok {
		return e.Metadata, true, e.Err
	}

	md, err := gen.GenerateMetadata(ctx, title)
	c.Remember(title, md, err)

	return md, false, err
}

// TitleHash is the hex SHA-256 of the trimmed title.
func TitleHash(title string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(title)))

	return hex.EncodeToString(sum[:])
}

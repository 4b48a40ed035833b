package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Dir stores objects as files under root/bucket/key. Used for local development.
type Dir struct {
	root string
}

// NewDir creates a directory-backed store.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

// Put writes the object to disk. Content type is not recorded.
func (d *Dir) Put(_ context.Context, bucket, key string, body []byte, _ string) error {
	path, err := d.path(bucket, key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	//nolint:gosec // Published stories are public
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

func (d *Dir) path(bucket, key string) (string, error) {
	path := filepath.Join(d.root, bucket, filepath.FromSlash(key))
	base := filepath.Join(d.root, bucket) + string(filepath.Separator)
	if !strings.HasPrefix(path, base) {
		return "", fmt.Errorf("invalid object key %q", key)
	}

	return path, nil
}

// Object is a stored object held by Memory.
type Object struct {
	Body        []byte
	ContentType string
}

// Memory keeps objects in a map. Safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	objects map[string]Object
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{objects: map[string]Object{}}
}

// Put records the object.
func (m *Memory) Put(_ context.Context, bucket, key string, body []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[bucket+"/"+key] = Object{Body: append([]byte(nil), body...), ContentType: contentType}

	return nil
}

// Get returns a stored object.
func (m *Memory) Get(bucket, key string) (Object, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj, ok := m.objects[bucket+"/"+key]

	return obj, ok
}

// Len reports how many objects are stored.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.objects)
}

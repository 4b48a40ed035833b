package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/alkime/storyform/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir_Put(t *testing.T) {
	root := t.TempDir()
	d := NewDir(root)

	err := d.Put(context.Background(), "media", "media/abc.png", []byte("png"), "image/png")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "media", "media", "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
}

func TestDir_Put_RejectsTraversal(t *testing.T) {
	d := NewDir(t.TempDir())

	err := d.Put(context.Background(), "stories", "../../etc/passwd", []byte("x"), "text/plain")
	assert.Error(t, err)
}

func TestMemory(t *testing.T) {
	m := NewMemory()

	require.NoError(t, m.Put(context.Background(), "stories", "a.html", []byte("<html>"), "text/html"))

	obj, ok := m.Get("stories", "a.html")
	require.True(t, ok)
	assert.Equal(t, "<html>", string(obj.Body))
	assert.Equal(t, "text/html", obj.ContentType)
	assert.Equal(t, 1, m.Len())

	_, ok = m.Get("media", "a.html")
	assert.False(t, ok)
}

func TestNew(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		s, err := New(context.Background(), &config.Config{StorageDriver: config.StorageMemory})
		require.NoError(t, err)
		assert.IsType(t, &Memory{}, s)
	})

	t.Run("local with explicit dir", func(t *testing.T) {
		s, err := New(context.Background(), &config.Config{StorageDriver: config.StorageLocal, StorageDir: t.TempDir()})
		require.NoError(t, err)
		assert.IsType(t, &Dir{}, s)
	})

	t.Run("s3 with static credentials", func(t *testing.T) {
		s, err := New(context.Background(), &config.Config{
			StorageDriver: config.StorageS3,
			MediaBucket:   "suvichaarapp",
			StoriesBucket: "suvichaarstories",
			AWSRegion:     "ap-south-1",
			AWSAccessKey:  "AKIA",
			AWSSecretKey:  "secret",
		})
		require.NoError(t, err)
		assert.IsType(t, &S3{}, s)
	})

	t.Run("s3 without media bucket", func(t *testing.T) {
		_, err := New(context.Background(), &config.Config{
			StorageDriver: config.StorageS3,
			StoriesBucket: "suvichaarstories",
			AWSRegion:     "ap-south-1",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "AWS_BUCKET")
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := New(context.Background(), &config.Config{StorageDriver: "ftp"})
		assert.Error(t, err)
	})
}

func TestS3_Put(t *testing.T) {
	var gotPath, gotType, gotMethod string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s, err := NewS3(context.Background(), S3Options{
		Region:    "us-east-1",
		AccessKey: "AKIA",
		SecretKey: "secret",
		Endpoint:  srv.URL,
	})
	require.NoError(t, err)

	err = s.Put(context.Background(), "suvichaarstories", "test-story_abcdefghijG.html", []byte("<html>"), "text/html")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/suvichaarstories/test-story_abcdefghijG.html", gotPath)
	assert.Equal(t, "text/html", gotType)
}

func TestS3_Put_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	s, err := NewS3(context.Background(), S3Options{
		Region: "us-east-1", AccessKey: "AKIA", SecretKey: "secret", Endpoint: srv.URL,
	})
	require.NoError(t, err)

	err = s.Put(context.Background(), "media", "k.png", []byte("x"), "image/png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://media/k.png")
}

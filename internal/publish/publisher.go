// Package publish stores composed stories and packages them for download.
package publish

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alkime/storyform/internal/storage"
)

// MetadataDocument is the record bundled next to the story HTML.
type MetadataDocument struct {
	StoryTitle      string   `json:"story_title"`
	Categories      int      `json:"categories"`
	FilterTags      []string `json:"filterTags"`
	StoryUID        string   `json:"story_uid"`
	StoryLink       string   `json:"story_link"`
	StoryHTMLURL    string   `json:"storyhtmlurl"`
	URLSlug         string   `json:"urlslug"`
	CoverImageLink  string   `json:"cover_image_link"`
	PublisherID     int      `json:"publisher_id"`
	StoryLogoLink   string   `json:"story_logo_link"`
	Keywords        string   `json:"keywords"`
	MetaDescription string   `json:"metadescription"`
	Lang            string   `json:"lang"`
}

// Bundle is the downloadable result of a publish.
type Bundle struct {
	Archive  []byte
	HTMLName string
	MetaName string
}

// Publisher writes story documents to the stories bucket.
type Publisher struct {
	store  storage.Store
	bucket string
}

// NewPublisher creates a publisher writing to bucket.
func NewPublisher(store storage.Store, bucket string) *Publisher {
	return &Publisher{
		store:  store,
		bucket: bucket,
	}
}

// Publish stores {composite}.html, then packages it with the metadata record.
// A store failure stops before packaging; a packaging failure leaves the stored
// document in place.
func (p *Publisher) Publish(ctx context.Context, composite, doc string, meta MetadataDocument) (*Bundle, error) {
	htmlName := composite + ".html"

	if err := p.store.Put(ctx, p.bucket, htmlName, []byte(doc), "text/html"); err != nil {
		return nil, fmt.Errorf("failed to upload story HTML: %w", err)
	}

	slog.Info("Story HTML uploaded", "bucket", p.bucket, "key", htmlName)

	metaName := composite + "_metadata.json"

	archive, err := Archive(htmlName, doc, metaName, meta)
	if err != nil {
		return nil, err
	}

	return &Bundle{
		Archive:  archive,
		HTMLName: htmlName,
		MetaName: metaName,
	}, nil
}

// Archive zips the HTML document and the indented metadata JSON.
func Archive(htmlName, doc, metaName string, meta MetadataDocument) ([]byte, error) {
	if meta.FilterTags == nil {
		meta.FilterTags = []string{}
	}

	var metaBuf bytes.Buffer
	enc := json.NewEncoder(&metaBuf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(meta); err != nil {
		return nil, fmt.Errorf("failed to encode metadata: %w", err)
	}
	metaJSON := bytes.TrimRight(metaBuf.Bytes(), "\n")

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, entry := range []struct {
		name string
		body []byte
	}{
		{htmlName, []byte(doc)},
		{metaName, metaJSON},
	} {
		w, err := zw.Create(entry.name)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to archive: %w", entry.name, err)
		}
		if _, err := w.Write(entry.body); err != nil {
			return nil, fmt.Errorf("failed to write %s to archive: %w", entry.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish archive: %w", err)
	}

	return buf.Bytes(), nil
}

// ArchiveName is the download filename for a story bundle.
// Characters that are invalid in file paths are replaced with hyphens.
func ArchiveName(title string) string {
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"\"", "-",
		"<", "-",
		">", "-",
		"|", "-",
	)

	name := strings.Trim(replacer.Replace(title), " -.")
	if name == "" {
		name = "story"
	}

	return name + ".zip"
}

package media

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/alkime/storyform/internal/config"
)

// Resize is the resize edit understood by the transform service.
type Resize struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Fit    string `json:"fit"`
}

// Edits wraps the edits applied to the source image.
type Edits struct {
	Resize Resize `json:"resize"`
}

// Descriptor tells the transform service which stored image to render and how.
type Descriptor struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	Edits  Edits  `json:"edits"`
}

// TransformURL encodes a cover-fit resize of bucket/key into a transform-service URL.
func TransformURL(base, bucket, key string, width, height int) (string, error) {
	d := Descriptor{
		Bucket: bucket,
		Key:    key,
		Edits:  Edits{Resize: Resize{Width: width, Height: height, Fit: "cover"}},
	}

	raw, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("failed to encode transform descriptor: %w", err)
	}

	return base + base64.URLEncoding.EncodeToString(raw), nil
}

// TransformURLs computes one URL per preset, keyed by preset name.
func TransformURLs(base, bucket, key string, presets []config.ResizePreset) (map[string]string, error) {
	out := make(map[string]string, len(presets))
	for _, p := range presets {
		u, err := TransformURL(base, bucket, key, p.Width, p.Height)
		if err != nil {
			return nil, err
		}
		out[p.Name] = u
	}

	return out, nil
}

// DecodeTransform reverses TransformURL for a URL under base.
func DecodeTransform(base, transformURL string) (Descriptor, error) {
	if len(transformURL) < len(base) || transformURL[:len(base)] != base {
		return Descriptor{}, fmt.Errorf("%q is not under transform base %q", transformURL, base)
	}

	raw, err := base64.URLEncoding.DecodeString(transformURL[len(base):])
	if err != nil {
		return Descriptor{}, fmt.Errorf("failed to decode transform descriptor: %w", err)
	}

	var d Descriptor
	if err := json.Unmarshal(raw, &d); err != nil {
		return Descriptor{}, fmt.Errorf("failed to parse transform descriptor: %w", err)
	}

	return d, nil
}

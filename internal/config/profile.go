package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Author is a byline the compositor can attribute a story to.
type Author struct {
	Name       string `yaml:"name"`
	ProfileURL string `yaml:"profile_url"`
}

// ResizePreset names a cover rendition produced by the image transform service.
type ResizePreset struct {
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Profile carries brand-specific constants for the published stories.
type Profile struct {
	Brand           string         `yaml:"brand"`
	PublisherID     int            `yaml:"publisher_id"`
	StoryLogoLink   string         `yaml:"story_logo_link"`
	AnalyticsMarker string         `yaml:"analytics_marker"`
	Authors         []Author       `yaml:"authors"`
	ResizePresets   []ResizePreset `yaml:"resize_presets"`
}

// DefaultProfile returns the built-in site profile.
func DefaultProfile() Profile {
	return Profile{
		Brand:         "Suvichaar",
		PublisherID:   1,
		StoryLogoLink: "https://media.suvichaar.org/filters:resize/96x96/media/brandasset/suvichaariconblack.png",
		AnalyticsMarker: `<amp-story-auto-analytics gtag-id="G-2D5GXVRK1E" class="i-amphtml-layout-container" ` +
			`i-amphtml-layout="container"></amp-story-auto-analytics>`,
		Authors: []Author{
			{Name: "Mayank", ProfileURL: "https://www.instagram.com/iamkrmayank?igsh=eW82NW1qbjh4OXY2&utm_source=qr"},
			{Name: "Onip", ProfileURL: "https://www.instagram.com/onip.mathur/profilecard/?igsh=MW5zMm5qMXhybGNmdA=="},
			{Name: "Naman", ProfileURL: "https://njnaman.in/"},
		},
		ResizePresets: []ResizePreset{
			{Name: "potraitcoverurl", Width: 640, Height: 853},
			{Name: "msthumbnailcoverurl", Width: 300, Height: 300},
		},
	}
}

// LoadProfile reads a YAML site profile on top of the defaults.
// An empty path returns the defaults unchanged.
func LoadProfile(path string) (Profile, error) {
	profile := DefaultProfile()
	if path == "" {
		return profile, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read site profile %s: %w", path, err)
	}

	var override Profile
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Profile{}, fmt.Errorf("failed to parse site profile %s: %w", path, err)
	}

	profile.merge(override)

	if len(profile.Authors) == 0 {
		return Profile{}, fmt.Errorf("site profile %s: at least one author is required", path)
	}

	return profile, nil
}

func (p *Profile) merge(o Profile) {
	if o.Brand != "" {
		p.Brand = o.Brand
	}
	if o.PublisherID != 0 {
		p.PublisherID = o.PublisherID
	}
	if o.StoryLogoLink != "" {
		p.StoryLogoLink = o.StoryLogoLink
	}
	if o.AnalyticsMarker != "" {
		p.AnalyticsMarker = o.AnalyticsMarker
	}
	if len(o.Authors) > 0 {
		p.Authors = o.Authors
	}
	if len(o.ResizePresets) > 0 {
		p.ResizePresets = o.ResizePresets
	}
}

// Package workdir provides utilities for managing the storyform working directory.
package workdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// StorageDir holds objects written by the local storage driver.
	StorageDir = "objects"
	// ArchiveDir holds downloaded story bundles.
	ArchiveDir = "archives"
	// LogDir holds CLI logs written while the terminal UI owns the screen.
	LogDir = "logs"
)

// Root returns the base directory for all storyform working files.
// The path is expanded at runtime to resolve to:
//
//	$HOME/Documents/Alkime/Stories
func Root() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, "Documents", "Alkime", "Stories"), nil
}

// Path returns the full path for a named subdirectory of the root.
func Path(name string) (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, name), nil
}

// Prep ensures that the named subdirectory exists and returns its path.
func Prep(name string) (string, error) {
	dir, err := Path(name)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create working directory %s: %w", dir, err)
	}

	return dir, nil
}

// Package storage writes story assets and documents to object storage.
package storage

import (
	"context"
	"fmt"

	"github.com/alkime/storyform/internal/config"
	"github.com/alkime/storyform/internal/workdir"
)

// Store puts objects; reads happen through public URLs, never through the store.
type Store interface {
	Put(ctx context.Context, bucket, key string, body []byte, contentType string) error
}

// New builds the store selected by STORAGE_DRIVER.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StorageDriver {
	case config.StorageS3:
		if err := cfg.ValidateStorage(); err != nil {
			return nil, err
		}
		return NewS3(ctx, S3Options{
			Region:    cfg.AWSRegion,
			AccessKey: cfg.AWSAccessKey,
			SecretKey: cfg.AWSSecretKey,
			Endpoint:  cfg.S3Endpoint,
		})
	case config.StorageLocal:
		dir := cfg.StorageDir
		if dir == "" {
			var err error
			if dir, err = workdir.Prep(workdir.StorageDir); err != nil {
				return nil, err
			}
		}
		return NewDir(dir), nil
	case config.StorageMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

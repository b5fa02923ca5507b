package media

import (
	"context"
	"errors"
)

var ErrEmptyPath = errors.New("media: empty local path")

// Asset describes an uploaded file. PublicID is the handle used to delete it later.
type Asset struct {
	URL       string
	SecureURL string
	PublicID  string
	Duration  float64
}

// Store moves local uploads into durable storage.
type Store interface {
	// Store uploads the file at localPath and removes the local copy whether or not the upload succeeds.
	Store(ctx context.Context, localPath string) (Asset, error)
	// Delete removes a stored asset. It reports false when there was nothing to delete.
	Delete(ctx context.Context, publicID string) (bool, error)
}

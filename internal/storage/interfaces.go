// Package storage persists uploaded photos for provinces and districts.
// The database only holds a photo key; the bytes live behind one of these
// backends: local filesystem or an S3-compatible object store.
package storage

import (
	"context"
	"io"
)

// Backend defines the interface for photo storage backends.
type Backend interface {
	// Save stores a photo and returns the key it was stored under.
	// The key is derived from the original filename but never equal to it.
	Save(ctx context.Context, filename string, reader io.Reader, size int64) (key string, err error)

	// Open retrieves a photo by key. The caller must close the reader.
	// Returns domain.ErrPhotoNotFound if the key is unknown.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a photo by key. Deleting an unknown key is not an error.
	Delete(ctx context.Context, key string) error
}

package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/prn-tf/wilayah/internal/domain"
)

// FilesystemBackend stores photos as files under a data directory.
type FilesystemBackend struct {
	dataDir string
	logger  zerolog.Logger
}

// NewFilesystemBackend creates a filesystem photo store rooted at dataDir.
// The directory is created if it does not exist.
func NewFilesystemBackend(dataDir string, logger zerolog.Logger) (*FilesystemBackend, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &FilesystemBackend{
		dataDir: dataDir,
		logger:  logger.With().Str("storage", "filesystem").Logger(),
	}, nil
}

// Save stores a photo and returns its key.
func (b *FilesystemBackend) Save(ctx context.Context, filename string, reader io.Reader, size int64) (string, error) {
	key := newKey(filename)
	path := filepath.Join(b.dataDir, key)

	// Write to a temp file first so a failed upload never leaves a
	// half-written photo behind the final key.
	tmp, err := os.CreateTemp(b.dataDir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	written, err := io.Copy(tmp, reader)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write photo: %w", err)
	}

	if size > 0 && written != size {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("photo size mismatch: expected %d bytes, wrote %d", size, written)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to finalize photo: %w", err)
	}

	b.logger.Debug().Str("key", key).Int64("size", written).Msg("photo stored")
	return key, nil
}

// Open retrieves a photo by key.
func (b *FilesystemBackend) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if !validKey(key) {
		return nil, domain.ErrPhotoNotFound
	}

	f, err := os.Open(filepath.Join(b.dataDir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("failed to open photo: %w", err)
	}

	return f, nil
}

// Delete removes a photo by key.
func (b *FilesystemBackend) Delete(ctx context.Context, key string) error {
	if !validKey(key) {
		return nil
	}

	if err := os.Remove(filepath.Join(b.dataDir, key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete photo: %w", err)
	}

	return nil
}

// Ensure FilesystemBackend implements Backend.
var _ Backend = (*FilesystemBackend)(nil)

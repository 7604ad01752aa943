package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/prn-tf/wilayah/internal/domain"
)

func newTestBackend(t *testing.T) *FilesystemBackend {
	t.Helper()

	backend, err := NewFilesystemBackend(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create backend: %v", err)
	}
	return backend
}

func TestFilesystemBackend_SaveOpenDelete(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	content := "fake image bytes"
	key, err := backend.Save(ctx, "photo.jpg", strings.NewReader(content), int64(len(content)))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if key == "photo.jpg" {
		t.Error("key must not equal the original filename")
	}
	if !strings.HasSuffix(key, ".jpg") {
		t.Errorf("expected key to keep the .jpg extension, got %s", key)
	}

	reader, err := backend.Open(ctx, key)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	got, err := io.ReadAll(reader)
	_ = reader.Close()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(got) != content {
		t.Errorf("content mismatch: got %q", got)
	}

	if err := backend.Delete(ctx, key); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := backend.Open(ctx, key); !errors.Is(err, domain.ErrPhotoNotFound) {
		t.Errorf("expected ErrPhotoNotFound after delete, got %v", err)
	}
}

func TestFilesystemBackend_UnknownKey(t *testing.T) {
	backend := newTestBackend(t)

	if _, err := backend.Open(context.Background(), "missing.png"); !errors.Is(err, domain.ErrPhotoNotFound) {
		t.Errorf("expected ErrPhotoNotFound, got %v", err)
	}
}

func TestFilesystemBackend_TraversalKeyRejected(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	for _, key := range []string{"../etc/passwd", "a/b.png", `a\b.png`, "..", ""} {
		if _, err := backend.Open(ctx, key); !errors.Is(err, domain.ErrPhotoNotFound) {
			t.Errorf("expected ErrPhotoNotFound for key %q, got %v", key, err)
		}
	}
}

func TestFilesystemBackend_SizeMismatch(t *testing.T) {
	backend := newTestBackend(t)

	_, err := backend.Save(context.Background(), "photo.png", strings.NewReader("abc"), 999)
	if err == nil {
		t.Fatal("expected error for size mismatch")
	}
}

func TestFilesystemBackend_DeleteUnknownKey(t *testing.T) {
	backend := newTestBackend(t)

	if err := backend.Delete(context.Background(), "missing.png"); err != nil {
		t.Errorf("deleting an unknown key should not fail, got %v", err)
	}
}

func TestNewKey_Extensions(t *testing.T) {
	tests := []struct {
		filename string
		wantExt  string
	}{
		{filename: "photo.JPG", wantExt: ".jpg"},
		{filename: "photo.png", wantExt: ".png"},
		{filename: "archive.exe", wantExt: ""},
		{filename: "noext", wantExt: ""},
	}

	for _, tt := range tests {
		key := newKey(tt.filename)
		if tt.wantExt == "" {
			if strings.Contains(key, ".") {
				t.Errorf("newKey(%q) = %q, expected no extension", tt.filename, key)
			}
		} else if !strings.HasSuffix(key, tt.wantExt) {
			t.Errorf("newKey(%q) = %q, expected suffix %q", tt.filename, key, tt.wantExt)
		}
	}
}

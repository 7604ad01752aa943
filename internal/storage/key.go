package storage

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// allowedExtensions lists the photo file extensions we accept.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// newKey derives a storage key from an uploaded filename.
// The key is a fresh UUID carrying the original extension, so uploads can
// never collide or traverse out of the storage root.
func newKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		ext = ""
	}
	return uuid.NewString() + ext
}

// validKey reports whether key looks like something newKey produced.
// Rejects anything with path separators so keys can be used as file names.
func validKey(key string) bool {
	if key == "" {
		return false
	}
	return !strings.ContainsAny(key, `/\`) && key != "." && key != ".."
}

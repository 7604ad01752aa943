package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prn-tf/wilayah/internal/storage"
)

// maxUploadSize caps photo uploads at 10 MiB.
const maxUploadSize = 10 << 20

var errInvalidDate = errors.New("diresmikan must be a valid date (YYYY-MM-DD)")

// parseFormDate parses the diresmikan form value.
// Dates are validated here, at the boundary, so garbage never reaches the
// services or the database.
func parseFormDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errInvalidDate
	}

	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, errInvalidDate
	}
	return d, nil
}

// resolvePhoto determines the photo value for a submitted form.
// A file in the photo_file field wins over the photo text field; the file is
// persisted to the photo store and its key becomes the stored value.
func resolvePhoto(ctx context.Context, r *http.Request, photos storage.Backend) (string, error) {
	file, header, err := r.FormFile("photo_file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return strings.TrimSpace(r.FormValue("photo")), nil
		}
		return "", fmt.Errorf("failed to read uploaded photo: %w", err)
	}
	defer file.Close()

	if header.Size == 0 {
		return strings.TrimSpace(r.FormValue("photo")), nil
	}

	key, err := photos.Save(ctx, header.Filename, file, header.Size)
	if err != nil {
		return "", fmt.Errorf("failed to store photo: %w", err)
	}

	return key, nil
}

// parseSubmittedForm parses either urlencoded or multipart form bodies.
func parseSubmittedForm(r *http.Request) error {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		return r.ParseMultipartForm(maxUploadSize)
	}
	return r.ParseForm()
}

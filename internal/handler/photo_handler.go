package handler

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prn-tf/wilayah/internal/domain"
	"github.com/prn-tf/wilayah/internal/storage"
)

// PhotoHandler serves uploaded photos from the photo store.
type PhotoHandler struct {
	photos storage.Backend
	logger zerolog.Logger
}

// NewPhotoHandler creates a new photo handler.
func NewPhotoHandler(photos storage.Backend, logger zerolog.Logger) *PhotoHandler {
	return &PhotoHandler{
		photos: photos,
		logger: logger.With().Str("handler", "photo").Logger(),
	}
}

// RegisterRoutes registers the photo routes.
func (h *PhotoHandler) RegisterRoutes(r chi.Router) {
	r.Get("/photos/{key}", h.handleGet)
}

func (h *PhotoHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	reader, err := h.photos.Open(r.Context(), key)
	if err != nil {
		if errors.Is(err, domain.ErrPhotoNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error().Err(err).Str("key", key).Msg("failed to open photo")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer reader.Close()

	if contentType := mime.TypeByExtension(filepath.Ext(key)); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")

	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Debug().Err(err).Str("key", key).Msg("photo response aborted")
	}
}

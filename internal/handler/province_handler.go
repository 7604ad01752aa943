package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prn-tf/wilayah/internal/auth"
	"github.com/prn-tf/wilayah/internal/metrics"
	"github.com/prn-tf/wilayah/internal/service"
	"github.com/prn-tf/wilayah/internal/storage"
)

// ProvinceHandler handles the province pages. Every route here sits behind
// the session middleware and operates only on the signed-in user's provinces.
type ProvinceHandler struct {
	provinceService *service.ProvinceService
	photos          storage.Backend
	renderer        *Renderer
	logger          zerolog.Logger
}

// ProvinceHandlerConfig contains configuration for the province handler.
type ProvinceHandlerConfig struct {
	ProvinceService *service.ProvinceService
	Photos          storage.Backend
	Renderer        *Renderer
	Logger          zerolog.Logger
}

// NewProvinceHandler creates a new province handler.
func NewProvinceHandler(cfg ProvinceHandlerConfig) *ProvinceHandler {
	return &ProvinceHandler{
		provinceService: cfg.ProvinceService,
		photos:          cfg.Photos,
		renderer:        cfg.Renderer,
		logger:          cfg.Logger.With().Str("handler", "province").Logger(),
	}
}

// RegisterRoutes registers the province routes.
func (h *ProvinceHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.handleDashboard)

	r.Get("/provinsi", h.handleList)
	r.Get("/provinsi/tambah", h.handleNewForm)
	r.Post("/provinsi/tambah", h.handleCreate)
	r.Get("/provinsi/{id}", h.handleEditForm)
	r.Post("/provinsi/{id}", h.handleUpdate)
	r.Get("/provinsi/{id}/hapus", h.handleDelete)
	r.Post("/provinsi/{id}/hapus", h.handleDelete)
}

func (h *ProvinceHandler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFromContext(r.Context())

	provinces, err := h.provinceService.List(r.Context(), session.UserID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list provinces")
		h.renderError(w, session.Username, "Gagal memuat data provinsi")
		return
	}

	h.renderer.Render(w, http.StatusOK, "dashboard.html", ProvinceListPageData{
		PageData:  PageData{Title: "Dashboard", Username: session.Username},
		Provinces: provinces,
	})
}

func (h *ProvinceHandler) handleList(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFromContext(r.Context())

	provinces, err := h.provinceService.List(r.Context(), session.UserID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list provinces")
		h.renderError(w, session.Username, "Gagal memuat data provinsi")
		return
	}

	h.renderer.Render(w, http.StatusOK, "provinsi.html", ProvinceListPageData{
		PageData:  PageData{Title: "Provinsi", Username: session.Username},
		Provinces: provinces,
	})
}

func (h *ProvinceHandler) handleNewForm(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFromContext(r.Context())

	h.renderer.Render(w, http.StatusOK, "provinsi_form.html", ProvinceFormPageData{
		PageData: PageData{Title: "Tambah Provinsi", Username: session.Username},
	})
}

func (h *ProvinceHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFromContext(r.Context())

	if err := parseSubmittedForm(r); err != nil {
		h.renderFormError(w, http.StatusBadRequest, session.Username, "Form tidak valid")
		return
	}

	diresmikan, err := parseFormDate(r.FormValue("diresmikan"))
	if err != nil {
		h.renderFormError(w, http.StatusBadRequest, session.Username, "Tanggal diresmikan tidak valid")
		return
	}

	photo, err := resolvePhoto(r.Context(), r, h.photos)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to store photo")
		h.renderFormError(w, http.StatusInternalServerError, session.Username, "Gagal menyimpan photo")
		return
	}

	_, err = h.provinceService.Create(r.Context(), service.CreateProvinceInput{
		UserID:     session.UserID,
		Nama:       r.FormValue("nama"),
		Diresmikan: diresmikan,
		Photo:      photo,
		Pulau:      r.FormValue("pulau"),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidProvince) {
			h.renderFormError(w, http.StatusBadRequest, session.Username, "Nama, tanggal diresmikan dan pulau wajib diisi")
			return
		}
		h.logger.Error().Err(err).Msg("failed to create province")
		h.renderFormError(w, http.StatusInternalServerError, session.Username, "Gagal menyimpan provinsi")
		return
	}

	metrics.RecordEntityWrite("provinsi", "create")
	http.Redirect(w, r, "/provinsi", http.StatusFound)
}

func (h *ProvinceHandler) handleEditForm(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFromContext(r.Context())

	id, err := parseID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	province, err := h.provinceService.Get(r.Context(), id, session.UserID)
	if err != nil {
		// Non-owners get the same 404 as a missing row.
		if errors.Is(err, service.ErrProvinceNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error().Err(err).Int64("province_id", id).Msg("failed to get province")
		h.renderError(w, session.Username, "Gagal memuat provinsi")
		return
	}

	h.renderer.Render(w, http.StatusOK, "provinsi_form.html", ProvinceFormPageData{
		PageData: PageData{Title: "Ubah Provinsi", Username: session.Username},
		Province: province,
	})
}

func (h *ProvinceHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFromContext(r.Context())

	id, err := parseID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := parseSubmittedForm(r); err != nil {
		h.renderFormError(w, http.StatusBadRequest, session.Username, "Form tidak valid")
		return
	}

	diresmikan, err := parseFormDate(r.FormValue("diresmikan"))
	if err != nil {
		h.renderFormError(w, http.StatusBadRequest, session.Username, "Tanggal diresmikan tidak valid")
		return
	}

	photo, err := resolvePhoto(r.Context(), r, h.photos)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to store photo")
		h.renderFormError(w, http.StatusInternalServerError, session.Username, "Gagal menyimpan photo")
		return
	}

	err = h.provinceService.Update(r.Context(), service.UpdateProvinceInput{
		ID:         id,
		UserID:     session.UserID,
		Nama:       r.FormValue("nama"),
		Diresmikan: diresmikan,
		Photo:      photo,
		Pulau:      r.FormValue("pulau"),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProvinceNotFound):
			http.NotFound(w, r)
		case errors.Is(err, service.ErrInvalidProvince):
			h.renderFormError(w, http.StatusBadRequest, session.Username, "Nama, tanggal diresmikan dan pulau wajib diisi")
		default:
			h.logger.Error().Err(err).Int64("province_id", id).Msg("failed to update province")
			h.renderError(w, session.Username, "Gagal menyimpan provinsi")
		}
		return
	}

	metrics.RecordEntityWrite("provinsi", "update")
	http.Redirect(w, r, "/provinsi", http.StatusFound)
}

func (h *ProvinceHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFromContext(r.Context())

	id, err := parseID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	err = h.provinceService.Delete(r.Context(), id, session.UserID)
	if err != nil && !errors.Is(err, service.ErrProvinceNotFound) {
		// Already-deleted rows fall through to the redirect.
		h.logger.Error().Err(err).Int64("province_id", id).Msg("failed to delete province")
		h.renderError(w, session.Username, "Gagal menghapus provinsi")
		return
	}
	if err == nil {
		metrics.RecordEntityWrite("provinsi", "delete")
	}

	http.Redirect(w, r, "/provinsi", http.StatusFound)
}

func (h *ProvinceHandler) renderFormError(w http.ResponseWriter, status int, username, message string) {
	data := ProvinceFormPageData{
		PageData: PageData{Title: "Provinsi", Username: username, Error: message},
	}
	h.renderer.Render(w, status, "provinsi_form.html", data)
}

func (h *ProvinceHandler) renderError(w http.ResponseWriter, username, message string) {
	h.renderer.Render(w, http.StatusInternalServerError, "error.html", PageData{
		Title:    "Error",
		Username: username,
		Error:    message,
	})
}

// parseID parses the {id} route parameter.
func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

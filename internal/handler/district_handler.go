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

// DistrictHandler handles the district pages. Districts are a shared
// registry, so unlike provinces these routes are not owner-scoped.
type DistrictHandler struct {
	districtService *service.DistrictService
	provinceService *service.ProvinceService
	photos          storage.Backend
	renderer        *Renderer
	logger          zerolog.Logger
}

// DistrictHandlerConfig contains configuration for the district handler.
type DistrictHandlerConfig struct {
	DistrictService *service.DistrictService
	ProvinceService *service.ProvinceService
	Photos          storage.Backend
	Renderer        *Renderer
	Logger          zerolog.Logger
}

// NewDistrictHandler creates a new district handler.
func NewDistrictHandler(cfg DistrictHandlerConfig) *DistrictHandler {
	return &DistrictHandler{
		districtService: cfg.DistrictService,
		provinceService: cfg.ProvinceService,
		photos:          cfg.Photos,
		renderer:        cfg.Renderer,
		logger:          cfg.Logger.With().Str("handler", "district").Logger(),
	}
}

// RegisterRoutes registers the district routes.
func (h *DistrictHandler) RegisterRoutes(r chi.Router) {
	r.Get("/kabupaten", h.handleList)
	r.Get("/kabupaten/tambah", h.handleNewForm)
	r.Post("/kabupaten/tambah", h.handleCreate)
	r.Get("/kabupaten/{id}", h.handleEditForm)
	r.Post("/kabupaten/{id}", h.handleUpdate)
	r.Get("/kabupaten/{id}/hapus", h.handleDelete)
	r.Post("/kabupaten/{id}/hapus", h.handleDelete)
}

func (h *DistrictHandler) handleList(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFromContext(r.Context())

	districts, err := h.districtService.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list districts")
		h.renderError(w, session.Username, "Gagal memuat data kabupaten")
		return
	}

	h.renderer.Render(w, http.StatusOK, "kabupaten.html", DistrictListPageData{
		PageData:  PageData{Title: "Kabupaten", Username: session.Username},
		Districts: districts,
	})
}

func (h *DistrictHandler) handleNewForm(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFromContext(r.Context())

	refs, err := h.provinceService.ListRefs(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list province refs")
		h.renderError(w, session.Username, "Terjadi kesalahan saat memuat formulir")
		return
	}

	h.renderer.Render(w, http.StatusOK, "kabupaten_form.html", DistrictFormPageData{
		PageData:  PageData{Title: "Tambah Kabupaten", Username: session.Username},
		Provinces: refs,
	})
}

func (h *DistrictHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFromContext(r.Context())

	if err := parseSubmittedForm(r); err != nil {
		h.renderFormError(w, http.StatusBadRequest, session.Username, "Form tidak valid")
		return
	}

	provinsiID, err := strconv.ParseInt(r.FormValue("provinsiId"), 10, 64)
	if err != nil {
		h.renderFormError(w, http.StatusBadRequest, session.Username, "Provinsi tidak valid")
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

	_, err = h.districtService.Create(r.Context(), service.CreateDistrictInput{
		ProvinsiID: provinsiID,
		Nama:       r.FormValue("nama"),
		Diresmikan: diresmikan,
		Photo:      photo,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProvinceNotFound):
			h.renderFormError(w, http.StatusBadRequest, session.Username, "Provinsi tidak ditemukan")
		case errors.Is(err, service.ErrInvalidDistrict):
			h.renderFormError(w, http.StatusBadRequest, session.Username, "Nama, tanggal diresmikan dan provinsi wajib diisi")
		default:
			h.logger.Error().Err(err).Msg("failed to create district")
			h.renderError(w, session.Username, "Terjadi kesalahan saat membuat kabupaten")
		}
		return
	}

	metrics.RecordEntityWrite("kabupaten", "create")
	http.Redirect(w, r, "/kabupaten", http.StatusFound)
}

func (h *DistrictHandler) handleEditForm(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFromContext(r.Context())

	id, err := parseID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	district, err := h.districtService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrDistrictNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error().Err(err).Int64("district_id", id).Msg("failed to get district")
		h.renderError(w, session.Username, "Terjadi kesalahan saat memuat formulir")
		return
	}

	refs, err := h.provinceService.ListRefs(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list province refs")
		h.renderError(w, session.Username, "Terjadi kesalahan saat memuat formulir")
		return
	}

	h.renderer.Render(w, http.StatusOK, "kabupaten_form.html", DistrictFormPageData{
		PageData:  PageData{Title: "Ubah Kabupaten", Username: session.Username},
		District:  district,
		Provinces: refs,
	})
}

func (h *DistrictHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
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

	provinsiID, err := strconv.ParseInt(r.FormValue("provinsiId"), 10, 64)
	if err != nil {
		h.renderFormError(w, http.StatusBadRequest, session.Username, "Provinsi tidak valid")
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

	err = h.districtService.Update(r.Context(), service.UpdateDistrictInput{
		ID:         id,
		ProvinsiID: provinsiID,
		Nama:       r.FormValue("nama"),
		Diresmikan: diresmikan,
		Photo:      photo,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDistrictNotFound):
			http.NotFound(w, r)
		case errors.Is(err, service.ErrProvinceNotFound):
			h.renderFormError(w, http.StatusBadRequest, session.Username, "Provinsi tidak ditemukan")
		case errors.Is(err, service.ErrInvalidDistrict):
			h.renderFormError(w, http.StatusBadRequest, session.Username, "Nama, tanggal diresmikan dan provinsi wajib diisi")
		default:
			h.logger.Error().Err(err).Int64("district_id", id).Msg("failed to update district")
			h.renderError(w, session.Username, "Gagal menyimpan kabupaten")
		}
		return
	}

	metrics.RecordEntityWrite("kabupaten", "update")
	http.Redirect(w, r, "/kabupaten", http.StatusFound)
}

func (h *DistrictHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFromContext(r.Context())

	id, err := parseID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	err = h.districtService.Delete(r.Context(), id)
	if err != nil && !errors.Is(err, service.ErrDistrictNotFound) {
		h.logger.Error().Err(err).Int64("district_id", id).Msg("failed to delete district")
		h.renderError(w, session.Username, "Gagal menghapus kabupaten")
		return
	}
	if err == nil {
		metrics.RecordEntityWrite("kabupaten", "delete")
	}

	http.Redirect(w, r, "/kabupaten", http.StatusFound)
}

func (h *DistrictHandler) renderFormError(w http.ResponseWriter, status int, username, message string) {
	h.renderer.Render(w, status, "kabupaten_form.html", DistrictFormPageData{
		PageData: PageData{Title: "Kabupaten", Username: username, Error: message},
	})
}

func (h *DistrictHandler) renderError(w http.ResponseWriter, username, message string) {
	h.renderer.Render(w, http.StatusInternalServerError, "error.html", PageData{
		Title:    "Error",
		Username: username,
		Error:    message,
	})
}

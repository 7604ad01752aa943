// Package handler provides the server-rendered HTTP surface of Wilayah.
package handler

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/prn-tf/wilayah/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes embedded HTML templates.
type Renderer struct {
	templates *template.Template
	logger    zerolog.Logger
}

// NewRenderer parses the embedded templates.
func NewRenderer(logger zerolog.Logger) (*Renderer, error) {
	funcs := template.FuncMap{
		// formatDate renders timestamps the way date inputs expect.
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02")
		},
	}

	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Renderer{
		templates: tmpl,
		logger:    logger.With().Str("component", "renderer").Logger(),
	}, nil
}

// Render writes a template with the given status code.
func (rn *Renderer) Render(w http.ResponseWriter, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := rn.templates.ExecuteTemplate(w, name, data); err != nil {
		rn.logger.Error().Err(err).Str("template", name).Msg("failed to render template")
	}
}

// =============================================================================
// Template Data Structs
// =============================================================================

// PageData contains common page data.
type PageData struct {
	Title    string
	Username string
	Error    string
}

// ProvinceListPageData contains the province list page data.
type ProvinceListPageData struct {
	PageData
	Provinces []*domain.Province
}

// ProvinceFormPageData contains the province form page data.
// Province is nil when the form creates a new province.
type ProvinceFormPageData struct {
	PageData
	Province *domain.Province
}

// DistrictListPageData contains the district list page data.
type DistrictListPageData struct {
	PageData
	Districts []*domain.District
}

// DistrictFormPageData contains the district form page data.
// District is nil when the form creates a new district.
type DistrictFormPageData struct {
	PageData
	District  *domain.District
	Provinces []*domain.ProvinceRef
}

package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prn-tf/wilayah/internal/metrics"
	"github.com/prn-tf/wilayah/internal/service"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	userService    *service.UserService
	sessionService *service.SessionService
	renderer       *Renderer
	cookieName     string
	cookieSecure   bool
	logger         zerolog.Logger
}

// AuthHandlerConfig contains configuration for the auth handler.
type AuthHandlerConfig struct {
	UserService    *service.UserService
	SessionService *service.SessionService
	Renderer       *Renderer
	CookieName     string
	CookieSecure   bool
	Logger         zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(cfg AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{
		userService:    cfg.UserService,
		sessionService: cfg.SessionService,
		renderer:       cfg.Renderer,
		cookieName:     cfg.CookieName,
		cookieSecure:   cfg.CookieSecure,
		logger:         cfg.Logger.With().Str("handler", "auth").Logger(),
	}
}

// RegisterPublicRoutes registers routes that require no session.
func (h *AuthHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/", h.handleHome)
	r.Get("/logout", h.handleLogout)
}

// RegisterCredentialRoutes registers the login and register pages. They are
// mounted behind a middleware that bounces already-signed-in users.
func (h *AuthHandler) RegisterCredentialRoutes(r chi.Router) {
	r.Get("/login", h.handleLoginPage)
	r.Post("/login", h.handleLogin)
	r.Get("/register", h.handleRegisterPage)
	r.Post("/register", h.handleRegister)
}

func (h *AuthHandler) handleHome(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "home.html", PageData{Title: "Wilayah"})
}

func (h *AuthHandler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "login.html", PageData{Title: "Login"})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, http.StatusBadRequest, "Form tidak valid")
		return
	}

	output, err := h.sessionService.Login(r.Context(), service.LoginInput{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	})
	if err != nil {
		metrics.RecordLogin(false)
		if errors.Is(err, service.ErrInvalidCredentials) {
			// One message for every credential failure.
			h.renderLoginError(w, http.StatusUnauthorized, "Email atau password salah")
			return
		}
		h.logger.Error().Err(err).Msg("login failed")
		h.renderLoginError(w, http.StatusInternalServerError, "Terjadi kesalahan saat login")
		return
	}

	metrics.RecordLogin(true)

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    output.Session.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  output.Session.ExpiresAt,
	})

	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func (h *AuthHandler) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "register.html", PageData{Title: "Register"})
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderRegisterError(w, http.StatusBadRequest, "Form tidak valid")
		return
	}

	_, err := h.userService.Register(r.Context(), service.RegisterInput{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailAlreadyExists):
			h.renderRegisterError(w, http.StatusConflict, "Email sudah terdaftar")
		case errors.Is(err, service.ErrInvalidUsername),
			errors.Is(err, service.ErrInvalidEmail),
			errors.Is(err, service.ErrInvalidPassword):
			h.renderRegisterError(w, http.StatusBadRequest, "Data registrasi tidak valid")
		default:
			h.logger.Error().Err(err).Msg("registration failed")
			h.renderRegisterError(w, http.StatusInternalServerError, "Terjadi kesalahan saat registrasi")
		}
		return
	}

	metrics.RecordRegistration()
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		if err := h.sessionService.Logout(r.Context(), cookie.Value); err != nil {
			h.logger.Error().Err(err).Msg("logout failed")
			h.renderer.Render(w, http.StatusInternalServerError, "error.html", PageData{Title: "Error"})
			return
		}
	}

	// Clear the cookie whether or not a session existed.
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, status int, message string) {
	h.renderer.Render(w, status, "login.html", PageData{Title: "Login", Error: message})
}

func (h *AuthHandler) renderRegisterError(w http.ResponseWriter, status int, message string) {
	h.renderer.Render(w, status, "register.html", PageData{Title: "Register", Error: message})
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fansite-cms/api/internal/middleware"
	"github.com/fansite-cms/api/internal/model"
	"github.com/fansite-cms/api/internal/service"
)

// loginFailedMessage is shown for every rejected login
const loginFailedMessage = "로그인 실패"

// AuthService is the login operation the handler needs
type AuthService interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.Session, error)
}

// LoginRecorder counts login outcomes
type LoginRecorder interface {
	RecordLogin(result string)
}

// AuthHandlerConfig holds session cookie settings
type AuthHandlerConfig struct {
	Service      AuthService
	Recorder     LoginRecorder
	CookieName   string
	CookieSecure bool
}

// AuthHandler handles admin login and logout
type AuthHandler struct {
	svc          AuthService
	recorder     LoginRecorder
	cookieName   string
	cookieSecure bool
	now          func() time.Time
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(cfg AuthHandlerConfig) *AuthHandler {
	if cfg.CookieName == "" {
		cfg.CookieName = middleware.DefaultCookieName
	}
	return &AuthHandler{
		svc:          cfg.Service,
		recorder:     cfg.Recorder,
		cookieName:   cfg.CookieName,
		cookieSecure: cfg.CookieSecure,
		now:          time.Now,
	}
}

// Login handles POST /api/login. The token only travels in the HttpOnly
// cookie; the body is a bare success envelope.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	session, err := h.svc.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.record("failure")
			WriteError(w, model.NewUnauthorizedError(loginFailedMessage))
			return
		}
		handleError(w, r, err)
		return
	}
	h.record("success")

	maxAge := int(session.ExpiresAt.Sub(h.now()).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	WriteSuccess(w, http.StatusOK, "")
}

// Logout handles POST /api/logout by expiring the session cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	WriteSuccess(w, http.StatusOK, "logged out")
}

// Me handles GET /api/auth/me behind RequireAdmin
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetAdmin(r.Context())
	if identity == nil {
		WriteError(w, model.NewUnauthorizedError(""))
		return
	}
	WriteData(w, http.StatusOK, identity)
}

func (h *AuthHandler) record(result string) {
	if h.recorder != nil {
		h.recorder.RecordLogin(result)
	}
}

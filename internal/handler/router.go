package handler

import (
	"net/http"
	"strings"

	"github.com/fansite-cms/api/internal/middleware"
	"github.com/fansite-cms/api/internal/model"
)

// Handlers groups the API handlers mounted by NewRouter
type Handlers struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	Album    *AlbumHandler
	Gallery  *GalleryHandler
	Notice   *NoticeHandler
	Video    *VideoHandler
	Schedule *ScheduleHandler
	Member   *MemberHandler
	Settings *SettingsHandler
}

// RouterConfig holds everything NewRouter wires together
type RouterConfig struct {
	Handlers Handlers

	Verifier   middleware.TokenVerifier
	CookieName string

	// LoginLimiter throttles POST /api/login per client IP when set.
	LoginLimiter   *middleware.RateLimiter
	OnLoginLimited func()
	TrustProxy     bool

	AllowedOrigins []string
	Recorder       middleware.RequestRecorder
	Metrics        http.Handler

	// AdminDir is the built admin UI served under /admin. Empty disables it.
	AdminDir string
	// UploadsDir is served under /uploads for the local blob store. Empty
	// disables it.
	UploadsDir string
}

// NewRouter builds the complete HTTP handler: routes, admin gate and the
// global middleware chain.
func NewRouter(cfg RouterConfig) http.Handler {
	cookie := cfg.CookieName
	if cookie == "" {
		cookie = middleware.DefaultCookieName
	}
	admin := middleware.RequireAdmin(cfg.Verifier, cookie)
	guard := func(h http.HandlerFunc) http.Handler { return admin(h) }

	h := cfg.Handlers
	api := http.NewServeMux()

	// Auth
	var login http.Handler = http.HandlerFunc(h.Auth.Login)
	if cfg.LoginLimiter != nil {
		login = middleware.RateLimit(cfg.LoginLimiter, cfg.TrustProxy, cfg.OnLoginLimited)(login)
	}
	api.Handle("POST /api/login", login)
	api.HandleFunc("POST /api/logout", h.Auth.Logout)
	api.Handle("GET /api/auth/me", guard(h.Auth.Me))

	// Albums
	api.HandleFunc("GET /api/album", h.Album.List)
	api.HandleFunc("GET /api/album/{id}", h.Album.Get)
	api.Handle("POST /api/album", guard(h.Album.Create))
	api.Handle("PUT /api/album/{id}", guard(h.Album.Update))
	api.Handle("DELETE /api/album/{id}", guard(h.Album.Delete))

	// Gallery
	api.HandleFunc("GET /api/gallery", h.Gallery.List)
	api.HandleFunc("GET /api/gallery/{id}", h.Gallery.Get)
	api.Handle("POST /api/gallery", guard(h.Gallery.Upload))
	api.Handle("DELETE /api/gallery", guard(h.Gallery.DeleteBatch))
	api.Handle("DELETE /api/gallery/{id}", guard(h.Gallery.Delete))

	// Notices
	api.HandleFunc("GET /api/notice", h.Notice.List)
	api.HandleFunc("GET /api/notice/{id}", h.Notice.Get)
	api.Handle("POST /api/notice", guard(h.Notice.Create))
	api.Handle("PUT /api/notice/{id}", guard(h.Notice.Update))
	api.Handle("DELETE /api/notice/{id}", guard(h.Notice.Delete))

	// Videos
	api.HandleFunc("GET /api/video", h.Video.List)
	api.HandleFunc("GET /api/video/{id}", h.Video.Get)
	api.Handle("POST /api/video", guard(h.Video.Create))
	api.Handle("PUT /api/video/{id}", guard(h.Video.Update))
	api.Handle("DELETE /api/video/{id}", guard(h.Video.Delete))

	// Schedule
	api.HandleFunc("GET /api/schedule", h.Schedule.Calendar)
	api.HandleFunc("GET /api/schedule/{id}", h.Schedule.Get)
	api.Handle("POST /api/schedule", guard(h.Schedule.Create))
	api.Handle("PUT /api/schedule/{id}", guard(h.Schedule.Update))
	api.Handle("DELETE /api/schedule/{id}", guard(h.Schedule.Delete))

	// Members
	api.HandleFunc("GET /api/members", h.Member.List)
	api.HandleFunc("GET /api/members/{id}", h.Member.Get)
	api.Handle("PUT /api/members/{id}", guard(h.Member.Update))

	// Settings
	api.HandleFunc("GET /api/settings", h.Settings.Get)
	api.Handle("POST /api/settings", guard(h.Settings.Update))

	api.HandleFunc("GET /health", h.Health.Check)

	if cfg.AdminDir != "" {
		pages := middleware.AdminPages(cfg.Verifier, cookie, "/login")
		api.Handle("GET /admin/", pages(http.StripPrefix("/admin/", http.FileServer(http.Dir(cfg.AdminDir)))))
	}
	if cfg.UploadsDir != "" {
		api.Handle("GET /uploads/", http.StripPrefix("/uploads/", noDirListing(http.FileServer(http.Dir(cfg.UploadsDir)))))
	}

	api.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, model.NewNotFoundError("route"))
	})

	var instrumented http.Handler = api
	if cfg.Recorder != nil {
		instrumented = middleware.Instrument(cfg.Recorder)(api)
	}

	// /metrics stays outside Compress; promhttp negotiates its own encoding.
	root := http.NewServeMux()
	if cfg.Metrics != nil {
		root.Handle("GET /metrics", cfg.Metrics)
	}
	root.Handle("/", middleware.Compress(instrumented))

	return middleware.Chain(
		root,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.SecurityHeaders,
		middleware.CORS(cfg.AllowedOrigins),
	)
}

func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

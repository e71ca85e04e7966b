package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/fansite-cms/api/internal/blob"
	"github.com/fansite-cms/api/internal/config"
	"github.com/fansite-cms/api/internal/database"
	"github.com/fansite-cms/api/internal/handler"
	"github.com/fansite-cms/api/internal/metrics"
	"github.com/fansite-cms/api/internal/middleware"
	"github.com/fansite-cms/api/internal/recurrence"
	"github.com/fansite-cms/api/internal/repository"
	"github.com/fansite-cms/api/internal/security"
	"github.com/fansite-cms/api/internal/service"
	"github.com/fansite-cms/api/pkg/jwt"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Blob storage
	store, uploadsDir, err := openStore(ctx, cfg.Storage)
	if err != nil {
		slog.Error("failed to open blob store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if closer, ok := store.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}
	blobs := blob.NewInstrumented(store, collector)

	slog.Info("blob store ready", slog.String("driver", cfg.Storage.Driver))

	// Site roster and anniversaries
	site, err := recurrence.LoadSite(cfg.Site.File, cfg.Site.Timezone)
	if err != nil {
		slog.Error("failed to load site file", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("site loaded",
		slog.String("group", site.GroupName),
		slog.Int("members", len(site.Members)),
		slog.Int("anniversaries", len(site.Rules)),
		slog.String("timezone", site.Location.String()),
	)

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		Secret:         cfg.JWT.Secret,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	albumRepo := repository.NewAlbumRepository(db)
	galleryRepo := repository.NewGalleryRepository(db)
	noticeRepo := repository.NewNoticeRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize services
	authService, err := service.NewAuthService(service.AuthServiceConfig{
		Email:        cfg.Admin.Email,
		Password:     cfg.Admin.Password,
		PasswordHash: cfg.Admin.PasswordHash,
		Tokens:       jwtService,
	})
	if err != nil {
		slog.Error("failed to initialize auth service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	albumService := service.NewAlbumService(service.AlbumServiceConfig{
		Repo:  albumRepo,
		Blobs: blobs,
	})
	galleryService := service.NewGalleryService(service.GalleryServiceConfig{
		Repo:  galleryRepo,
		Blobs: blobs,
	})
	noticeService := service.NewNoticeService(service.NoticeServiceConfig{
		Repo:      noticeRepo,
		Sanitizer: security.NewNoticeSanitizer(),
	})
	videoService := service.NewVideoService(videoRepo)
	scheduleService := service.NewScheduleService(service.ScheduleServiceConfig{
		Repo:     scheduleRepo,
		Rules:    site.Rules,
		Location: site.Location,
	})
	memberService := service.NewMemberService(service.MemberServiceConfig{
		Repo:   memberRepo,
		Roster: site,
		Blobs:  blobs,
	})
	settingsService := service.NewSettingsService(service.SettingsServiceConfig{
		Repo:  settingsRepo,
		Blobs: blobs,
	})

	// Login throttling
	loginLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		PerMinute: cfg.RateLimit.LoginPerMinute,
		Burst:     cfg.RateLimit.LoginBurst,
	})
	defer loginLimiter.Stop()

	router := handler.NewRouter(handler.RouterConfig{
		Handlers: handler.Handlers{
			Health: handler.NewHealthHandler(db),
			Auth: handler.NewAuthHandler(handler.AuthHandlerConfig{
				Service:      authService,
				Recorder:     collector,
				CookieName:   cfg.JWT.CookieName,
				CookieSecure: cfg.JWT.CookieSecure,
			}),
			Album:    handler.NewAlbumHandler(albumService),
			Gallery:  handler.NewGalleryHandler(galleryService),
			Notice:   handler.NewNoticeHandler(noticeService),
			Video:    handler.NewVideoHandler(videoService),
			Schedule: handler.NewScheduleHandler(scheduleService),
			Member:   handler.NewMemberHandler(memberService),
			Settings: handler.NewSettingsHandler(settingsService),
		},
		Verifier:       authService,
		CookieName:     cfg.JWT.CookieName,
		LoginLimiter:   loginLimiter,
		OnLoginLimited: func() { collector.RecordLogin("limited") },
		TrustProxy:     cfg.Server.TrustProxy,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Recorder:       collector,
		Metrics:        metrics.Handler(registry),
		AdminDir:       cfg.Server.AdminStaticDir,
		UploadsDir:     uploadsDir,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
			slog.String("public_url", cfg.Server.PublicBaseURL),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}

// openStore builds the configured blob store. The returned directory is
// non-empty only for the local driver, whose files the API serves itself.
func openStore(ctx context.Context, cfg config.StorageConfig) (blob.Store, string, error) {
	switch cfg.Driver {
	case config.StorageGCS:
		store, err := blob.NewGCSStore(ctx, blob.GCSConfig{
			Bucket:          cfg.GCSBucket,
			CredentialsFile: cfg.GCSCredentials,
			PublicBaseURL:   cfg.GCSPublicURL,
		})
		if err != nil {
			return nil, "", err
		}
		return store, "", nil
	default:
		store, err := blob.NewLocalStore(cfg.LocalDir, cfg.LocalBaseURL)
		if err != nil {
			return nil, "", err
		}
		return store, store.Dir(), nil
	}
}

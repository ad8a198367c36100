package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"safenotice/internal/announce"
	"safenotice/internal/auth"
	"safenotice/internal/config"
	"safenotice/internal/drive"
	"safenotice/internal/exporter"
	transporthttp "safenotice/internal/http"
	"safenotice/internal/inquiry"
	"safenotice/internal/platform/database"
	"safenotice/internal/platform/logging"
	"safenotice/internal/platform/migrate"
	"safenotice/internal/ratelimit"
	"safenotice/internal/safety"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.New(cfg.LogLevel, cfg.Environment)

	announceRepo, safetyRepo, inquiryRepo, cleanup, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize repository", "error", err)
		os.Exit(1)
	}
	if cleanup != nil {
		defer cleanup()
	}

	sessions := auth.NewSessionManager(cfg.JWTSecret)
	cookies := transporthttp.NewCookieStore(cfg.Environment)

	nonces, err := auth.NewNonceStore()
	if err != nil {
		logger.Error("failed to initialize nonce store", "error", err)
		os.Exit(1)
	}
	defer func() { _ = nonces.Close() }()

	authHandler, pdfHandler := buildAuthSurface(ctx, cfg, sessions, cookies, nonces, logger)

	deps := transporthttp.RouterDeps{
		Config:        cfg,
		Auth:          authHandler,
		Guard:         transporthttp.NewAdminGuard(sessions, cookies, logger),
		Announcements: transporthttp.NewAnnouncementHandler(announce.NewService(announceRepo), logger),
		Safety:        transporthttp.NewSafetyHandler(safety.NewService(safetyRepo), exporter.NewRequestCSVExporter(), logger),
		Inquiries:     transporthttp.NewInquiryHandler(inquiry.NewService(inquiryRepo), logger),
		PDFs:          pdfHandler,
		Limiter:       ratelimit.New(),
		Logger:        logger,
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           transporthttp.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}

	go func() {
		logger.Info("safenotice API listening", "addr", srv.Addr, "store", cfg.DataStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

// buildAuthSurface wires the OAuth-dependent handlers. Without a complete
// OAuth client triple the service still starts; the OAuth and Drive endpoints
// then answer with configuration errors.
func buildAuthSurface(ctx context.Context, cfg config.Config, sessions *auth.SessionManager, cookies *transporthttp.CookieStore, nonces *auth.NonceStore, logger *slog.Logger) (*transporthttp.AuthHandler, *transporthttp.PDFHandler) {
	if !cfg.GoogleOAuthConfigured() {
		logger.Warn("google oauth is not configured; oauth login and drive endpoints are disabled")
		return transporthttp.NewAuthHandler(nil, sessions, cookies, nonces, cfg.AdminPassword, logger),
			transporthttp.NewPDFHandler(nil, nil, cookies, logger)
	}

	google, err := auth.NewGoogleClient(ctx, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI)
	if err != nil {
		logger.Error("failed to initialize google oauth client; oauth login is disabled", "error", err)
		return transporthttp.NewAuthHandler(nil, sessions, cookies, nonces, cfg.AdminPassword, logger),
			transporthttp.NewPDFHandler(nil, nil, cookies, logger)
	}

	authHandler := transporthttp.NewAuthHandler(google, sessions, cookies, nonces, cfg.AdminPassword, logger)
	pdfHandler := transporthttp.NewPDFHandler(drive.NewClient(cfg.DriveFolderID), auth.NewRefresher(google), cookies, logger)
	return authHandler, pdfHandler
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *slog.Logger) (announce.Repository, safety.Repository, inquiry.Repository, func(), error) {
	if cfg.UseInMemoryStore() {
		logger.Info("using in-memory repositories")
		return announce.NewInMemoryRepository(seedAnnouncements()),
			safety.NewInMemoryRepository(seedSafetyItems()),
			inquiry.NewInMemoryRepository(),
			nil, nil
	}

	db, err := database.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	cleanup := func() {
		_ = db.Close()
	}

	if err := migrate.Apply(ctx, db, logger); err != nil {
		cleanup()
		return nil, nil, nil, nil, err
	}

	logger.Info("connected to postgres")
	return announce.NewPostgresRepository(db),
		safety.NewPostgresRepository(db),
		inquiry.NewPostgresRepository(db),
		cleanup, nil
}

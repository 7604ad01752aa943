// Package main is the entry point for the Wilayah web server.
// Wilayah is a server-rendered CRUD application for managing Indonesian
// provinces and districts behind cookie-session authentication.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/prn-tf/wilayah/internal/auth"
	"github.com/prn-tf/wilayah/internal/config"
	"github.com/prn-tf/wilayah/internal/handler"
	"github.com/prn-tf/wilayah/internal/metrics"
	"github.com/prn-tf/wilayah/internal/repository"
	"github.com/prn-tf/wilayah/internal/repository/postgres"
	"github.com/prn-tf/wilayah/internal/repository/sqlite"
	"github.com/prn-tf/wilayah/internal/service"
	"github.com/prn-tf/wilayah/internal/session"
	"github.com/prn-tf/wilayah/internal/storage"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// database is the subset of the sqlite and postgres DB types the server needs.
type database interface {
	Migrate(ctx context.Context) error
	Health(ctx context.Context) error
	Close() error
}

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)
	logger := newLogger(cfg.Logging)

	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("Starting Wilayah server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, repos, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	store, err := openSessionStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open session store")
	}
	defer store.Close()

	photos, err := openPhotoStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open photo storage")
	}

	userService := service.NewUserService(repos.User, logger)
	sessionService := service.NewSessionService(userService, store, cfg.Session.TTL, logger)
	provinceService := service.NewProvinceService(repos.Province, logger)
	districtService := service.NewDistrictService(repos.District, repos.Province, logger)

	renderer, err := handler.NewRenderer(logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to parse templates")
	}

	router := handler.NewRouter(handler.RouterConfig{
		AuthHandler: handler.NewAuthHandler(handler.AuthHandlerConfig{
			UserService:    userService,
			SessionService: sessionService,
			Renderer:       renderer,
			CookieName:     cfg.Session.CookieName,
			CookieSecure:   cfg.Session.CookieSecure,
			Logger:         logger,
		}),
		ProvinceHandler: handler.NewProvinceHandler(handler.ProvinceHandlerConfig{
			ProvinceService: provinceService,
			Photos:          photos,
			Renderer:        renderer,
			Logger:          logger,
		}),
		DistrictHandler: handler.NewDistrictHandler(handler.DistrictHandlerConfig{
			DistrictService: districtService,
			ProvinceService: provinceService,
			Photos:          photos,
			Renderer:        renderer,
			Logger:          logger,
		}),
		PhotoHandler:   handler.NewPhotoHandler(photos, logger),
		AuthMiddleware: auth.NewMiddleware(sessionService, cfg.Session.CookieName, logger),
		DB:             db,
		Logger:         logger,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	var metricsServer *metrics.Server
	if cfg.Metrics.Enabled {
		metricsServer = metrics.NewServer(cfg.Metrics, logger)
		go func() {
			if err := metricsServer.Start(); err != nil {
				logger.Error().Err(err).Msg("Metrics server failed")
			}
		}()
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("HTTP server failed")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Metrics server shutdown failed")
		}
	}

	logger.Info().Msg("Server stopped")
}

// newLogger builds the root logger from the logging configuration.
func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out = os.Stdout
	if cfg.Output == "stderr" {
		out = os.Stderr
	}

	zerolog.TimeFieldFormat = cfg.TimeFormat
	if zerolog.TimeFieldFormat == "" {
		zerolog.TimeFieldFormat = time.RFC3339
	}

	if cfg.Format == "console" {
		return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
			Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// openDatabase opens the configured database backend and its repositories.
func openDatabase(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (database, *repository.Repositories, error) {
	switch cfg.Database.Driver {
	case "postgres":
		db, err := postgres.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		return db, postgres.NewRepositories(db), nil
	default:
		sqliteCfg := sqlite.DefaultConfig(cfg.Database.Path)
		if cfg.Database.JournalMode != "" {
			sqliteCfg.JournalMode = cfg.Database.JournalMode
		}
		if cfg.Database.BusyTimeout > 0 {
			sqliteCfg.BusyTimeout = cfg.Database.BusyTimeout
		}
		if cfg.Database.CacheSize != 0 {
			sqliteCfg.CacheSize = cfg.Database.CacheSize
		}
		if cfg.Database.SynchronousMode != "" {
			sqliteCfg.SynchronousMode = cfg.Database.SynchronousMode
		}

		db, err := sqlite.NewDB(ctx, sqliteCfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return db, sqlite.NewRepositories(db), nil
	}
}

// openSessionStore opens the configured session backend.
func openSessionStore(ctx context.Context, cfg *config.Config) (session.Store, error) {
	if cfg.Session.Backend == "redis" {
		return session.NewRedisStore(ctx, cfg.Redis)
	}
	return session.NewMemoryStore(), nil
}

// openPhotoStorage opens the configured photo storage backend.
func openPhotoStorage(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (storage.Backend, error) {
	if cfg.Storage.Backend == "s3" {
		return storage.NewS3Backend(ctx, cfg.Storage.S3, logger)
	}
	return storage.NewFilesystemBackend(cfg.Storage.DataDir, logger)
}

// Package server provides the HTTP server of the migration pack service.
// It handles routing, middleware configuration, and server lifecycle management.
//
// Dependencies are built in a fixed order: database, auth provider, repositories,
// pack service, handlers and finally routes. The pack service construction is
// shared with the command line so a one-off export runs exactly the pipeline the
// API runs.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/migrationpack/internal/auth"
	"github.com/yasinhessnawi1/migrationpack/internal/config"
	"github.com/yasinhessnawi1/migrationpack/internal/constants"
	"github.com/yasinhessnawi1/migrationpack/internal/database"
	"github.com/yasinhessnawi1/migrationpack/internal/handlers"
	"github.com/yasinhessnawi1/migrationpack/internal/repository"
	"github.com/yasinhessnawi1/migrationpack/internal/service"
	"github.com/yasinhessnawi1/migrationpack/internal/storage"
	"github.com/yasinhessnawi1/migrationpack/internal/utils/ratelimit"
)

// Handlers contains all HTTP handlers for the application.
type Handlers struct {
	// PackHandler serves the packer endpoints
	PackHandler *handlers.PackHandler

	// SystemHandler serves health and version
	SystemHandler *handlers.SystemHandler
}

// Server represents the API server of the migration pack service.
type Server struct {
	// Config contains application configuration
	Config *config.AppConfig

	// Db is the CMS database connection
	Db *database.Pool

	// router handles HTTP routing
	router chi.Router

	// Handlers contains all HTTP request handlers
	Handlers *Handlers

	// jwtService validates operator tokens
	jwtService auth.JWTValidator

	// rateLimits holds the per-client budgets of the pack endpoint
	rateLimits *ratelimit.Store

	// httpServer is the underlying HTTP server
	httpServer *http.Server
}

// NewServer creates a new server instance with all required components.
//
// Parameters:
//   - cfg: Application configuration
//
// Returns:
//   - A fully initialized Server instance ready to start
//   - An error if the database or the publisher cannot be set up
func NewServer(cfg *config.AppConfig) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	packService, err := NewPackService(context.Background(), cfg, db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set up services: %w", err)
	}

	s := newServer(cfg, auth.NewJWTService(&cfg.JWT), &Handlers{
		PackHandler:   handlers.NewPackHandler(packService),
		SystemHandler: handlers.NewSystemHandler(db, cfg.App.Version, cfg.App.Environment),
	})
	s.Db = db

	return s, nil
}

// newServer assembles a server around prepared handlers and sets up routes.
func newServer(cfg *config.AppConfig, jwtService auth.JWTValidator, h *Handlers) *Server {
	s := &Server{
		Config:     cfg,
		Handlers:   h,
		jwtService: jwtService,
		rateLimits: ratelimit.NewStore(ratelimit.Rate{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}, constants.RateLimitCleanupInterval),
	}

	s.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Server.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  constants.DefaultIdleTimeout,
	}

	return s
}

// NewPackService builds the pack service over the CMS database. When S3
// publishing is enabled the finished archives are uploaded as well.
//
// Parameters:
//   - ctx: Context used while loading the AWS configuration
//   - cfg: Application configuration
//   - db: CMS database connection
//
// Returns:
//   - The pack service
//   - An error if the publisher cannot be configured
func NewPackService(ctx context.Context, cfg *config.AppConfig, db *database.Pool) (*service.PackService, error) {
	dataTypes := repository.NewDataTypeRepository(db)
	stores := service.PackStores{
		Users:        repository.NewUserRepository(db),
		UserGroups:   repository.NewUserGroupRepository(db),
		Members:      repository.NewMemberRepository(db),
		MemberGroups: repository.NewMemberGroupRepository(db),
		MemberTypes:  repository.NewMemberTypeRepository(db),
		DataTypes:    dataTypes,
	}

	// Left nil unless configured so the service sees no publisher at all
	var publisher service.ArchivePublisher
	if cfg.Publish.S3.Enabled {
		s3Publisher, err := storage.NewS3Publisher(ctx, cfg.Publish.S3)
		if err != nil {
			return nil, err
		}
		publisher = s3Publisher
		log.Info().
			Str("bucket", cfg.Publish.S3.Bucket).
			Str("prefix", cfg.Publish.S3.Prefix).
			Msg("Publishing migration packs to S3")
	}

	return service.NewPackService(
		stores,
		service.NewDataTypeExporter(dataTypes),
		service.NewFileGridConfigSource(cfg.Pack),
		publisher,
		cfg.Pack,
	), nil
}

// Start starts the HTTP server and blocks until it fails or a shutdown
// signal arrives, then shuts down gracefully.
func (s *Server) Start() error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", s.Config.Server.ServerAddress()).
			Msg("Starting server")

		serverErrors <- s.httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		s.rateLimits.Stop()
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info().
			Str("signal", sig.String()).
			Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(ctx); err != nil {
			if closeErr := s.httpServer.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// Shutdown waits for in-flight requests, then releases the database and the
// rate limiter.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	log.Info().Msg("Server stopped gracefully")

	s.rateLimits.Stop()

	if s.Db != nil {
		s.Db.Close()
		log.Info().Msg("Database connection closed")
	}

	return nil
}

// Package entryservice wires configuration, clients, and the HTTP server for
// the moodgarden entry service.
package entryservice

import (
	"context"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/moodgarden/moodgarden/internal/api"
	"github.com/moodgarden/moodgarden/internal/api/recovery"
	s3blob "github.com/moodgarden/moodgarden/internal/blob/s3"
	"github.com/moodgarden/moodgarden/internal/config"
	"github.com/moodgarden/moodgarden/internal/health"
	"github.com/moodgarden/moodgarden/internal/imagegen/imagen"
	"github.com/moodgarden/moodgarden/internal/logger"
	"github.com/moodgarden/moodgarden/internal/services"
	"github.com/moodgarden/moodgarden/internal/store/postgres"
	"github.com/moodgarden/moodgarden/internal/worker"
)

// Run starts the entry service HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("entry-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Int("http_port", cfg.HTTPPort).
		Str("s3_bucket", cfg.S3Bucket).
		Str("credential_source", string(cfg.CredentialSource())).
		Str("imagen_model", cfg.ImagenModel).
		Msg("Entry service starting")

	// Cancellable root context bound to SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// External clients are constructed once and dependency-injected.
	db, err := postgres.Open(cfg.PostgresDSN)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Entry store unavailable")
		return err
	}
	defer func() { _ = db.Close() }()

	if err := postgres.RunMigrations(ctx, db); err != nil {
		log.Error().Stack().Err(err).Msg("Schema migration failed")
		return err
	}
	entryStore := postgres.NewWithDB(db)

	blobStore, err := s3blob.New(ctx, cfg)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Blob store unavailable")
		return err
	}

	generator := imagen.New(cfg)

	pool := worker.NewPool(ctx, log)
	entrySvc := services.NewEntryService(entryStore, blobStore, generator, pool, log, cfg.SignedURLTTL())

	svcHealth := startHealthCheckers(ctx, cfg, log, entryStore, blobStore)

	router := buildRouter(entrySvc, svcHealth.IsHealthy)

	server := &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		if err := pool.Shutdown(ctxShutdown); err != nil {
			log.Warn().Err(err).Msg("Background tasks did not drain in time")
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// buildRouter wires HTTP routes to handlers.
func buildRouter(entrySvc *services.EntryService, isHealthy func() bool) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware)

	entry := api.NewEntryHandler(entrySvc)
	root.HandleFunc("/entries", entry.CreateEntry).Methods("POST")
	root.HandleFunc("/entries", entry.ListEntries).Methods("GET")
	root.HandleFunc("/entries/{id}/flower-status", entry.GetFlowerStatus).Methods("GET")
	root.HandleFunc("/entries/{id}", entry.UpdateEntry).Methods("PUT")
	root.HandleFunc("/entries/{id}", entry.DeleteEntry).Methods("DELETE")

	healthHandler := api.NewHealthHandler(isHealthy)
	root.HandleFunc("/health", healthHandler.CheckHealth).Methods("GET")

	return root
}

// startHealthCheckers starts component checkers and the service-level aggregator.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, store, blobs health.Pinger) *health.ServiceChecker {
	probeTimeout := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second

	storeChecker := health.NewPingChecker("entry-store", store, probeTimeout, log)
	go storeChecker.Start(ctx, interval)

	blobChecker := health.NewPingChecker("blob-store", blobs, probeTimeout, log)
	go blobChecker.Start(ctx, interval)

	svcHealth := health.NewServiceChecker(log, storeChecker, blobChecker)
	go svcHealth.Start(ctx, interval)
	return svcHealth
}

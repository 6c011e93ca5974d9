// Command server runs the Swasth wellness API.
//
//	@title			Swasth Wellness API
//	@version		1.0
//	@description	Student wellness companion: chat, mood journal, encouragement wall and progress.
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/swasth-ai/wellness-backend/internal/config"
	httpapi "github.com/swasth-ai/wellness-backend/internal/http"
	"github.com/swasth-ai/wellness-backend/internal/llm"
	"github.com/swasth-ai/wellness-backend/internal/observability"
	"github.com/swasth-ai/wellness-backend/internal/postgrest"
	"github.com/swasth-ai/wellness-backend/internal/repo"
	"github.com/swasth-ai/wellness-backend/internal/services"
	"github.com/swasth-ai/wellness-backend/internal/sysutil"
	"github.com/swasth-ai/wellness-backend/internal/upstream"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

const purgeInterval = 10 * time.Minute

func main() {
	// .env is optional; real environment wins.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		sysutil.SetupLogging(sysutil.LogOptions{Level: "info"})
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	sysutil.SetupLogging(sysutil.LogOptions{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		NoColor: sysutil.IsTruthy(os.Getenv("NO_COLOR")),
	})
	gin.SetMode(cfg.GinMode)
	appVersion := sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, appVersion, observability.DeploymentAttrs(cfg)...)
	if err != nil {
		log.Warn().Err(err).Msg("tracing disabled")
		shutdownOTel = func(context.Context) error { return nil }
	}

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	deps := httpapi.Deps{DB: db}
	switch cfg.Store.Driver {
	case config.StoreDriverSQLite:
		local := repo.NewStore(db)
		deps.Moods, deps.Notes = local, local
	default:
		remote := postgrest.NewStore(postgrest.New(cfg.Store, upstream.New("store", cfg.Store.Timeout)))
		deps.Moods, deps.Notes, deps.Identity = remote, remote, remote
	}

	completer, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		log.Fatal().Err(err).Str("provider", cfg.LLM.Provider).Msg("build llm client")
	}
	if c, ok := completer.(io.Closer); ok {
		defer c.Close()
	}
	deps.LLM = completer

	r := gin.New()
	httpapi.RegisterRoutes(r, deps, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go purgeLedger(ctx, services.NewIdempotencyService(db, cfg.IdempotencyTTL), purgeInterval)

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("version", appVersion).
			Str("store", cfg.Store.Driver).
			Str("llm", cfg.LLM.Provider).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("flush traces")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server exited")
}

// purgeLedger drops expired idempotency keys until ctx is done.
func purgeLedger(ctx context.Context, ledger *services.IdempotencyService, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := ledger.Purge(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("purge idempotency ledger")
				continue
			}
			if n > 0 {
				log.Debug().Int64("removed", n).Msg("purged idempotency keys")
			}
		}
	}
}

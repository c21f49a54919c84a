package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	basketHnd "basket-service/internal/basket/handler"
	"basket-service/internal/basket/service"
	"basket-service/internal/config"
	"basket-service/internal/session"
	"basket-service/internal/storage/sqlite"
	serverhttp "basket-service/server/http"
)

func main() {
	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Str("db", cfg.DBPath).Msg("open storage")
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for _, id := range cfg.AdminIDs {
		if err := store.AddAdmin(ctx, id); err != nil {
			logger.Fatal().Err(err).Str("user", id).Msg("bootstrap admin")
		}
	}

	catalog := service.NewCatalog(store, logger)
	if err := catalog.Load(ctx); err != nil {
		logger.Fatal().Err(err).Msg("load catalog")
	}

	sessions := session.NewStore()
	go sessions.RunSweeper(ctx, time.Minute, cfg.SessionIdleTTL, func(n int) {
		logger.Info().Int("sessions", n).Msg("idle sessions evicted")
	})

	h := basketHnd.New(cfg, catalog, sessions, service.NewOptimizer(cfg.MaxSubsets, logger), logger)
	r := serverhttp.NewRouter(cfg, logger, h, store)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info().Str("addr", cfg.Addr()).Int("products", catalog.Snapshot().Len()).Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	<-ctx.Done()
	logger.Info().Msg("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	logger.Info().Msg("bye")
}

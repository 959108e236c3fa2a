package main

import (
	"context"
	"fmt"
	"net/http"
	"quoridor-history/internal/config"
	"quoridor-history/internal/constants"
	fxmodules "quoridor-history/internal/fx"
	"quoridor-history/internal/middleware"
	"quoridor-history/internal/server"
	"slices"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runServer),
	).Run()
}

func newHandler(historyServer *server.HistoryServer, cfg *config.Config, logger zerolog.Logger) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
	if slices.Contains(cfg.CORSOrigins, "*") {
		// browsers refuse a literal * on credentialed responses, so echo the origin
		opts.AllowedOrigins = nil
		opts.AllowOriginFunc = func(string) bool { return true }
	}
	c := cors.New(opts)

	return middleware.RequestID(logger)(c.Handler(middleware.Recover(historyServer.Routes())))
}

func runServer(
	lc fx.Lifecycle,
	historyServer *server.HistoryServer,
	cfg *config.Config,
	logger zerolog.Logger,
) {
	cfg.LogFields(logger.Info()).Msg("configuration loaded")

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: newHandler(historyServer, cfg, logger),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info().Str("addr", srv.Addr).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("server shutdown failed")
				return err
			}
			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}

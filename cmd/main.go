// @title TODO List API
// @version 1.0.0
// @description A TODO list API with user registration, HTTP Basic authentication and per-user CRUD on TODO items.

// @contact.name API Support
// @contact.email support@todoapi.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.basic BasicAuth

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"TODOLIST_BACK-END/internal/config"
	"TODOLIST_BACK-END/internal/logger"
	"TODOLIST_BACK-END/internal/middleware"
	"TODOLIST_BACK-END/internal/routes"
	"TODOLIST_BACK-END/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("load config")
	}

	log := logger.New(cfg.Log)
	if cfg.EnvFile != "" {
		log.Info().Str("file", cfg.EnvFile).Msg("loaded env file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("open store")
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Error().Err(err).Msg("close store")
		}
	}()
	log.Info().Str("driver", s.Name()).Msg("store ready")

	srv := newServer(cfg, log, s)

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("ListenAndServe")
			return
		}
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}

// newServer wires the routes behind CORS and request logging.
func newServer(cfg *config.Config, log zerolog.Logger, s store.Store) *http.Server {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	return &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           middleware.RequestLogger(log)(c.Handler(routes.NewRouter(s, cfg.Auth))),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
}

package main

import (
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/wadjakorntonsri/minilink/pkg/adapters/handler"
	"github.com/wadjakorntonsri/minilink/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/minilink/pkg/config"
	"github.com/wadjakorntonsri/minilink/pkg/core/services"
)

func main() {
	cfg := config.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.AppEnv == "local" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	// Initialize Repository
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Initialize Services
	tokens := services.NewTokenService(cfg.JWTSecret)
	userService := services.NewUserService(repo, tokens)
	linkService := services.NewLinkService(repo, cfg.BaseURL)
	analyticsService := services.NewAnalyticsService(repo)

	// Initialize Router
	mux := handler.NewRouter(logger, repo, tokens, userService, linkService, analyticsService)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logger.Info().Str("port", cfg.Port).Msg("Server starting")
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

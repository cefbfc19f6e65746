package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/agenthands/recon/internal/config"
	"github.com/agenthands/recon/internal/logging"
	"github.com/agenthands/recon/internal/server"
)

func main() {
	envErr := godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		logging.Default().Fatal().Err(err).Str("path", cfgPath).Msg("Failed to load configuration")
	}
	cfg.ApplyEnv()

	logger := logging.NewFromConfig(cfg.Logging)
	logging.SetDefault(logger)
	if envErr != nil {
		logger.Debug().Msg("No .env file found, using defaults")
	}

	srv, cleanup, err := server.NewServerFromConfig(context.Background(), cfg, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
	defer cleanup()

	r := srv.SetupRouter()

	logger.Info().Str("port", cfg.Server.Port).Msg("Starting server")
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Error().Err(err).Msg("Server stopped")
	}
}

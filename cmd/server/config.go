package main

import (
	"fmt"
	"log/slog"

	"github.com/casafind/casafind-api/internal/api/shared"
	"github.com/casafind/casafind-api/internal/config"
	"github.com/casafind/casafind-api/internal/platform/logger"
)

// loadAppConfig loads and validates configuration, then installs the
// structured logger it describes as the process default.
func loadAppConfig(configFile string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadWithOptions(config.Options{ConfigFile: configFile})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	// Error details help local debugging but stay out of production responses.
	shared.ExposeErrorDetail(!cfg.Server.IsProduction())

	log.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("redis_rate_limit", cfg.RateLimit.RedisAddr != ""),
		slog.Bool("object_storage", cfg.Storage.Enabled()))
	log.Debug("Database configuration", slog.String("url", maskDatabaseURL(cfg.Database.URL)))

	return cfg, log, nil
}

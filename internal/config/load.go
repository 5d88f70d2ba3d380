package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. CASAFIND_AUTH_JWT_SECRET.
const EnvPrefix = "CASAFIND"

// defaults holds every key with a default value. Keys without defaults still
// need to be registered with BindEnv so Unmarshal sees env-only values.
var defaults = map[string]any{
	"server.port":                        8080,
	"server.log_level":                   "info",
	"server.environment":                 EnvDevelopment,
	"server.request_timeout_seconds":     15,
	"server.shutdown_timeout_seconds":    10,
	"server.allowed_origins":             []string{"http://localhost:3000", "http://localhost:5173"},
	"database.max_open_conns":            10,
	"database.max_idle_conns":            5,
	"database.conn_max_lifetime_minutes": 5,
	"database.auto_migrate":              false,
	"auth.token_lifetime_minutes":        1440,
	"auth.bcrypt_cost":                   10,
	"rate_limit.requests":                20,
	"rate_limit.window_seconds":          60,
	"rate_limit.redis_db":                0,
	"storage.use_ssl":                    false,
	"storage.max_upload_bytes":           5 << 20,
}

var envOnlyKeys = []string{
	"database.url",
	"auth.jwt_secret",
	"rate_limit.redis_addr",
	"rate_limit.redis_password",
	"storage.endpoint",
	"storage.access_key",
	"storage.secret_key",
	"storage.bucket",
	"storage.public_base_url",
}

// Options tweaks where Load looks for configuration.
type Options struct {
	// ConfigFile is an explicit path; when empty, config.yaml in the working
	// directory is used if present.
	ConfigFile string
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadWithOptions(Options{})
}

// LoadWithOptions is Load with an explicit config file location.
func LoadWithOptions(opts Options) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || opts.ConfigFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key := range defaults {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}
	for _, key := range envOnlyKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Comma-separated origins from the environment arrive as a single element.
	cfg.Server.AllowedOrigins = splitList(cfg.Server.AllowedOrigins)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate runs struct-tag validation over a loaded configuration.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

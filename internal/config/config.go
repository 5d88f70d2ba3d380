package config

import "time"

// Environment names recognised by Server.Environment.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"     validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"   validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"       validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" validate:"required"`
	Storage   StorageConfig   `mapstructure:"storage"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int      `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string   `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	Environment            string   `mapstructure:"environment"              validate:"required,oneof=development production"`
	RequestTimeoutSeconds  int      `mapstructure:"request_timeout_seconds"  validate:"required,gt=0"`
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" validate:"required,gt=0"`
	AllowedOrigins         []string `mapstructure:"allowed_origins"          validate:"required,min=1"`
}

// IsProduction reports whether the server runs with production settings.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == EnvProduction
}

// RequestTimeout returns the per-request deadline.
func (s ServerConfig) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

// ShutdownTimeout returns how long in-flight requests get to drain on shutdown.
func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSeconds) * time.Second
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL                    string `mapstructure:"url"                       validate:"required,url"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"            validate:"gt=0"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"            validate:"gte=0,ltefield=MaxOpenConns"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gt=0"`
	AutoMigrate            bool   `mapstructure:"auto_migrate"`
}

// AuthConfig contains all authentication and authorization settings.
// JWTSecret has no default: a missing or short secret aborts startup.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lt=525600"`
	BcryptCost           int    `mapstructure:"bcrypt_cost"            validate:"gte=4,lte=31"`
}

// TokenLifetime returns the access token lifetime.
func (a AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(a.TokenLifetimeMinutes) * time.Minute
}

// RateLimitConfig controls the fixed-window limiter in front of /api/auth.
// An empty RedisAddr selects the in-process limiter.
type RateLimitConfig struct {
	Requests      int    `mapstructure:"requests"       validate:"required,gt=0"`
	WindowSeconds int    `mapstructure:"window_seconds" validate:"required,gt=0"`
	RedisAddr     string `mapstructure:"redis_addr"     validate:"omitempty,hostname_port"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"       validate:"gte=0"`
}

// Window returns the limiter window as a duration.
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// StorageConfig configures the S3-compatible bucket holding listing images.
// Image routes are only mounted when Endpoint is set.
type StorageConfig struct {
	Endpoint       string `mapstructure:"endpoint"         validate:"omitempty,hostname_port"`
	AccessKey      string `mapstructure:"access_key"       validate:"required_with=Endpoint"`
	SecretKey      string `mapstructure:"secret_key"       validate:"required_with=Endpoint"`
	Bucket         string `mapstructure:"bucket"           validate:"required_with=Endpoint"`
	UseSSL         bool   `mapstructure:"use_ssl"`
	PublicBaseURL  string `mapstructure:"public_base_url"  validate:"omitempty,url"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes" validate:"gt=0"`
}

// Enabled reports whether object storage was configured.
func (s StorageConfig) Enabled() bool {
	return s.Endpoint != ""
}

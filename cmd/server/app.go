package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/casafind/casafind-api/internal/api"
	"github.com/casafind/casafind-api/internal/config"
	"github.com/casafind/casafind-api/internal/platform/objectstore"
	"github.com/casafind/casafind-api/internal/platform/postgres"
	"github.com/casafind/casafind-api/internal/platform/ratelimit"
	"github.com/casafind/casafind-api/internal/service"
	"github.com/casafind/casafind-api/internal/service/auth"
)

// application holds the shared dependencies of a running server so they can
// be wired once and released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sqlx.DB
	redis  *redis.Client

	jwtService auth.JWTService
	limiter    ratelimit.Limiter

	users      service.UserService
	properties service.PropertyService
	favorites  service.FavoriteService
	messages   service.MessageService
	reviews    service.ReviewService

	maxUploadBytes int64
}

// dependencies are the externally provided parts of an application. Tests
// pass fakes for the optional ones.
type dependencies struct {
	db      *sqlx.DB
	storage service.ObjectStorage
	limiter ratelimit.Limiter
	redis   *redis.Client
}

// newApplication wires stores, services and the token service on top of deps.
func newApplication(cfg *config.Config, log *slog.Logger, deps dependencies) (*application, error) {
	app := &application{
		config:         cfg,
		logger:         log,
		db:             deps.db,
		redis:          deps.redis,
		limiter:        deps.limiter,
		maxUploadBytes: cfg.Storage.MaxUploadBytes,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	log.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	if app.limiter == nil {
		app.limiter = ratelimit.NewMemoryLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window())
	}

	userStore := postgres.NewPostgresUserStore(deps.db, log)
	propertyStore := postgres.NewPostgresPropertyStore(deps.db, log)
	imageStore := postgres.NewPostgresPropertyImageStore(deps.db, log)
	favoriteStore := postgres.NewPostgresFavoriteStore(deps.db, log)
	messageStore := postgres.NewPostgresMessageStore(deps.db, log)
	reviewStore := postgres.NewPostgresReviewStore(deps.db, log)

	if app.users, err = service.NewUserService(userStore, auth.NewBcrypt(cfg.Auth.BcryptCost), log); err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}
	if app.properties, err = service.NewPropertyService(
		deps.db, propertyStore, imageStore, deps.storage, log,
	); err != nil {
		return nil, fmt.Errorf("failed to create property service: %w", err)
	}
	if app.favorites, err = service.NewFavoriteService(deps.db, favoriteStore, log); err != nil {
		return nil, fmt.Errorf("failed to create favorite service: %w", err)
	}
	if app.messages, err = service.NewMessageService(messageStore, log); err != nil {
		return nil, fmt.Errorf("failed to create message service: %w", err)
	}
	if app.reviews, err = service.NewReviewService(reviewStore, propertyStore, log); err != nil {
		return nil, fmt.Errorf("failed to create review service: %w", err)
	}

	log.Info("Application initialized successfully")
	return app, nil
}

// connectDependencies opens the database and, when configured, Redis and
// object storage. Whatever was opened is closed again on failure.
func connectDependencies(ctx context.Context, cfg *config.Config, log *slog.Logger) (dependencies, error) {
	var deps dependencies

	db, err := setupAppDatabase(ctx, cfg.Database, log)
	if err != nil {
		return deps, err
	}
	deps.db = db

	if cfg.RateLimit.RedisAddr != "" {
		rdb, err := ratelimit.NewRedisClient(ctx, cfg.RateLimit.RedisAddr, cfg.RateLimit.RedisPassword, cfg.RateLimit.RedisDB)
		if err != nil {
			_ = db.Close()
			return deps, fmt.Errorf("failed to connect to redis: %w", err)
		}
		deps.redis = rdb
		deps.limiter = ratelimit.NewRedisLimiter(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window())
		log.Info("Rate limiting backed by redis", slog.String("addr", cfg.RateLimit.RedisAddr))
	} else {
		log.Info("Rate limiting kept in process memory")
	}

	if cfg.Storage.Enabled() {
		objects, err := objectstore.NewMinioStore(ctx, objectstore.Options{
			Endpoint:      cfg.Storage.Endpoint,
			AccessKey:     cfg.Storage.AccessKey,
			SecretKey:     cfg.Storage.SecretKey,
			Bucket:        cfg.Storage.Bucket,
			UseSSL:        cfg.Storage.UseSSL,
			PublicBaseURL: cfg.Storage.PublicBaseURL,
		})
		if err != nil {
			closeDependencies(deps, log)
			return dependencies{}, fmt.Errorf("failed to connect to object storage: %w", err)
		}
		deps.storage = objects
		log.Info("Object storage enabled",
			slog.String("endpoint", cfg.Storage.Endpoint),
			slog.String("bucket", cfg.Storage.Bucket))
	} else {
		log.Info("Object storage not configured; image uploads disabled")
	}

	return deps, nil
}

func closeDependencies(deps dependencies, log *slog.Logger) {
	if deps.redis != nil {
		if err := deps.redis.Close(); err != nil {
			log.Error("Error closing redis client", slog.String("error", err.Error()))
		}
	}
	if deps.db != nil {
		if err := deps.db.Close(); err != nil {
			log.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}
}

// cleanup releases the application's connections.
func (app *application) cleanup() {
	closeDependencies(dependencies{db: app.db, redis: app.redis}, app.logger)
}

// handlers builds the HTTP handlers for the wired services.
func (app *application) handlers() routeHandlers {
	return routeHandlers{
		auth:       api.NewAuthHandler(app.users, app.jwtService, app.logger),
		properties: api.NewPropertyHandler(app.properties, app.maxUploadBytes, app.logger),
		favorites:  api.NewFavoriteHandler(app.favorites, app.logger),
		messages:   api.NewMessageHandler(app.messages, app.logger),
		reviews:    api.NewReviewHandler(app.reviews, app.logger),
	}
}

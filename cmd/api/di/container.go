package di

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-directory-service/cmd/api/infrastructure"
	"user-directory-service/internal/adapter/cache"
	"user-directory-service/internal/adapter/db/postgres"
	httphandler "user-directory-service/internal/adapter/http/handler"
	"user-directory-service/internal/adapter/http/middleware"
	"user-directory-service/internal/adapter/repository/cached"
	"user-directory-service/internal/config"
	authuc "user-directory-service/internal/usecase/auth"
	useruc "user-directory-service/internal/usecase/user"
	"user-directory-service/pkg/hash"
	redisclient "user-directory-service/pkg/redis"
	"user-directory-service/pkg/token"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client
	Tokens      *token.Issuer
	UserUC      useruc.Directory
	AuthUC      *authuc.Usecase
	RateLimiter *middleware.RateLimiter
	UserHandler *httphandler.UserHandler
	AuthHandler *httphandler.AuthHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Initialize database
	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize repository; Redis is optional and only adds read caching
	dbRepo := postgres.NewUserRepoPG(db, l)
	var repo useruc.Repository = dbRepo

	var rdb *redisclient.Client
	if cfg.Redis.Enabled {
		rdb, err = infrastructure.NewRedisClient(cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}

		userCache := cache.NewRedisUserCache(
			rdb.Client,
			time.Duration(cfg.Redis.CacheTTL)*time.Second,
			l,
		)
		repo = cached.NewCachedUserRepository(dbRepo, userCache, l)
	}

	// Credential hashing and token issuing
	hasher := hash.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := token.NewIssuer(
		cfg.Auth.JWTSecret,
		cfg.Logger.ServiceName,
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute,
	)

	// Initialize use cases
	userUC := useruc.New(repo, hasher, l)
	authUC := authuc.New(repo, hasher, tokens, l)

	// Initialize rate limiter; without Redis the limiter passes requests through
	var limiterRedis *redis.Client
	if rdb != nil {
		limiterRedis = rdb.Client
	}
	rateLimiter := middleware.NewRateLimiter(
		limiterRedis,
		middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			WindowSeconds:     cfg.RateLimit.WindowSeconds,
			Enabled:           cfg.RateLimit.Enabled,
		},
		l,
	)

	return &Container{
		Config:      cfg,
		Logger:      l,
		DB:          db,
		RedisClient: rdb,
		Tokens:      tokens,
		UserUC:      userUC,
		AuthUC:      authUC,
		RateLimiter: rateLimiter,
		UserHandler: httphandler.NewUserHandler(userUC, l),
		AuthHandler: httphandler.NewAuthHandler(authUC, l),
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}

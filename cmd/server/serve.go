package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/sessions"
	"github.com/hashicorp/go-cleanhttp"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"Chirp/internal/api/handlers/devauth"
	"Chirp/internal/api/middleware"
	"Chirp/internal/api/routes"
	"Chirp/internal/auth"
	"Chirp/internal/config"
	"Chirp/internal/core/posts"
	"Chirp/internal/core/users"
	"Chirp/internal/db/migrations"
	postgresRepo "Chirp/internal/db/postgres"
	"Chirp/internal/identity"
	"Chirp/internal/logging"
	"Chirp/internal/ratelimit"
)

const (
	postRateLimitPrefix = "chirp:ratelimit:posts"
	shutdownTimeout     = 15 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	db, err := openDatabase(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()
	logger.Info("connected to database")

	if !skipMigrations {
		if err := migrations.Up(db, logger); err != nil {
			return err
		}
		logger.Info("migrations completed successfully")
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer func() {
		_ = rdb.Close()
	}()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	logger.Info("connected to redis")

	// Identity directory and author resolution
	directory := identity.NewClient(cfg.IdentityAPIURL, cfg.IdentitySecretKey, cfg.IdentityTimeout,
		logger.WithField("component", "identity"))
	resolver := posts.NewAuthorResolver(directory)

	// Per-author post quota, shared across instances
	postLimiter := ratelimit.NewSlidingWindow(rdb, postRateLimitPrefix, cfg.PostRateLimit, cfg.PostRateWindow)

	postRepo := postgresRepo.NewPostRepository(db)
	postService := posts.NewPostService(postRepo, resolver, postLimiter, logger.WithField("component", "posts"))
	userService := users.NewUserService(directory, logger.WithField("component", "users"))

	// Session token verification
	var verifier middleware.TokenVerifier
	if cfg.AuthJWKSURL != "" {
		jwksClient := cleanhttp.DefaultPooledClient()
		jwksClient.Timeout = cfg.IdentityTimeout
		fetcher, err := auth.NewJWKSFetcher(ctx, cfg.AuthJWKSURL, cfg.AuthJWKSRefresh, jwksClient)
		if err != nil {
			return err
		}
		verifier = auth.NewVerifier(fetcher, cfg.AuthIssuer, cfg.AuthorizedParties())
	}

	var devSessions sessions.Store
	if cfg.DevAuth {
		devSessions = devauth.NewSessionStore([]byte(cfg.SessionSecret))
		logger.Warn("DEV_AUTH is enabled: /dev/signin accepts any user id")
	}

	authMiddleware := middleware.NewAuthMiddleware(verifier, devSessions, logger.WithField("component", "auth"))

	ipLimiter, err := middleware.NewRateLimiter(cfg.IPRateLimit, cfg.IPRateBurst, middleware.DefaultMaxTrackedClients, logger)
	if err != nil {
		return fmt.Errorf("failed to create rate limiter: %w", err)
	}

	router := routes.NewRouter(routes.Dependencies{
		PostService: postService,
		UserService: userService,
		Auth:        authMiddleware,
		IPLimiter:   ipLimiter,
		DevSessions: devSessions,
		HealthChecks: map[string]routes.HealthCheck{
			"database": db.PingContext,
			"redis":    postLimiter.Ping,
		},
		Logger:            logger,
		AllowedOrigins:    cfg.AllowedOrigins(),
		TrustProxyHeaders: cfg.TrustProxyHeaders,
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{
			"addr":         cfg.Addr(),
			"identity_api": cfg.IdentityAPIURL,
			"dev_auth":     cfg.DevAuth,
		}).Info("Chirp API starting")
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func openDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

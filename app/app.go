// File: app/app.go
package app

import (
	"context"
	"database/sql"
	"errors"
	"go-ledger-api/config"
	"go-ledger-api/db"
	"go-ledger-api/events"
	"go-ledger-api/gateway"
	"go-ledger-api/handler"
	"go-ledger-api/logger"
	"go-ledger-api/middleware"
	"go-ledger-api/repository"
	"go-ledger-api/router"
	"go-ledger-api/service"
	"go-ledger-api/token"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 5 * time.Second

func bootstrap() config.Config {
	config.LoadConfig(".")
	logger.Init()
	logger.SetLevel(config.AppConfig.Log.Level)
	logger.Log.Info("Configuration loaded successfully")
	return config.AppConfig
}

func openDatabase(cfg config.Config) *sql.DB {
	database, err := db.Connect(cfg.Database)
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	if cfg.Migrations.Auto {
		if err := db.Migrate(cfg.Migrations.Path, db.URL(cfg.Database)); err != nil {
			logger.Log.Fatalf("Error applying migrations: %v", err)
		}
	}
	return database
}

// newPublisher connects to RabbitMQ when a URL is configured. Events are
// dropped otherwise.
func newPublisher(cfg config.Config) events.Publisher {
	if cfg.Events.AMQPURL == "" {
		logger.Log.Warn("AMQP URL not configured, domain events are disabled")
		return events.NoopPublisher{}
	}
	p, err := events.NewRabbitPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange)
	if err != nil {
		logger.Log.WithError(err).Warn("RabbitMQ unavailable, domain events are disabled")
		return events.NoopPublisher{}
	}
	return p
}

// NewAuthServer wires the auth service: sign-up, sign-in, refresh, sign-out
// and the current user's profile.
func NewAuthServer(cfg config.Config, database *sql.DB, publisher events.Publisher) (http.Handler, error) {
	issuer, err := token.NewIssuer(cfg.JWT.SecretKey, cfg.JWT.AccessTTL)
	if err != nil {
		return nil, err
	}
	hasher := service.NewBcryptHasher(cfg.Password.BcryptCost)

	userRepo := repository.NewUserRepository(database)
	tokenRepo := repository.NewTokenRepository(database)

	sessions := service.NewSessionService(database, userRepo, tokenRepo, issuer, cfg.JWT.RefreshTTL).
		WithPublisher(publisher)
	authService := service.NewAuthService(userRepo, sessions, hasher).WithPublisher(publisher)
	userService := service.NewUserService(userRepo, sessions, hasher)

	authHandler := handler.NewAuthHandler(authService, issuer)
	userHandler := handler.NewUserHandler(userService)

	return router.NewAuthRouter(authHandler, userHandler), nil
}

// NewSettingsServer wires the user-settings service. rdb may be nil.
func NewSettingsServer(cfg config.Config, database *sql.DB, rdb *redis.Client) http.Handler {
	var cache service.ICacheClient
	if rdb != nil {
		cache = rdb
	}
	settingsRepo := repository.NewSettingsRepository(database)
	settingsService := service.NewSettingsService(settingsRepo, cache, cfg.Services.SettingsCacheTTL)
	return router.NewSettingsRouter(handler.NewSettingsHandler(settingsService))
}

// NewGatewayServer wires the public entry point. rdb may be nil.
func NewGatewayServer(cfg config.Config, rdb *redis.Client) (http.Handler, error) {
	issuer, err := token.NewIssuer(cfg.JWT.SecretKey, cfg.JWT.AccessTTL)
	if err != nil {
		return nil, err
	}
	limiter := middleware.NewLimiter(cfg.Gateway.RateLimit, rdb)
	return gateway.NewHandler(cfg.Gateway, issuer, limiter)
}

func RunAuth() {
	cfg := bootstrap()

	database := openDatabase(cfg)
	defer database.Close()

	publisher := newPublisher(cfg)
	defer publisher.Close()

	h, err := NewAuthServer(cfg, database, publisher)
	if err != nil {
		logger.Log.Fatalf("Error wiring auth service: %v", err)
	}
	serve("auth", cfg.Server.Port, h)
}

func RunUserSettings() {
	cfg := bootstrap()

	database := openDatabase(cfg)
	defer database.Close()

	rdb, err := db.ConnectRedis(cfg.Redis)
	if err != nil {
		logger.Log.WithError(err).Warn("Settings cache disabled")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	serve("user-settings", cfg.Server.Port, NewSettingsServer(cfg, database, rdb))
}

func RunGateway() {
	cfg := bootstrap()

	rdb, err := db.ConnectRedis(cfg.Redis)
	if err != nil {
		logger.Log.WithError(err).Warn("Falling back to in-process rate limiting")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	h, err := NewGatewayServer(cfg, rdb)
	if err != nil {
		logger.Log.Fatalf("Error wiring gateway: %v", err)
	}
	serve("gateway", cfg.Server.Port, h)
}

// serve runs h until SIGINT or SIGTERM, then drains in-flight requests.
func serve(name, port string, h http.Handler) {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.WithField("service", name).Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Errorf("Server forced to shutdown: %v", err)
		return
	}

	logger.Log.WithField("service", name).Info("Server exited properly")
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/andressep95/leadcapture/internal/config"
	"github.com/andressep95/leadcapture/internal/events"
	"github.com/andressep95/leadcapture/internal/handler"
	"github.com/andressep95/leadcapture/internal/handler/middleware"
	"github.com/andressep95/leadcapture/internal/migration"
	"github.com/andressep95/leadcapture/internal/repository"
	"github.com/andressep95/leadcapture/internal/repository/cache"
	"github.com/andressep95/leadcapture/internal/repository/postgres"
	"github.com/andressep95/leadcapture/internal/service"
	"github.com/andressep95/leadcapture/pkg/blacklist"
	"github.com/andressep95/leadcapture/pkg/email"
	"github.com/andressep95/leadcapture/pkg/jwt"
	"github.com/andressep95/leadcapture/pkg/logger"
	"github.com/andressep95/leadcapture/pkg/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	// Initialize database connection
	db, err := initDB(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.WithError(err).Warn("Error closing database connection")
		}
	}()
	log.Info("Database connection established")

	if cfg.Database.AutoMigrate {
		migrateCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err := migration.Run(migrateCtx, db, log)
		cancel()
		if err != nil {
			log.WithError(err).Fatal("Failed to apply migrations")
		}
	}

	// Initialize Redis client
	redisClient, err := initRedis(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize Redis")
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.WithError(err).Warn("Error closing Redis connection")
		}
	}()
	log.Info("Redis connection established")

	// Load RSA keys for session tokens
	privateKey, publicKey, err := loadRSAKeys(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to load RSA keys")
	}

	tokenService, err := jwt.NewTokenService(privateKey, publicKey, cfg.JWT.SessionExpiry, cfg.JWT.Issuer)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize token service")
	}

	// Activation events are optional
	var publisher service.TradeshowEventPublisher
	if cfg.NATS.URL != "" {
		natsPublisher, err := events.NewPublisher(cfg.NATS.URL, cfg.NATS.Subject, log)
		if err != nil {
			log.WithError(err).Warn("NATS unavailable, tradeshow events disabled")
		} else {
			defer natsPublisher.Close()
			publisher = natsPublisher
			log.WithField("url", cfg.NATS.URL).Info("Tradeshow events publishing to NATS")
		}
	} else {
		log.Info("Tradeshow events disabled (set NATS_URL to enable)")
	}

	// Lead notification email is optional
	var notifier email.LeadNotifier
	if cfg.Email.Enabled {
		resendNotifier, err := email.NewResendNotifier(&email.EmailConfig{
			APIKey:       cfg.Email.APIKey,
			FromEmail:    cfg.Email.FromEmail,
			FromName:     cfg.Email.FromName,
			DashboardURL: cfg.Email.DashboardURL,
		}, log)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize email service, lead notifications disabled")
		} else {
			notifier = resendNotifier
			log.Info("Lead notifications enabled (Resend)")
		}
	} else {
		log.Info("Lead notifications disabled (set EMAIL_ENABLED=true to enable)")
	}

	validate := validator.NewValidator()

	// Initialize repositories
	var tenantRepo repository.TenantRepository = postgres.NewTenantRepository(db)
	if cfg.Tenant.CacheTTL > 0 {
		tenantRepo = cache.NewTenantRepository(tenantRepo, redisClient, cfg.Tenant.CacheTTL, log)
	}
	userRepo := postgres.NewUserRepository(db)
	tradeshowRepo := postgres.NewTradeshowRepository(db)
	submissionRepo := postgres.NewSubmissionRepository(db)
	pageViewRepo := postgres.NewPageViewRepository(db)

	// Initialize services
	tenantService := service.NewTenantService(tenantRepo, log)
	authService := service.NewAuthService(userRepo, tenantRepo, tokenService, blacklist.NewTokenBlacklist(redisClient), log)
	tradeshowService := service.NewTradeshowService(tradeshowRepo, submissionRepo, publisher, log)
	repService := service.NewRepService(userRepo)
	submissionService := service.NewSubmissionService(submissionRepo, tradeshowRepo, userRepo, notifier, log)
	analyticsService := service.NewAnalyticsService(pageViewRepo, submissionRepo)

	// Initialize handlers
	handlers := handler.Handlers{
		Tenant:     handler.NewTenantHandler(tenantService, log),
		Auth:       handler.NewAuthHandler(authService, validate, handler.SessionCookie{Name: cfg.JWT.CookieName, Secure: cfg.JWT.CookieSecure}, log),
		Tradeshow:  handler.NewTradeshowHandler(tradeshowService, log),
		Rep:        handler.NewRepHandler(repService, log),
		Photo:      handler.NewPhotoHandler(submissionService, log),
		Submission: handler.NewSubmissionHandler(submissionService, validate, log),
		Analytics:  handler.NewAnalyticsHandler(analyticsService, validate, log),
		Dashboard:  handler.NewDashboardHandler(),
		Health: handler.NewHealthHandler(map[string]handler.HealthCheck{
			"database": db.PingContext,
			"cache": func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		}, log),
		JWKS: handler.NewJWKSHandler(tokenService.PublicKey(), tokenService.KeyID()),
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:               "leadcapture",
		DisableStartupMessage: cfg.Server.IsProduction(),
		ErrorHandler:          handler.ErrorHandler(log),
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		BodyLimit:             cfg.Server.BodyLimit,
	})

	// Setup global middlewares
	app.Use(middleware.RecoveryMiddleware(log))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))
	app.Use(middleware.MetricsMiddleware())
	app.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))
	app.Use(middleware.TenantMiddleware(tenantService, cfg.Tenant.BaseDomain))

	handler.SetupRoutes(app, handlers, middleware.SessionMiddleware(authService, cfg.JWT.CookieName, log))

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		log.WithFields(logrus.Fields{
			"addr":        addr,
			"environment": cfg.Server.Environment,
		}).Info("Server starting")
		if err := app.Listen(addr); err != nil {
			log.WithError(err).Error("Server failed to start")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	log.Info("Server stopped")
}

// initDB initializes PostgreSQL database connection with retry logic
func initDB(cfg *config.Config, log *logrus.Logger) (*sqlx.DB, error) {
	dsn := cfg.Database.DSN()

	var db *sqlx.DB
	var err error

	maxRetries := 5
	retryInterval := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			break
		}

		log.WithError(err).Warnf("Failed to connect to database (attempt %d/%d)", i+1, maxRetries)
		if i < maxRetries-1 {
			time.Sleep(retryInterval)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// initRedis initializes Redis client and verifies connection
func initRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}

// loadRSAKeys loads RSA private and public keys from files
func loadRSAKeys(cfg *config.Config) ([]byte, []byte, error) {
	privateKey, err := os.ReadFile(cfg.JWT.PrivateKeyPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read private key file: %w", err)
	}

	publicKey, err := os.ReadFile(cfg.JWT.PublicKeyPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read public key file: %w", err)
	}

	if len(privateKey) == 0 {
		return nil, nil, fmt.Errorf("private key file is empty")
	}

	if len(publicKey) == 0 {
		return nil, nil, fmt.Errorf("public key file is empty")
	}

	return privateKey, publicKey, nil
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"jobboard.backend/internal/config"
	"jobboard.backend/internal/infrastructure/jobs"
	"jobboard.backend/internal/infrastructure/notifier"
	"jobboard.backend/internal/infrastructure/repositories"
	"jobboard.backend/internal/interfaces/http/handlers"
	"jobboard.backend/internal/usecases"
	"jobboard.backend/pkg/jwt"
	"jobboard.backend/pkg/logger"
	"jobboard.backend/pkg/redis"
	"jobboard.backend/pkg/validation"
)

const shutdownTimeout = 10 * time.Second

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt:    false,
			TranslateError: true,
		})
	}
	migrate        = repositories.AutoMigrate
	newRedisClient = redis.NewClient
	runServer      = func(srv *http.Server) error { return srv.ListenAndServe() }
	getStdDB       = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	initLog(logger.Options{Env: cfg.Server.Env, File: cfg.Log.File})
	defer logger.Sync()
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info(context.Background(), "Database ready")

	jwtService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)
	if err != nil {
		return fmt.Errorf("failed to initialize jwt service: %w", err)
	}

	authOpts := []usecases.AuthOption{usecases.WithOTPTTL(cfg.OTP.TTL)}
	if cfg.Redis.URL != "" {
		client, err := newRedisClient(cfg.Redis.URL, cfg.Redis.Password)
		if err != nil {
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		defer client.Close()
		authOpts = append(authOpts, usecases.WithAttemptLimiter(newOTPLimiter(client, cfg.OTP)))
		logger.Info(context.Background(), "Redis initialized, OTP attempt limiting enabled")
	} else {
		logger.Warn(context.Background(), "REDIS_URL not set, OTP attempt limiting disabled")
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService, newNotifier(cfg.SMTP, cfg.OTP.TTL), authOpts...)
	authGate := usecases.NewAuthGate(userRepo, jwtService)
	adminUsecase := usecases.NewAdminUsecase(userRepo)
	jobUsecase := usecases.NewJobUsecase(jobRepo, applicationRepo, uow)

	validation.RegisterJSONTagNames()

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	expiryJob := jobs.NewJobExpiryJob(jobRepo, cfg.Jobs.ExpiryInterval)
	go expiryJob.Start(ctx)

	r := newRouter(cfg.Server.AllowedOrigins, routeDeps{
		authHandler:  handlers.NewAuthHandler(authUsecase, cfg.Server.CookieSecure),
		adminHandler: handlers.NewAdminHandler(adminUsecase),
		jobHandler:   handlers.NewJobHandler(jobUsecase),
		gate:         authGate,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(context.Background(), "Shutting down server")
		expiryJob.Stop()
		cancel()

		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(context.Background(), "Graceful shutdown failed", zap.Error(err))
		}
	}()

	logger.Info(context.Background(), "Job board backend starting",
		zap.String("port", cfg.Server.Port),
		zap.Int("routes", len(r.Routes())),
	)

	if err := runServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func newOTPLimiter(client *goredis.Client, cfg config.OTPConfig) *redis.FixedWindowLimiter {
	return redis.NewFixedWindowLimiter(client, "otp", cfg.MaxAttempts, cfg.Window)
}

// newNotifier falls back to logging codes when no SMTP host is configured
func newNotifier(cfg config.SMTPConfig, codeTTL time.Duration) notifier.OTPNotifier {
	if cfg.Host == "" {
		return notifier.NewLogNotifier()
	}
	return notifier.NewSMTPNotifier(notifier.SMTPConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		User:     cfg.User,
		Password: cfg.Password,
		From:     cfg.From,
		CodeTTL:  codeTTL,
	})
}

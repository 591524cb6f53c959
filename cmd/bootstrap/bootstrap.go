package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-backoffice/config"
	deliveryHttp "clinic-backoffice/internal/delivery/http"
	"clinic-backoffice/internal/delivery/http/handler"
	"clinic-backoffice/internal/delivery/http/middleware"
	"clinic-backoffice/internal/infrastructure/cache"
	"clinic-backoffice/internal/infrastructure/database"
	"clinic-backoffice/internal/repository"
	"clinic-backoffice/internal/service"
	"clinic-backoffice/internal/usecase"
	"clinic-backoffice/pkg/jwt"
	"clinic-backoffice/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	SetupLogger(cfg.App)
	logrus.Info("Configuration loaded successfully")

	if cfg.DB.AutoMigrate {
		if err := database.MigrateUp(cfg.DB); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		logrus.Info("Database migrations applied")
	}

	// Initialize database
	logLevel := logger.Warn
	if cfg.App.IsDevelopment() {
		logLevel = logger.Info
	}
	db, err := database.NewPostgresConnection(cfg.DB, logLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	app.Server = initializeServer(cfg, db, redisClient)

	return app, nil
}

// SetupLogger configures the standard logrus logger shared by every layer
func SetupLogger(cfg config.AppConfig) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	if cfg.IsDevelopment() {
		logrus.SetLevel(logrus.DebugLevel)
		return
	}
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	log := logrus.StandardLogger()

	// Initialize services
	jwtService := jwt.NewJWTService(cfg.Session)
	sessionService := service.NewSessionService(jwtService, redisClient, log)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	patientRepo := repository.NewPatientRepository()
	chatRepo := repository.NewOperatorChatRepository()
	messageRepo := repository.NewChatMessageRepository()
	feedbackRepo := repository.NewFeedbackRepository()
	letterRepo := repository.NewLetterRepository()
	categoryRepo := repository.NewCategoryRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, patientRepo, sessionService, int64(cfg.Session.TTL.Seconds()))
	operatorChatUsecase := usecase.NewOperatorChatUsecase(db, log, chatRepo, messageRepo, patientRepo, auditService)
	patientChatUsecase := usecase.NewPatientChatUsecase(db, log, chatRepo, messageRepo, patientRepo)
	unreadCountUsecase := usecase.NewUnreadCountUsecase(db, log, feedbackRepo, letterRepo, chatRepo)
	letterUsecase := usecase.NewLetterUsecase(db, log, letterRepo, auditService)
	feedbackUsecase := usecase.NewFeedbackUsecase(db, log, feedbackRepo, auditService)
	categoryUsecase := usecase.NewCategoryUsecase(db, log, categoryRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, cfg.Session)
	operatorChatHandler := handler.NewOperatorChatHandler(operatorChatUsecase, customValidator, log)
	patientChatHandler := handler.NewPatientChatHandler(patientChatUsecase, customValidator)
	adminHandler := handler.NewAdminHandler(unreadCountUsecase, letterUsecase, feedbackUsecase)
	categoryHandler := handler.NewCategoryHandler(categoryUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(sessionService, cfg.Session.CookieName)
	roleMiddleware := middleware.NewRoleMiddleware(authUsecase, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		operatorChatHandler,
		patientChatHandler,
		adminHandler,
		categoryHandler,
		auditLogHandler,
		authMiddleware,
		roleMiddleware,
		corsMiddleware,
	)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}

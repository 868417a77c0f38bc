package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-management-backend/config"
	deliveryHttp "hospital-management-backend/internal/delivery/http"
	"hospital-management-backend/internal/delivery/http/handler"
	"hospital-management-backend/internal/delivery/http/middleware"
	"hospital-management-backend/internal/infrastructure/cache"
	"hospital-management-backend/internal/infrastructure/database"
	"hospital-management-backend/internal/infrastructure/storage"
	"hospital-management-backend/internal/repository"
	"hospital-management-backend/internal/service"
	"hospital-management-backend/internal/usecase"
	"hospital-management-backend/pkg/jwt"
	"hospital-management-backend/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
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

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Run schema migrations
	if err := database.RunMigrations(database.URL(cfg.DB)); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logrus.Info("Database migrations applied")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize image store
	imageStore, err := storage.NewCloudinaryStore(cfg.Cloudinary)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize image store: %w", err)
	}
	logrus.Info("Image store initialized")

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient, imageStore)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, imageStore storage.ImageStore) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	// Initialize services
	avatarService := service.NewAvatarService(imageStore, log)
	auditService := service.NewAuditService(log, auditLogRepo)
	doctorCache := service.NewDoctorCacheService(redisClient, log)

	// Initialize usecases
	userUsecase := usecase.NewUserUsecase(log, userRepo, jwtService, avatarService, doctorCache, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, appointmentRepo, userRepo, auditService)
	messageUsecase := usecase.NewMessageUsecase(log, messageRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, auditLogRepo)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userUsecase, customValidator, jwtService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	messageHandler := handler.NewMessageHandler(messageUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, userRepo, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.CORS)
	metricsMiddleware := middleware.NewMetricsMiddleware(prometheus.DefaultRegisterer)

	// Initialize router
	router := deliveryHttp.NewRouter(
		userHandler,
		appointmentHandler,
		messageHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
		metricsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
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

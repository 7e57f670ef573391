package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-scheduling-api/config"
	deliveryHttp "clinic-scheduling-api/internal/delivery/http"
	"clinic-scheduling-api/internal/delivery/http/handler"
	"clinic-scheduling-api/internal/delivery/http/middleware"
	"clinic-scheduling-api/internal/infrastructure/cache"
	"clinic-scheduling-api/internal/infrastructure/database"
	"clinic-scheduling-api/internal/repository"
	"clinic-scheduling-api/internal/scheduling"
	"clinic-scheduling-api/internal/service"
	"clinic-scheduling-api/internal/usecase"
	"clinic-scheduling-api/pkg/jwt"
	"clinic-scheduling-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const defaultMigrationsPath = "db/migrations"

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

	// Apply schema migrations before opening the pool
	if _, err := os.Stat(defaultMigrationsPath); err == nil {
		if err := database.RunMigrations(cfg.DB, defaultMigrationsPath); err != nil {
			return nil, err
		}
	} else {
		logrus.Warnf("Migrations directory %s not found, skipping migrations", defaultMigrationsPath)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient)
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
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	doctorRepo := repository.NewDoctorRepository(db)
	patientRepo := repository.NewPatientProfileRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	windowRepo := repository.NewAvailabilityWindowRepository(db)
	slotRepo := repository.NewAppointmentSlotRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	// Initialize services
	auditService := service.NewAuditService(db, log, auditLogRepo)
	slotCache := service.NewSlotCacheService(redisClient, log)

	// Slot computation engine
	engine := scheduling.NewEngine(cfg.Scheduling.SlotDurationMinutes, scheduling.SystemClock())

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, doctorRepo, patientRepo, auditService, jwtService, redisClient)
	doctorUsecase := usecase.NewDoctorUsecase(log, doctorRepo)
	slotUsecase := usecase.NewSlotUsecase(log, engine, doctorRepo, windowRepo, slotRepo, appointmentRepo, slotCache)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, cfg.Scheduling, scheduling.SystemClock(),
		appointmentRepo, doctorRepo, patientRepo, slotRepo, auditService, slotCache)
	availabilityUsecase := usecase.NewAvailabilityUsecase(log, doctorRepo, windowRepo, auditService, slotCache)
	slotAdminUsecase := usecase.NewAppointmentSlotUsecase(log, slotRepo, doctorRepo, auditService, slotCache)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase)
	slotHandler := handler.NewSlotHandler(slotUsecase)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityUsecase, customValidator)
	slotAdminHandler := handler.NewAppointmentSlotHandler(slotAdminUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		doctorHandler,
		slotHandler,
		appointmentHandler,
		availabilityHandler,
		slotAdminHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
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
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}

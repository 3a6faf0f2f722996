package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doctor-directory/config"
	deliveryHttp "doctor-directory/internal/delivery/http"
	"doctor-directory/internal/delivery/http/handler"
	"doctor-directory/internal/delivery/http/middleware"
	"doctor-directory/internal/delivery/http/view"
	domainRepo "doctor-directory/internal/domain/repository"
	"doctor-directory/internal/infrastructure/cache"
	"doctor-directory/internal/repository"
	"doctor-directory/internal/service"
	"doctor-directory/internal/usecase"
	"doctor-directory/pkg/jwt"
	"doctor-directory/pkg/validator"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	RedisClient *redis.Client
	Sessions    *service.SessionRegistry[*usecase.DirectoryView]
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

	// Setup logger
	SetupLogger(cfg.App.LogLevel)
	logrus.Info("Configuration loaded successfully")

	if cfg.Session.Secret == "" {
		cfg.Session.Secret = uuid.New().String()
		logrus.Warn("SESSION_SECRET is not set, using a random secret; sessions will not survive a restart")
	}

	// Initialize Redis (optional)
	if cfg.Redis.Enabled() {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		logrus.Info("Redis connected successfully")
	}

	// Initialize all layers
	server, sessions, err := initializeServer(cfg, app.RedisClient)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Server = server
	app.Sessions = sessions

	return app, nil
}

// SetupLogger configures the logrus logger
func SetupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

// NewDoctorSource picks the HTTP source, wrapped in the Redis cache when one is available.
func NewDoctorSource(cfg *config.Config, redisClient *redis.Client, log *logrus.Logger) domainRepo.DoctorSource {
	if redisClient != nil && cfg.Directory.CacheTTL > 0 {
		log.Infof("Caching doctor directory in Redis for %s", cfg.Directory.CacheTTL)
		return repository.NewCachedDoctorSource(
			cfg.Directory.SourceURL,
			cfg.Directory.FetchTimeout,
			repository.NewRedisDoctorCache(redisClient),
			cfg.Directory.CacheTTL,
			log,
		)
	}
	return repository.NewHTTPDoctorSource(cfg.Directory.SourceURL, cfg.Directory.FetchTimeout)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, redisClient *redis.Client) (*http.Server, *service.SessionRegistry[*usecase.DirectoryView], error) {
	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.Session)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize renderer
	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	// Initialize repositories
	doctorSource := NewDoctorSource(cfg, redisClient, log)

	// Initialize services
	sessions := service.NewSessionRegistry[*usecase.DirectoryView](cfg.Session.IdleTTL, cfg.Session.IdleTTL/2, log)

	// Initialize usecases
	directoryUsecase := usecase.NewDirectoryUsecase(log, doctorSource, sessions)

	// Initialize handlers
	directoryHandler := handler.NewDirectoryHandler(directoryUsecase, customValidator, renderer, log)

	// Initialize middleware
	sessionMiddleware := middleware.NewSessionMiddleware(jwtService, log)
	loggerMiddleware := middleware.NewLoggerMiddleware(log)
	recoveryMiddleware := middleware.NewRecoveryMiddleware(log)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(directoryHandler, sessionMiddleware, loggerMiddleware, recoveryMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}, sessions, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		logrus.Infof("Doctor directory source: %s", app.Config.Directory.SourceURL)
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

// Close stops the session registry and closes the Redis connection
func (app *App) Close() {
	// Dispose open directory views
	if app.Sessions != nil {
		app.Sessions.Stop()
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}

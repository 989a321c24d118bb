package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-directory/config"
	deliveryHttp "hospital-directory/internal/delivery/http"
	"hospital-directory/internal/delivery/http/handler"
	"hospital-directory/internal/delivery/http/middleware"
	domainRepo "hospital-directory/internal/domain/repository"
	"hospital-directory/internal/infrastructure/cache"
	"hospital-directory/internal/infrastructure/database"
	"hospital-directory/internal/infrastructure/identity"
	"hospital-directory/internal/repository"
	"hospital-directory/internal/service"
	"hospital-directory/internal/usecase"
	"hospital-directory/pkg/jwt"
	"hospital-directory/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
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

	// Load configuration
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	setupLogger(cfg.App.LogLevel)
	logrus.Info("Configuration loaded successfully")

	// Apply schema migrations before opening the pool
	if err := database.Migrate(cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis, logrus.StandardLogger())
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	directory, err := newRoleDirectory(cfg.Identity, db)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize role directory: %w", err)
	}
	logrus.Infof("Role directory driver: %s", cfg.Identity.Driver)

	// Initialize all layers
	server, err := initializeServer(context.Background(), cfg, db, redisClient, directory)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Unknown log level %q, using info", level)
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

func newRoleDirectory(cfg config.IdentityConfig, db *gorm.DB) (domainRepo.RoleDirectory, error) {
	if cfg.Driver == config.IdentityDriverFirebase {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return identity.NewFirebaseRoleDirectory(ctx, cfg.FirebaseCredentialsFile)
	}
	return repository.NewPostgresRoleDirectory(db), nil
}

// initializeServer creates and configures the HTTP server
func initializeServer(ctx context.Context, cfg *config.Config, db *gorm.DB, redisClient *redis.Client, directory domainRepo.RoleDirectory) (*http.Server, error) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	recordStore := repository.NewCSVRecordStore(afero.NewOsFs(), cfg.Dataset.Dir, log)
	userRepo := repository.NewUserRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	// Initialize services
	tokenStore := service.NewRedisTokenStore(redisClient)
	auditService := service.NewAuditService(log, auditLogRepo)

	// Grant the configured first admins before serving traffic
	admins := usecase.NewAdminBootstrap(log, directory, auditService, cfg.Identity.BootstrapAdminExternalIDs)
	bootCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := admins.Apply(bootCtx); err != nil {
		return nil, fmt.Errorf("failed to apply bootstrap admins: %w", err)
	}

	// Initialize usecases
	searchUsecase := usecase.NewSearchUsecase(log, recordStore)
	authUsecase := usecase.NewAuthUsecase(log, userRepo, directory, jwtService, tokenStore, auditService, admins)
	roleUsecase := usecase.NewRoleUsecase(log, userRepo, directory, tokenStore, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, auditLogRepo)

	// Initialize handlers
	searchHandler := handler.NewSearchHandler(searchUsecase)
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	roleHandler := handler.NewRoleHandler(roleUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokenStore)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSAllowedOrigins)

	// Initialize router
	router := deliveryHttp.NewRouter(searchHandler, authHandler, roleHandler, auditLogHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		logrus.Infof("Dataset directory: %s", app.Config.Dataset.Dir)
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

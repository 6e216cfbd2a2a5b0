package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/csecl/interviewhub/internal/app/controllers"
	appMigrations "github.com/csecl/interviewhub/internal/app/migrations"
	appRepos "github.com/csecl/interviewhub/internal/app/repositories"
	"github.com/csecl/interviewhub/internal/app/repositories/inmemory"
	pgRepos "github.com/csecl/interviewhub/internal/app/repositories/postgres"
	appRoutes "github.com/csecl/interviewhub/internal/app/routes"
	appServices "github.com/csecl/interviewhub/internal/app/services"
	"github.com/csecl/interviewhub/internal/config"
	"github.com/csecl/interviewhub/internal/db"
	appMiddleware "github.com/csecl/interviewhub/internal/middleware"
	"github.com/csecl/interviewhub/internal/pkg/logger"
	"github.com/csecl/interviewhub/internal/pkg/metrics"
	"github.com/csecl/interviewhub/internal/pkg/resultgate"
	"github.com/csecl/interviewhub/internal/pkg/validation"
	"github.com/csecl/interviewhub/internal/pkg/websocket"
	"github.com/csecl/interviewhub/internal/seed"
)

// Storage is the selected persistence backend
type Storage struct {
	Repos *appRepos.Repositories
	Gate  resultgate.Gate
	// Pool is nil for the in-memory backend.
	Pool *pgxpool.Pool
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	Storage        *Storage
	Services       *appServices.Services
	Hub            *websocket.Hub
	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    appRoutes.Controllers
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// CONFIG_PATH overrides the default configs/config.yaml.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join("configs", "config.yaml")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := logger.Get()
	lgr.Info().
		Str("logLevel", string(logLevel)).
		Str("logFormat", cfg.Logging.Format).
		Str("storage", cfg.Storage.Driver).
		Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStorage opens the configured backend. For postgres it connects, runs the
// migrations and wires the SQL repositories; otherwise everything lives in memory.
func SetupStorage(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Storage, error) {
	if !cfg.UsesPostgres() {
		lgr.Warn().Msg("Using in-memory storage; data is lost on restart")
		return &Storage{
			Repos: inmemory.NewRepositories(),
			Gate:  resultgate.NewMemoryGate(),
		}, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	pool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	migrateCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	if err := appMigrations.NewMigrator(pool, logger.Component("migrations")).Up(migrateCtx); err != nil {
		pool.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	return &Storage{
		Repos: pgRepos.NewRepositories(pool),
		Gate:  resultgate.NewPostgresGate(pool),
		Pool:  pool,
	}, nil
}

// Close releases the storage backend.
func (s *Storage) Close() {
	if s != nil && s.Pool != nil {
		s.Pool.Close()
	}
}

// Ping checks the storage backend.
func (s *Storage) Ping(ctx context.Context) error {
	if s.Pool == nil {
		return nil
	}
	return s.Pool.Ping(ctx)
}

// BuildDependencies initializes services, the notification hub and controllers.
func BuildDependencies(cfg *config.Config, storage *Storage, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Storage: storage, Logger: lgr}

	deps.Hub = websocket.NewHub(logger.Component("websocket"))

	svcs, err := appServices.NewServices(cfg, storage.Repos, storage.Gate, deps.Hub, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	deps.Services = svcs

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(svcs.AdminAuth)

	deps.Controllers = appRoutes.Controllers{
		Forum:         appControllers.NewForumController(svcs.Engagement, logger.Component("forum")),
		Notifications: appControllers.NewNotificationController(svcs.Notifications, logger.Component("notifications")),
		Applications:  appControllers.NewApplicationController(svcs.Applications, svcs.Results, logger.Component("applications")),
		Admin:         appControllers.NewAdminController(svcs.AdminAuth, svcs.Results, svcs.Notifications, logger.Component("admin")),
		WebSocket:     websocket.NewHandler(deps.Hub, logger.Component("websocket")),
	}

	if cfg.Forum.SeedWelcome {
		if err := seed.CreateDefaultData(context.Background(), storage.Repos, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	validation.RegisterBindingValidators()

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(logger.Component("http")))
	if cfg.Metrics.Enabled {
		router.Use(appMiddleware.Metrics())
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, appRoutes.Options{
		IssueUserIDs: cfg.Forum.IssueUserIDs,
	})

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})
	router.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := deps.Storage.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "websocketClients": deps.Hub.TotalClients()})
	})

	return router
}

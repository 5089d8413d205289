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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/elevatehq/elevate-backend/internal/app/controllers"
	appMigrations "github.com/elevatehq/elevate-backend/internal/app/migrations"
	appRepos "github.com/elevatehq/elevate-backend/internal/app/repositories"
	appRoutes "github.com/elevatehq/elevate-backend/internal/app/routes"
	appServices "github.com/elevatehq/elevate-backend/internal/app/services"
	"github.com/elevatehq/elevate-backend/internal/config"
	"github.com/elevatehq/elevate-backend/internal/db"
	appMiddleware "github.com/elevatehq/elevate-backend/internal/middleware"
	pkgAuth "github.com/elevatehq/elevate-backend/internal/pkg/auth"
	"github.com/elevatehq/elevate-backend/internal/pkg/events"
	"github.com/elevatehq/elevate-backend/internal/pkg/logger"
	"github.com/elevatehq/elevate-backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	OrganizationService *appServices.OrganizationService
	UserService         *appServices.UserService
	CourseService       *appServices.CourseService
	ProjectService      *appServices.ProjectService

	AuthController         *appControllers.AuthController
	OrganizationController *appControllers.OrganizationController
	CourseController       *appControllers.CourseController
	ProjectController      *appControllers.ProjectController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	Publisher      events.Publisher
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database, lgr); err != nil {
		// Startup continues; the platform works without seed data
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		Secret:                 cfg.JWT.Secret,
		AccessTokenExpiration:  cfg.AccessTokenTTL(),
		RefreshTokenExpiration: cfg.RefreshTokenTTL(),
		Issuer:                 cfg.JWT.Issuer,
	})

	deps.Publisher = events.NewLogPublisher(lgr)

	deps.OrganizationService = appServices.NewOrganizationService(deps.Repos.OrganizationRepository)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository)
	deps.CourseService = appServices.NewCourseService(
		deps.Repos.CourseRepository,
		deps.Repos.InstructorRepository,
		deps.Repos.EnrollmentRepository,
		deps.Publisher,
	)
	deps.ProjectService = appServices.NewProjectService(
		deps.Repos.ProjectRepository,
		deps.Repos.InstructorRepository,
		cfg,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.UserService, deps.JWTService, cfg.AccessTokenTTL())
	deps.OrganizationController = appControllers.NewOrganizationController(deps.OrganizationService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.ProjectController = appControllers.NewProjectController(deps.ProjectService)

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

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), appMiddleware.Recovery())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.OrganizationController,
		deps.CourseController,
		deps.ProjectController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}

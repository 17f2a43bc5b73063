package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/sportfit/internal/app/auth"
	appControllers "github.com/yigit/sportfit/internal/app/controllers"
	appMigrations "github.com/yigit/sportfit/internal/app/migrations"
	appRepos "github.com/yigit/sportfit/internal/app/repositories"
	appRoutes "github.com/yigit/sportfit/internal/app/routes"
	appServices "github.com/yigit/sportfit/internal/app/services"
	"github.com/yigit/sportfit/internal/config"
	"github.com/yigit/sportfit/internal/db"
	appMiddleware "github.com/yigit/sportfit/internal/middleware"
	pkgAuth "github.com/yigit/sportfit/internal/pkg/auth"
	"github.com/yigit/sportfit/internal/pkg/helpers"
	"github.com/yigit/sportfit/internal/pkg/logger"
	"github.com/yigit/sportfit/internal/pkg/payment"
	"github.com/yigit/sportfit/internal/pkg/scheduler"
	"github.com/yigit/sportfit/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos *appRepos.Repositories

	JWTService *pkgAuth.JWTService
	Guard      *appAuth.Guard
	Processor  payment.Processor
	Scheduler  *scheduler.Scheduler

	AuthService       appServices.AuthService
	UserService       appServices.UserService
	InstructorService appServices.InstructorService
	ClassService      appServices.ClassService
	SelectionService  appServices.SelectionService
	PaymentService    appServices.PaymentService
	EnrollmentService appServices.EnrollmentService
	SeatReconciler    *appServices.SeatReconciler

	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    appRoutes.Controllers

	Logger zerolog.Logger
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

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds the admin user.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelMigrate()
	migrator := appMigrations.NewMigrator(dbPool, lgr)
	if err := migrator.MigrateFromDirectory(migrateCtx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(migrateCtx, appRepos.NewUserRepository(dbPool), cfg.Seed.AdminEmail, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	deps.Guard = appAuth.NewGuard(deps.JWTService, deps.Repos.UserRepository, lgr)

	processor, err := payment.NewProcessor(payment.Config{
		Provider:   cfg.Payment.Provider,
		SecretKey:  cfg.Payment.SecretKey,
		BaseURL:    cfg.Payment.BaseURL,
		Production: cfg.Payment.Production,
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize payment processor")
		return nil, fmt.Errorf("failed to initialize payment processor: %w", err)
	}
	deps.Processor = processor
	lgr.Info().Str("provider", processor.Name()).Msg("Payment processor configured")

	// Services
	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService, lgr)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, deps.Repos.InstructorRepository, lgr)
	deps.InstructorService = appServices.NewInstructorService(deps.Repos.InstructorRepository)
	deps.ClassService = appServices.NewClassService(
		deps.Repos.ClassRepository,
		appServices.ClassLifecycle{AllowReversal: cfg.Classes.AllowDecisionReversal},
		lgr,
	)
	deps.SelectionService = appServices.NewSelectionService(deps.Repos.SelectionRepository, deps.Repos.ClassRepository, lgr)
	deps.PaymentService = appServices.NewPaymentService(
		deps.Processor,
		deps.Repos.PaymentRepository,
		appServices.PaymentOptions{Currency: cfg.Payment.Currency, Method: cfg.Payment.Method},
		lgr,
	)
	deps.EnrollmentService = appServices.NewEnrollmentService(deps.Repos.EnrollmentRepository, lgr)
	deps.SeatReconciler = appServices.NewSeatReconciler(deps.Repos.ClassRepository, lgr)

	// Background jobs
	deps.Scheduler = scheduler.New(logger.Component("scheduler"), helpers.ParseDuration(cfg.Scheduler.JobTimeout, 5*time.Minute))
	if err := deps.Scheduler.Register("seat_reconcile", cfg.Scheduler.ReconcileCron, deps.SeatReconciler.Run); err != nil {
		lgr.Error().Err(err).Msg("Failed to schedule seat reconciliation")
		return nil, err
	}

	// HTTP
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Guard)
	deps.Controllers = appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(deps.AuthService),
		User:       appControllers.NewUserController(deps.UserService),
		Instructor: appControllers.NewInstructorController(deps.InstructorService),
		Class:      appControllers.NewClassController(deps.ClassService),
		Selection:  appControllers.NewSelectionController(deps.SelectionService),
		Payment:    appControllers.NewPaymentController(deps.PaymentService, deps.EnrollmentService),
		Health:     appControllers.NewHealthController(dbPool),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(logger.Component("http")))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}

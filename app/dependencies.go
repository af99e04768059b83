package app

import (
	"context"
	"fmt"

	"github.com/upb/healthedu-backend/auth"
	"github.com/upb/healthedu-backend/config"
	"github.com/upb/healthedu-backend/handlers"
	"github.com/upb/healthedu-backend/middleware"
	"github.com/upb/healthedu-backend/repositories"
	"github.com/upb/healthedu-backend/repositories/postgres"
	"github.com/upb/healthedu-backend/services"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection; nothing in the
// application reaches for a package-level database handle.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Users     repositories.UserRepository
	Articles  repositories.ArticleRepository
	Videos    repositories.VideoRepository
	Tips      repositories.TipRepository
	Contacts  repositories.ContactRepository
	TxManager repositories.TransactionManager

	// Credentials
	Tokens *auth.TokenManager
	Hasher *auth.BcryptHasher

	// Services
	AuthService    *services.AuthService
	UserService    *services.UserService
	ContactService *services.ContactService

	// Middleware
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter

	// Handlers
	AuthHandler    *auth.Handler
	ArticleHandler *handlers.ArticleHandler
	VideoHandler   *handlers.VideoHandler
	TipHandler     *handlers.TipHandler
	ContactHandler *handlers.ContactHandler
	HealthHandler  *handlers.HealthHandler
}

// NewDependencies opens the database, applies migrations when enabled and
// wires up all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	factory, err := postgres.NewRepositoryFactory(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := factory.Migrate(ctx); err != nil {
			_ = factory.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	deps, err := wire(cfg, factory, logger)
	if err != nil {
		_ = factory.Close()
		return nil, err
	}

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// NewDependenciesFromDB wires all application dependencies over an already
// opened pool. It neither pings nor migrates.
func NewDependenciesFromDB(cfg *config.Config, db *postgres.DB, logger *zap.Logger) (*Dependencies, error) {
	return wire(cfg, postgres.NewRepositoryFactoryFromDB(db, logger), logger)
}

func wire(cfg *config.Config, factory *postgres.RepositoryFactory, logger *zap.Logger) (*Dependencies, error) {
	d := &Dependencies{
		Config:      cfg,
		Logger:      logger,
		RepoFactory: factory,
		DB:          factory.GetDB(),
	}

	d.initRepositories()

	if err := d.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	d.initHandlers()

	return d, nil
}

// initRepositories initializes all repository instances
func (d *Dependencies) initRepositories() {
	repos := d.RepoFactory.NewRepositories()

	d.Users = repos.Users
	d.Articles = repos.Articles
	d.Videos = repos.Videos
	d.Tips = repos.Tips
	d.Contacts = repos.Contacts
	d.TxManager = d.RepoFactory.GetTransactionManager()
}

// initServices builds credential handling, domain services and middleware
func (d *Dependencies) initServices() error {
	d.Tokens = auth.NewTokenManager(d.Config.Auth)
	d.Hasher = auth.NewBcryptHasher(d.Config.Auth.BcryptCost)

	authService, err := services.NewAuthService(d.Users, d.Hasher, d.Tokens, d.Logger)
	if err != nil {
		return err
	}
	d.AuthService = authService
	d.UserService = services.NewUserService(d.Users, d.TxManager, d.Hasher, d.Logger)

	notifier := services.NewContactNotifier(d.Config.Notification, d.Logger)
	d.ContactService = services.NewContactService(d.Contacts, notifier, d.Logger)

	d.AuthMiddleware = middleware.NewAuthMiddleware(d.Tokens, d.Users, d.Logger)
	d.RateLimiter = middleware.NewRateLimiter(d.Config.RateLimit.RequestsPerSecond, d.Config.RateLimit.Burst, d.Logger)

	return nil
}

// initHandlers builds the HTTP handlers
func (d *Dependencies) initHandlers() {
	d.AuthHandler = auth.NewHandler(d.AuthService, d.Logger)
	d.ArticleHandler = handlers.NewArticleHandler(d.Articles, d.TxManager, d.Logger)
	d.VideoHandler = handlers.NewVideoHandler(d.Videos, d.TxManager, d.Logger)
	d.TipHandler = handlers.NewTipHandler(d.Tips, d.TxManager, d.Logger)
	d.ContactHandler = handlers.NewContactHandler(d.ContactService, d.Logger)
	d.HealthHandler = handlers.NewHealthHandler(d.DB, d.Logger)
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	_ = d.Logger.Sync()

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}

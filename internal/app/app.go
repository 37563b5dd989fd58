package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/brainbox/internal/config"
	"github.com/templui/brainbox/internal/db"
	"github.com/templui/brainbox/internal/markdown"
	"github.com/templui/brainbox/internal/repository"
	"github.com/templui/brainbox/internal/service"
	"github.com/templui/brainbox/internal/storage"
)

type App struct {
	Cfg            *config.Config
	DB             *sqlx.DB
	TokenService   *service.TokenService
	AuthService    *service.AuthService
	UserService    *service.UserService
	EmailService   *service.EmailService
	ContentService *service.ContentService
	ShareService   *service.ShareService
	ExportService  *service.ExportService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(ctx, database.DB, cfg.DBDriver)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Storage (nil when exports are not configured)
	exportStorage, err := storage.New(ctx, cfg)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return Wire(cfg, database, exportStorage), nil
}

// Wire builds the services on top of an open, migrated database.
// exportStorage may be nil.
func Wire(cfg *config.Config, database *sqlx.DB, exportStorage storage.Storage) *App {
	// Repositories
	userRepository := repository.NewUserRepository(database)
	contentRepository := repository.NewContentRepository(database)
	shareLinkRepository := repository.NewShareLinkRepository(database)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	authService := service.NewAuthService(
		userRepository,
		service.NewBcryptHasher(cfg.BcryptCost),
		tokenService,
		emailService,
	)
	userService := service.NewUserService(userRepository)
	contentService := service.NewContentService(contentRepository)
	shareService := service.NewShareService(
		shareLinkRepository,
		userRepository,
		contentRepository,
		markdown.NewParser(),
		emailService,
	)
	exportService := service.NewExportService(contentRepository, exportStorage, cfg.S3PresignExpiry)

	return &App{
		Cfg:            cfg,
		DB:             database,
		TokenService:   tokenService,
		AuthService:    authService,
		UserService:    userService,
		EmailService:   emailService,
		ContentService: contentService,
		ShareService:   shareService,
		ExportService:  exportService,
	}
}

func (a *App) Close() error {
	return db.Close(a.DB)
}

package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"alexandria-server/internal/domain"
	"alexandria-server/internal/infra/gemini"
	"alexandria-server/internal/infra/s3store"
	"alexandria-server/internal/infra/supabase"
	"alexandria-server/internal/infra/vertex"
	"alexandria-server/internal/repository"
	"alexandria-server/internal/service"
	"alexandria-server/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config domain.Config
	Logger domain.Logger
	DB     *sql.DB

	AccountRepository domain.AccountRepository
	GraphRepository   domain.GraphRepository

	LanguageModel domain.LanguageModel
	ScrollArchive domain.ScrollArchive

	AuthService   domain.AuthService
	IntakeService domain.IntakeService
	GraphService  domain.GraphService

	closers []func() error
}

// NewContainer creates a new dependency injection container. The database
// schema is migrated before it returns, so the server never serves traffic
// against a stale schema.
func NewContainer(ctx context.Context) (*Container, error) {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	c := &Container{
		Config: config,
		Logger: appLogger,
	}

	db, err := repository.OpenPostgres(ctx, config.GetDatabaseURL(), appLogger)
	if err != nil {
		return nil, err
	}
	c.DB = db
	c.closers = append(c.closers, db.Close)

	if err := repository.RunMigrations(ctx, db); err != nil {
		c.Close()
		return nil, err
	}
	appLogger.Info("Database migrations applied")

	c.AccountRepository = repository.NewPostgresAccountRepository(db)
	graphRepo := repository.NewPostgresGraphRepository(db)
	c.GraphRepository = graphRepo

	model, err := c.newLanguageModel(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.LanguageModel = model

	archive, err := c.newScrollArchive(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}

	tokens := service.NewTokenIssuer(config.GetJWTSecret(), time.Duration(config.GetTokenTTLMinutes())*time.Minute)
	authService, err := service.NewAuthService(c.AccountRepository, tokens, appLogger)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.AuthService = authService

	intake := service.NewIntakeService(
		model,
		service.NewPDFProcessor(appLogger),
		archive,
		appLogger,
		time.Duration(config.GetLLMTimeoutSeconds())*time.Second,
	)
	c.IntakeService = intake
	c.GraphService = service.NewGraphService(graphRepo, intake, appLogger)

	return c, nil
}

func (c *Container) newLanguageModel(ctx context.Context) (domain.LanguageModel, error) {
	if projectID := c.Config.GetGCPProjectID(); projectID != "" {
		client, err := vertex.NewClient(ctx, projectID, c.Config.GetGCPLocation(), c.Config.GetGeminiModel(), c.Logger)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, client.Close)
		return client, nil
	}

	if c.Config.GetGeminiAPIKey() == "" {
		c.Logger.Warn("GEMINI_API_KEY is not set; intake requests will fail")
	}
	timeout := time.Duration(c.Config.GetLLMTimeoutSeconds()) * time.Second
	return gemini.NewClient(c.Config.GetGeminiBaseURL(), c.Config.GetGeminiModel(), c.Config.GetGeminiAPIKey(), timeout, c.Logger), nil
}

// newScrollArchive returns nil when archiving is disabled.
func (c *Container) newScrollArchive(ctx context.Context) (domain.ScrollArchive, error) {
	switch backend := c.Config.GetArchiveBackend(); backend {
	case "", "none":
		return nil, nil
	case "supabase":
		archive, err := supabase.NewArchive(c.Config.GetSupabaseURL(), c.Config.GetSupabaseKey(), c.Config.GetArchiveBucket(), c.Logger)
		if err != nil {
			return nil, err
		}
		return archive, nil
	case "s3":
		archive, err := s3store.NewArchive(ctx, s3store.Options{
			Endpoint:  c.Config.GetS3Endpoint(),
			Region:    c.Config.GetS3Region(),
			AccessKey: c.Config.GetS3AccessKey(),
			SecretKey: c.Config.GetS3SecretKey(),
			Bucket:    c.Config.GetArchiveBucket(),
		}, c.Logger)
		if err != nil {
			return nil, err
		}
		return archive, nil
	default:
		return nil, fmt.Errorf("unknown ARCHIVE_BACKEND %q", backend)
	}
}

// Close releases resources in reverse order of acquisition.
func (c *Container) Close() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}

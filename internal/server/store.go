package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vs-portfolio/portfolio/internal/config"
	"github.com/vs-portfolio/portfolio/internal/repository"
	"github.com/vs-portfolio/portfolio/internal/repository/filesystem"
	"github.com/vs-portfolio/portfolio/internal/repository/memory"
	"github.com/vs-portfolio/portfolio/internal/repository/mongo"
	"github.com/vs-portfolio/portfolio/internal/repository/sqlite"
	"github.com/vs-portfolio/portfolio/internal/service"
)

// OpenStore connects to the store named by cfg.Store.Driver.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		store, err := mongo.New(ctx, mongo.Options{
			URI:            cfg.Mongo.URI,
			Database:       cfg.Mongo.Database,
			Collections:    cfg.Mongo.Collections,
			ConnectTimeout: cfg.Mongo.ConnectTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("opening mongo store: %w", err)
		}
		logger.Info("store opened",
			slog.String("driver", config.DriverMongo),
			slog.String("database", cfg.Mongo.Database),
		)
		return store, nil

	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.SQLite.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating sqlite directory %s: %w", dir, err)
			}
		}
		store, err := sqlite.New(cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		logger.Info("store opened",
			slog.String("driver", config.DriverSQLite),
			slog.String("path", cfg.SQLite.Path),
		)
		return store, nil

	case config.DriverMemory:
		logger.Warn("using the in-memory store; data is lost on restart")
		return memory.New(), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// ResumeRepository picks where résumés live: in store itself, or as a file
// in cfg.Resume.Dir.
func ResumeRepository(cfg *config.Config, store repository.Store) (repository.ResumeRepository, error) {
	if cfg.Resume.Storage != config.ResumeOnFilesystem {
		return store, nil
	}
	files, err := filesystem.NewResumeStore(cfg.Resume.Dir)
	if err != nil {
		return nil, fmt.Errorf("opening resume directory: %w", err)
	}
	return files, nil
}

// AdminRepository picks where admin credentials come from.
func AdminRepository(cfg *config.Config, store repository.Store) repository.AdminRepository {
	if cfg.Auth.Source == config.AuthStatic {
		return service.StaticCredentials{
			Username: cfg.Auth.AdminUsername,
			Password: cfg.Auth.AdminPassword,
		}
	}
	return store
}

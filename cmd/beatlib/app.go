package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mmcdole/beatlib/internal/config"
	"github.com/mmcdole/beatlib/internal/log"
	"github.com/mmcdole/beatlib/internal/service"
	"github.com/mmcdole/beatlib/internal/store"
)

// Application holds the collaborators shared by every command
type Application struct {
	Config  *config.Config
	Logger  *slog.Logger
	Store   *store.SongStore
	Catalog *service.CatalogService

	logFile io.Closer
}

// open loads configuration, opens the song store and hydrates the catalog
func (app *Application) open(ctx context.Context, configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	logger, logFile, err := log.Setup(&cfg.Logging)
	if err != nil {
		// Logging is optional; run silently
		logger = log.Discard()
	}
	app.logFile = logFile
	slog.SetDefault(logger)
	app.Logger = logger

	logger.Info("starting beatlib", "version", Version, "storeDir", cfg.Store.Dir)

	songStore, err := store.NewSongStore(cfg.Store.Dir)
	if err != nil {
		return fmt.Errorf("failed to open song store: %w", err)
	}
	app.Store = songStore

	app.Catalog = service.NewCatalogService(songStore, logger)
	if err := app.Catalog.Load(ctx); err != nil {
		return err
	}
	return nil
}

// close releases the song store and the log file. It is safe to call more
// than once and after a failed open.
func (app *Application) close() error {
	var errs []error
	if app.Store != nil {
		if err := app.Store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close song store: %w", err))
		}
		app.Store = nil
		if app.Logger != nil {
			app.Logger.Info("shutting down")
		}
	}
	if app.logFile != nil {
		if err := app.logFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close log file: %w", err))
		}
		app.logFile = nil
	}
	return errors.Join(errs...)
}

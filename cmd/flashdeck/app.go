package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/domain/review"
	"github.com/phrazzld/flashdeck/internal/events"
	"github.com/phrazzld/flashdeck/internal/platform/jsonfile"
	"github.com/phrazzld/flashdeck/internal/platform/postgres"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/phrazzld/flashdeck/internal/store"
)

// application holds the wired dependencies shared by every command.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Only set for the postgres backend.
	db *sql.DB

	store   store.DeckStore
	emitter *events.InMemoryEmitter
	library *service.Library
}

// newApplication wires the configured store, the event emitter and the
// library. The library starts empty; call loadLibrary to read the store.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	if cfg == nil {
		return nil, errors.New("configuration cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	app := &application{
		config: cfg,
		logger: logger,
	}

	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		db, err := postgres.Open(ctx, cfg.Storage.DatabaseURL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		app.db = db
		app.store = postgres.NewDeckStore(db, logger)
	case config.BackendFile, "":
		app.store = jsonfile.NewStore(cfg.Storage.Path, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	app.emitter = events.NewInMemoryEmitter(logger)
	app.emitter.RegisterHandler(events.NewLogHandler(logger))

	params := review.NewParams(review.ParamsConfig{
		CorrectPoints:   cfg.Review.CorrectPoints,
		IncorrectPoints: cfg.Review.IncorrectPoints,
	})

	lib, err := service.NewLibrary(app.store, app.emitter, params, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create library: %w", err)
	}
	app.library = lib

	return app, nil
}

// loadLibrary reads the saved library. A file store whose file does not exist
// yet leaves the library empty.
func (app *application) loadLibrary(ctx context.Context) error {
	err := app.library.Load(ctx)
	if err == nil {
		return nil
	}
	if errors.Is(err, os.ErrNotExist) {
		app.logger.Info("no saved library found, starting empty",
			"path", app.config.Storage.Path)
		return nil
	}
	return err
}

func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}
}

// commandContext returns cmd's context, or a background context when the
// command was not started through Execute.
func commandContext(cmd interface{ Context() context.Context }) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

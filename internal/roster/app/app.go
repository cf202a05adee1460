package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/tidewater-labs/staffdir/internal/roster/service"
	"github.com/tidewater-labs/staffdir/internal/roster/shell"
	"github.com/tidewater-labs/staffdir/internal/roster/store"
	"github.com/tidewater-labs/staffdir/internal/roster/store/drivers/flatfile"
	"github.com/tidewater-labs/staffdir/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the roster application with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	roster *service.RosterService
	shell  *shell.Shell
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "staffdir",
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	db, err := flatfile.NewStore(cfg.DataFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster file: %w", err)
	}
	app.db = db

	app.roster = &service.RosterService{Store: app.db, Logger: app.logger}
	app.shell = shell.New(app.roster, os.Stdin, os.Stdout)

	return app, nil
}

// Run starts the interactive shell and blocks until the user quits, input
// reaches EOF, or the context is cancelled.
func (app *Application) Run(ctx context.Context) error {
	app.logger.Info("staffdir starting", "data_file", app.cfg.DataFile, "version", BuildVersion)

	if err := app.shell.Run(ctx); err != nil {
		return fmt.Errorf("shell: %w", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing store", "error", err)
		return err
	}

	app.logger.Info("staffdir stopped")
	return nil
}

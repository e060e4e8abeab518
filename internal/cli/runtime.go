package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/sadopc/hourtrack/internal/config"
	"github.com/sadopc/hourtrack/internal/filestore"
	"github.com/sadopc/hourtrack/internal/store"
	"github.com/sadopc/hourtrack/internal/tracker"
)

// Runtime bundles everything one command needs: the resolved configuration,
// the open backend and an engine bound to it.
type Runtime struct {
	Config    *config.Config
	Engine    *tracker.Engine
	Settings  config.SettingsStore
	StatePath string
	Logger    *slog.Logger

	closer io.Closer
}

type backend interface {
	tracker.StateStore
	config.SettingsStore
	io.Closer
	Path() string
}

// Open opens the configured backend and builds the engine. Logs go to logOut
// at the configured level.
func Open(cfg *config.Config, logOut io.Writer) (*Runtime, error) {
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	var (
		b   backend
		err error
	)
	switch cfg.Backend {
	case config.BackendYAML:
		b, err = filestore.New(cfg.StateDir)
	default:
		b, err = store.New(cfg.DatabasePath)
	}
	if err != nil {
		return nil, err
	}

	if err := config.ApplySettings(cfg, b); err != nil {
		logger.Warn("ignoring stored settings", "error", err)
	}

	logger.Debug("opened state store", "backend", cfg.Backend, "path", b.Path(),
		"working_hours_per_day", cfg.WorkingHoursPerDay)

	engine := tracker.NewEngine(b, tracker.SystemClock{}, cfg.Tracker(), tracker.WithLogger(logger))
	return &Runtime{
		Config:    cfg,
		Engine:    engine,
		Settings:  b,
		StatePath: b.Path(),
		Logger:    logger,
		closer:    b,
	}, nil
}

func (r *Runtime) Close() error {
	if r.closer == nil {
		return nil
	}
	if err := r.closer.Close(); err != nil {
		return fmt.Errorf("close state store: %w", err)
	}
	return nil
}

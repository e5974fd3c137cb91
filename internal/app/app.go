package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/admin/astro-core/internal/pkg/logger"
)

type App struct {
	Name string
	Cfg  *Config
	Log  *slog.Logger
}

func New(name string, cfg *Config) (*App, error) {
	log, err := logger.New(name, cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	logger.SetDefault(log)

	return &App{
		Name: name,
		Cfg:  cfg,
		Log:  log,
	}, nil
}

// Run поднимает зависимости и блокируется до отмены ctx
func (a *App) Run(ctx context.Context) error {
	a.Log.Info("running astro-core", "app", a.Name)

	deps, err := a.initDependencies(ctx)
	if err != nil {
		return err
	}

	return a.runServices(ctx, deps)
}

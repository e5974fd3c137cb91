package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/admin/astro-core/internal/app"
)

const (
	appName   = "astro_core"
	envPrefix = "ASTRO_CORE"
)

func main() {
	cfg, err := app.NewEnvConfig(envPrefix)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	application, err := app.New(appName, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}

package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultShutdownTimeout = 10 * time.Second

func (a *App) runServices(ctx context.Context, deps *Dependencies) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Log.Info("starting http server",
			"host", a.Cfg.Server.Host,
			"port", a.Cfg.Server.Port)

		err := deps.HTTPServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	if deps.KafkaConsumer != nil {
		g.Go(func() error {
			a.Log.Info("starting kafka consumer")
			return deps.KafkaConsumer.Start(gCtx)
		})
	}

	// Планировщик запускает горутины внутри и сам не блокирует
	if deps.JobScheduler != nil {
		if a.Cfg.Jobs.WarmOnStart {
			g.Go(func() error {
				a.warmCaches(gCtx, deps)
				return nil
			})
		}
		if err := deps.JobScheduler.Start(gCtx); err != nil {
			a.Log.Error("failed to start job scheduler", "error", err)
		}
	}

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.Log.Info("received shutdown signal")

		timeout := a.Cfg.Server.ShutdownTimeout
		if timeout <= 0 {
			timeout = defaultShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := deps.HTTPServer.Shutdown(shutdownCtx); err != nil {
			a.Log.Error("failed to shutdown http server", "error", err)
		}

		if deps.JobScheduler != nil {
			deps.JobScheduler.Wait()
		}

		if deps.KafkaConsumer != nil {
			if err := deps.KafkaConsumer.Close(); err != nil {
				a.Log.Error("failed to close kafka consumer", "error", err)
			}
		}

		if deps.KafkaProducer != nil {
			if err := deps.KafkaProducer.Close(); err != nil {
				a.Log.Error("failed to close kafka producer", "error", err)
			}
		}

		if deps.Cache != nil {
			if err := deps.Cache.Close(); err != nil {
				a.Log.Error("failed to close cache", "error", err)
			}
		}

		if err := deps.DB.Close(); err != nil {
			a.Log.Error("failed to close database", "error", err)
		}

		a.Log.Info("application shutdown completed")
		return nil
	})

	if err := g.Wait(); err != nil {
		a.Log.Error("application error", "error", err)
		return err
	}

	return nil
}

// warmCaches однократный прогрев до первого запуска по расписанию, ошибки не фатальны
func (a *App) warmCaches(ctx context.Context, deps *Dependencies) {
	for _, name := range []string{"positions-updater", "lunar-calendar-warmer"} {
		if err := deps.JobScheduler.RunOnce(ctx, name); err != nil {
			a.Log.Warn("initial cache warm-up failed", "error", err, "job_name", name)
		}
	}
}

package internal

import (
	"context"
	"fmt"
	"meetsync/internal/broadcast"
	"meetsync/internal/persistence/interfaces"
	"meetsync/internal/providers"
	"meetsync/internal/services"
	"meetsync/internal/storage"
	"meetsync/internal/structures"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
)

type App struct {
	WebServer *http.Server
}

// relay is implemented by publishers that need a background loop, such as
// the redis relay.
type relay interface {
	Run(ctx context.Context) error
	Close() error
}

func NewApp(
	handler http.Handler,
	scheduler interfaces.SchedulerInterface,
	store storage.Store,
	publisher broadcast.Publisher,
	seeder *services.DemoSeeder,
	conf *structures.Config,
	logger providers.Logger,
) (*App, error) {
	logger.Infof(providers.TypeApp, "Starting %s (storage=%s, redis=%t)", conf.AppName, conf.Storage.Driver, conf.Redis.Enabled)
	if err := scheduler.Restore(); err != nil {
		logger.Errorf(providers.TypeApp, "Restore error: %s", err)
	}

	ctx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()

	if conf.Storage.SeedDemo {
		if err := seeder.Seed(ctx); err != nil {
			logger.Errorf(providers.TypeApp, "Demo seed error: %s", err)
		}
	}

	app := &App{
		WebServer: &http.Server{
			Addr:        conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:     handler,
			ReadTimeout: 5 * time.Second,
			// websocket connections outlive any write timeout; the listener
			// sets per-frame deadlines itself
			IdleTimeout: 60 * time.Second,
		},
	}

	scheduler.Init()

	relayErr := make(chan error, 1)
	relayDone := make(chan struct{})
	if r, ok := publisher.(relay); ok {
		go func() {
			defer close(relayDone)
			if err := r.Run(ctx); err != nil {
				relayErr <- err
			}
		}()
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof(providers.TypeApp, "Listening HTTP clients on %s:%d", conf.WebServer.Host, conf.WebServer.Port)
		if err := app.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		return nil, fmt.Errorf("server error: %w", err)
	case err := <-relayErr:
		logger.Errorf(providers.TypeApp, "Redis relay stopped: %s", err)
	}

	scheduler.Stop()
	cancelRun()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.WebServer.Shutdown(shutdownCtx); err != nil {
		return nil, err
	}
	if r, ok := publisher.(relay); ok {
		// Run owns the subscription until it returns
		select {
		case <-relayDone:
		case <-shutdownCtx.Done():
			logger.Warnf(providers.TypeApp, "Redis relay did not stop in time")
		}
		if err := r.Close(); err != nil {
			logger.Warnf(providers.TypeApp, "Redis relay close: %s", err)
		}
	}
	if err := scheduler.Persist(); err != nil {
		return nil, err
	}
	if err := store.Close(); err != nil {
		logger.Warnf(providers.TypeApp, "Store close: %s", err)
	}
	logger.Infof(providers.TypeApp, "gracefully stopped")
	return app, nil
}

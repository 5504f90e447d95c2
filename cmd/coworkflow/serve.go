package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/coworkflow/coworkflow/internal/config"
	"github.com/coworkflow/coworkflow/internal/logs"
	"github.com/coworkflow/coworkflow/internal/proxy"
	"github.com/coworkflow/coworkflow/internal/router"
)

// setup loads configuration and initialises logging for service.
func setup(service string) (config.Config, *echo.Echo) {
	cfg := config.Load()
	logs.Init(logs.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: service})
	return cfg, router.New(service)
}

// serve runs e until SIGINT/SIGTERM, then drains for up to ten seconds.
func serve(ctx context.Context, service string, cfg config.Config, e *echo.Echo) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := cfg.Addr(service)
	log := logs.For(service)
	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s (env=%s)", addr, cfg.Env)
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func upstreamSettings(cfg config.Config) proxy.Settings {
	return proxy.Settings{
		Timeout:     cfg.UpstreamTimeout,
		MaxFailures: cfg.BreakerMaxFailures,
		OpenTimeout: cfg.BreakerTimeout,
	}
}

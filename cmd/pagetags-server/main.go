package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-pagetags"
)

func main() {
	var (
		addrFlag      = flag.String("addr", ":8484", "HTTP listen address")
		configFlag    = flag.String("config", "", "settings YAML file (PAGETAGS_* env vars override it)")
		debugFlag     = flag.Bool("debug", false, "enable development logging")
		shutdownGrace = flag.Duration("grace", 5*time.Second, "Shutdown grace period")
	)
	flag.Parse()

	logger := newLogger(*debugFlag)
	defer func() { _ = logger.Sync() }()

	settings, err := pagetags.LoadSettings(*configFlag)
	if err != nil {
		logger.Fatal("load settings", zap.Error(err))
	}

	server, err := newPageServer(settings, logger)
	if err != nil {
		logger.Fatal("configure pages", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr:              *addrFlag,
		Handler:           server.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("listening", zap.String("addr", *addrFlag), zap.Bool("strict_sorting", settings.InvalidFieldRaises404))

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errChan:
		logger.Fatal("listen", zap.Error(err))
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), *shutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func newLogger(debug bool) *zap.Logger {
	build := zap.NewProduction
	if debug {
		build = zap.NewDevelopment
	}
	logger, err := build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

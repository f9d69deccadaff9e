package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmorgan81/zimage/internal/config"
	"github.com/dmorgan81/zimage/internal/inject"
	"github.com/dmorgan81/zimage/internal/log"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := log.New(os.Stderr, log.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(log.NewContext(context.Background(), logger), os.Interrupt, syscall.SIGTERM)
	defer stop()

	injector := inject.Setup(ctx, cfg)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           do.MustInvoke[http.Handler](injector),
		ReadHeaderTimeout: 5 * time.Second,
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("studio listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("server failed", "error", err)
	}
	_ = injector.Shutdown()
	logger.Info("studio stopped")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/iwvelando/invoice-roi/internal/config"
	"github.com/iwvelando/invoice-roi/internal/server"
	"github.com/iwvelando/invoice-roi/internal/simulation"
	"github.com/iwvelando/invoice-roi/internal/store"
	"github.com/iwvelando/invoice-roi/pkg/constants"
	"go.uber.org/zap"
)

func storeOptions(c config.StorageConfig) store.Options {
	return store.Options{
		Driver:        c.Driver,
		SQLitePath:    c.SQLite.Path,
		RedisAddress:  c.Redis.Address,
		RedisPassword: c.Redis.Password,
		RedisDB:       c.Redis.DB,
		RedisPrefix:   c.Redis.Prefix,
	}
}

func handlerOptions(conf *config.Configuration) server.Options {
	return server.Options{
		MaxBodySize:       conf.Server.MaxBodySizeBytes(),
		Version:           conf.Server.Version,
		CORSOrigins:       conf.Server.CORSOrigins,
		RateLimitRequests: conf.Server.RateLimit.Requests,
		RateLimitWindow:   conf.Server.RateLimit.Window,
		CurrencySymbol:    conf.Report.CurrencySymbol,
	}
}

// runServe serves the API until ctx is cancelled, then shuts down gracefully.
func runServe(ctx context.Context, logger *zap.Logger, conf *config.Configuration) error {
	st, err := store.Open(ctx, logger, storeOptions(conf.Storage))
	if err != nil {
		return fmt.Errorf("failed to open scenario store: %w", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Warn("failed to close scenario store",
				zap.String("op", "main.runServe"),
				zap.Error(closeErr),
			)
		}
	}()

	srv := &http.Server{
		Addr:         conf.Server.Address,
		Handler:      server.NewHandler(logger, st, simulation.NewDefaultEngine(), handlerOptions(conf)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("API listening",
			zap.String("op", "main.runServe"),
			zap.String("address", srv.Addr),
			zap.String("storage", conf.Storage.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutting down", zap.String("op", "main.runServe"))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server exited", zap.String("op", "main.runServe"))
	return nil
}

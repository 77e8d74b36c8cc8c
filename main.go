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

	"recipes_backend/config"
	"recipes_backend/handlers"
	"recipes_backend/logger"
	"recipes_backend/store"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	logger.InitLogger(logger.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		logrus.Fatalf("Failed to open %s store: %v", cfg.Store, err)
	}

	router := handlers.NewRouter(st, handlers.Options{
		ImageClient: &http.Client{Timeout: cfg.ImageTimeout},
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handlers.Wrap(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logrus.Infof("It's running on port: %d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logrus.Info("Shutting down server...")
	case err := <-errChan:
		logrus.Errorf("Server failed: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server shutdown failed: %v", err)
	}
	if err := st.Close(shutdownCtx); err != nil {
		logrus.Errorf("Failed to close store: %v", err)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store {
	case config.StoreMongo:
		uri := cfg.MongoURI
		if uri == "" {
			uri = store.MongoURI(cfg.DBUser, cfg.DBPass, cfg.DBHost)
		}
		connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		return store.NewMongo(connectCtx, uri, cfg.DBName, cfg.Collection)
	case config.StoreFirestore:
		return store.NewFirestore(ctx, cfg.FirestoreProject, cfg.Collection)
	case config.StoreMemory:
		return store.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown store %q", cfg.Store)
}

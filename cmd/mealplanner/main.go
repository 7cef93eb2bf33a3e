package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/dukerupert/mealplanner/internal/config"
	"github.com/dukerupert/mealplanner/internal/database"
	"github.com/dukerupert/mealplanner/internal/logging"
	"github.com/dukerupert/mealplanner/internal/planner"
	"github.com/dukerupert/mealplanner/internal/sample"
	"github.com/dukerupert/mealplanner/internal/server"
	"github.com/dukerupert/mealplanner/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath, port, logLevel string

	flagSet := pflag.NewFlagSet("mealplanner", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", os.Getenv("MEALPLANNER_CONFIG"), "path to YAML config file")
	flagSet.StringVar(&port, "port", "", "HTTP port (overrides config)")
	flagSet.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if port != "" {
		cfg.Port = port
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	st := planner.NewStore(planner.WithLogger(logger.With("component", "planner")))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var wg sync.WaitGroup

	restored := false
	if cfg.DBPath != "" {
		db, err := database.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		snapshots := store.NewSnapshotStore(db)
		saved, err := snapshots.Load(ctx)
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		if saved != nil {
			st.Dispatch(*saved)
			restored = true
			logger.Info("state restored", "db_path", cfg.DBPath)
		}

		syncer := store.NewSyncer(snapshots, logger)
		st.Subscribe(syncer.Listener())
		wg.Add(1)
		go func() {
			defer wg.Done()
			syncer.Run(ctx)
		}()
	}

	if !restored && cfg.Seed {
		st.Dispatch(sample.Data(time.Now()))
		logger.Info("sample data loaded")
	}

	srv := server.New(st, cfg.AllowedOrigins, logger)

	// No WriteTimeout: /ws connections are long-lived.
	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("meal planner running", "addr", "http://localhost:"+cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-errCh:
		cancel()
		wg.Wait()
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	// Stop the syncer after the last request so its final flush sees every dispatch.
	cancel()
	wg.Wait()
	return nil
}

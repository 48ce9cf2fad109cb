package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/diewo77/go-invoicing/internal/config"
	"github.com/diewo77/go-invoicing/internal/db"
	"github.com/diewo77/go-invoicing/internal/logging"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Run DB seed and exit")
)

func main() {
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := logging.New(cfg.LogFormat, cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped with error")
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			log.WithError(err).Warn("closing database")
		}
	}()

	if *migrateOnlyFlag {
		if err := db.Migrate(gdb, cfg, log); err != nil {
			return err
		}
		log.Info("migrations completed")
		return nil
	}
	if *seedOnlyFlag {
		if err := db.Seed(ctx, gdb); err != nil {
			return err
		}
		log.Info("seeding completed")
		return nil
	}

	if err := db.Migrate(gdb, cfg, log); err != nil {
		return err
	}
	if cfg.Seed {
		if err := db.Seed(ctx, gdb); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      NewApp(cfg, gdb, log),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{"addr": srv.Addr, "env": cfg.AppEnv}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server stopped gracefully")
	return nil
}

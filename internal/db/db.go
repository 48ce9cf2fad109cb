// Package db opens the database, applies the schema and seeds baseline rows.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/diewo77/go-invoicing/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dialector(cfg *config.Config) (gorm.Dialector, error) {
	dsn := cfg.DSN()
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.Open(NormalizeDSN(dsn)), nil
	case config.DriverSQLite:
		return sqlite.Open(dsn), nil
	case config.DriverMySQL:
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// gormLogger routes gorm's own logging through log. Queries are only
// logged with DB_DEBUG.
func gormLogger(cfg *config.Config, log logrus.FieldLogger) logger.Interface {
	level := logger.Silent
	if cfg.DBDebug {
		level = logger.Info
	}
	return logger.New(log, logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// Open connects with retries, tunes the pool and installs the tracing
// plugin when DB_TRACING is set.
func Open(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*gorm.DB, error) {
	dial, err := dialector(cfg)
	if err != nil {
		return nil, err
	}
	gcfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger(cfg, log),
	}

	attempts := max(cfg.DBConnectRetries, 1)
	var db *gorm.DB
	for i := 1; i <= attempts; i++ {
		db, err = gorm.Open(dial, gcfg)
		if err == nil {
			err = ping(ctx, db)
		}
		if err == nil {
			break
		}
		if i == attempts {
			break
		}
		log.WithFields(logrus.Fields{"attempt": i, "of": attempts}).Warnf("database not ready: %v", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.DBRetryDelay):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect database after %d attempts: %w", attempts, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DBDriver == config.DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
	if cfg.DBConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)
	}

	if cfg.DBTracing {
		if err := db.Use(otelgorm.NewPlugin()); err != nil {
			log.Warnf("database connected but tracing plugin failed: %v", err)
		}
	}
	log.WithFields(logrus.Fields{"driver": cfg.DBDriver, "dsn": MaskDSN(cfg.DSN())}).Info("database connected")
	return db, nil
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return sqlDB.PingContext(pctx)
}

// Close releases the underlying pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

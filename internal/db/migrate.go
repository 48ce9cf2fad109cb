package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/diewo77/go-invoicing/internal/config"
	"github.com/diewo77/go-invoicing/internal/models"
	migrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// requiredTables must exist after migration.
var requiredTables = []string{"clients", "products", "invoices", "quotations", "company_settings", "document_sequences"}

// Migrate applies the schema. With MIGRATIONS set on postgres the embedded
// SQL migrations run through golang-migrate; otherwise gorm AutoMigrate is
// used.
func Migrate(db *gorm.DB, cfg *config.Config, log logrus.FieldLogger) error {
	switch {
	case cfg.Migrations && cfg.DBDriver == config.DriverPostgres:
		log.Info("running SQL migrations")
		if err := runSQLMigrations(ToURLDSN(NormalizeDSN(cfg.DSN()))); err != nil {
			return fmt.Errorf("sql migrations failed: %w", err)
		}
	default:
		if cfg.Migrations {
			log.WithField("driver", cfg.DBDriver).Warn("SQL migrations are postgres only; using AutoMigrate")
		}
		if err := AutoMigrate(db); err != nil {
			return err
		}
	}
	for _, table := range requiredTables {
		if !db.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}

// AutoMigrate creates or updates every table from the models.
func AutoMigrate(db *gorm.DB) error {
	for _, m := range models.All() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

func runSQLMigrations(dsn string) error {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Supported DB_DRIVER values.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
)

type Config struct {
	AppEnv string `envconfig:"APP_ENV" default:"development"`

	Port            string        `envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`

	DBDriver          string        `envconfig:"DB_DRIVER" default:"postgres"`
	DatabaseDSN       string        `envconfig:"DATABASE_DSN"`
	DBHost            string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort            int           `envconfig:"DB_PORT"`
	DBUser            string        `envconfig:"DB_USER" default:"postgres"`
	DBPassword        string        `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName            string        `envconfig:"DB_NAME" default:"invoicing"`
	DBSSLMode         string        `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	DBMaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	DBConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
	DBConnectRetries  int           `envconfig:"DB_CONNECT_RETRIES" default:"10"`
	DBRetryDelay      time.Duration `envconfig:"DB_RETRY_DELAY" default:"2s"`
	DBDebug           bool          `envconfig:"DB_DEBUG"`
	DBTracing         bool          `envconfig:"DB_TRACING"`

	// Migrations selects the embedded SQL migrations instead of AutoMigrate.
	Migrations bool `envconfig:"MIGRATIONS"`
	Seed       bool `envconfig:"DB_SEED" default:"true"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	UploadDir          string `envconfig:"UPLOAD_DIR" default:"uploads"`
	LogoMaxWidth       int    `envconfig:"LOGO_MAX_WIDTH" default:"600"`
	RateLimitPerMinute int    `envconfig:"RATE_LIMIT_PER_MINUTE" default:"30"`
}

// Load reads the environment. Call godotenv.Load first to pick up a .env
// file; explicit variables win over it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite, DriverMySQL:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DBMaxOpenConns < 1 {
		return fmt.Errorf("config: DB_MAX_OPEN_CONNS must be positive, got %d", c.DBMaxOpenConns)
	}
	if c.DBMaxIdleConns < 0 || c.DBMaxIdleConns > c.DBMaxOpenConns {
		return fmt.Errorf("config: DB_MAX_IDLE_CONNS must be within 0..%d", c.DBMaxOpenConns)
	}
	if c.DBConnectRetries < 1 {
		c.DBConnectRetries = 1
	}
	if c.RateLimitPerMinute < 1 {
		return fmt.Errorf("config: RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

func (c *Config) Addr() string { return ":" + c.Port }

// DSN returns DATABASE_DSN when set, otherwise a DSN assembled from the
// DB_* parts in the format the selected driver expects.
func (c *Config) DSN() string {
	if c.DatabaseDSN != "" {
		return c.DatabaseDSN
	}
	switch c.DBDriver {
	case DriverSQLite:
		return c.DBName + ".db"
	case DriverMySQL:
		port := c.DBPort
		if port == 0 {
			port = 3306
		}
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.DBUser, c.DBPassword, net.JoinHostPort(c.DBHost, strconv.Itoa(port)), c.DBName)
	default:
		port := c.DBPort
		if port == 0 {
			port = 5432
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.DBHost, port, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
	}
}

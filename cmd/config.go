package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is read from the environment, optionally seeded from a .env file.
type Config struct {
	HTTPPort    string `envconfig:"HTTP_PORT" default:"8080"`
	Development bool   `envconfig:"DEVELOPMENT" default:"false"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	RedisAddr string `envconfig:"REDIS_ADDR" default:"localhost:6379"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	OverpaymentTolerance string        `envconfig:"PAYMENT_OVERPAYMENT_TOLERANCE" default:"0.00"`
	IdempotencyTTL       time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"24h"`

	RateLimit       int           `envconfig:"RATE_LIMIT" default:"100"`
	RateLimitWindow time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`

	CustodyAuditSchedule  string        `envconfig:"CUSTODY_AUDIT_SCHEDULE" default:"0 */15 * * * *"`
	CustodyAuditWindow    time.Duration `envconfig:"CUSTODY_AUDIT_WINDOW" default:"24h"`
	OverdueOrdersSchedule string        `envconfig:"OVERDUE_ORDERS_SCHEDULE" default:"0 0 * * * *"`

	WorkerConcurrency int `envconfig:"WORKER_CONCURRENCY" default:"10"`
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN is the postgres:// URL used by both GORM and the migrator.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}

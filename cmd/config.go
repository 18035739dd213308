package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/smaikl/GLG-bot/internal/adapters/out/persistence"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN,required,notEmpty"`
	TelegramDebug    bool   `env:"TELEGRAM_DEBUG" envDefault:"false"`
	TelegramWorkers  int    `env:"TELEGRAM_WORKERS" envDefault:"8"`

	DBDriver   string `env:"DB_DRIVER" envDefault:"postgres"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"glg_bot"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"glg-bot.db"`

	FilesDir string `env:"FILES_DIR" envDefault:"files"`

	SessionStore         string        `env:"SESSION_STORE" envDefault:"memory"`
	RedisAddr            string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword        string        `env:"REDIS_PASSWORD"`
	RedisDB              int           `env:"REDIS_DB" envDefault:"0"`
	SessionTTL           time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SessionSweepSchedule string        `env:"SESSION_SWEEP_SCHEDULE" envDefault:"0 */10 * * * *"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig reads .env when present and then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.DBDriver != persistence.DriverPostgres && c.DBDriver != persistence.DriverSQLite {
		errs = append(errs, fmt.Errorf("DB_DRIVER must be %q or %q, got %q",
			persistence.DriverPostgres, persistence.DriverSQLite, c.DBDriver))
	}
	if c.SessionStore != SessionStoreMemory && c.SessionStore != SessionStoreRedis {
		errs = append(errs, fmt.Errorf("SESSION_STORE must be %q or %q, got %q",
			SessionStoreMemory, SessionStoreRedis, c.SessionStore))
	}
	if c.TelegramWorkers < 1 {
		errs = append(errs, fmt.Errorf("TELEGRAM_WORKERS must be positive, got %d", c.TelegramWorkers))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// DatabaseDSN returns the connection string for the configured driver.
func (c Config) DatabaseDSN() string {
	if c.DBDriver == persistence.DriverSQLite {
		return c.SQLitePath
	}
	return persistence.PostgresDSN(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

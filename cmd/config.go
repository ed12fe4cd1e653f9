package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	SessionBackendPostgres = "postgres"
	SessionBackendRedis    = "redis"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST"     envDefault:"localhost"`
	DBPort     string `env:"DB_PORT"     envDefault:"5432"`
	DBUser     string `env:"DB_USER"     envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"     envDefault:"ordering"`
	DBSslMode  string `env:"DB_SSLMODE"  envDefault:"disable"`

	SessionBackend         string        `env:"SESSION_BACKEND"          envDefault:"postgres"`
	SessionTTL             time.Duration `env:"SESSION_TTL"              envDefault:"72h"`
	SessionCleanupSchedule string        `env:"SESSION_CLEANUP_SCHEDULE" envDefault:"0 */15 * * * *"`
	HistoryLimit           int           `env:"HISTORY_LIMIT"            envDefault:"20"`

	RedisAddr     string `env:"REDIS_ADDR"     envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"       envDefault:"0"`

	LLMAPIKey         string        `env:"LLM_API_KEY"`
	LLMBaseURL        string        `env:"LLM_BASE_URL"`
	LLMModel          string        `env:"LLM_MODEL"          envDefault:"gpt-4o-mini"`
	LLMTimeout        time.Duration `env:"LLM_TIMEOUT"        envDefault:"20s"`
	ClassifierHistory int           `env:"CLASSIFIER_HISTORY" envDefault:"4"`

	// RateLimit is requests per second per client IP; zero disables limiting.
	RateLimit float64 `env:"RATE_LIMIT" envDefault:"10"`
}

// LoadConfig reads the given .env files when they exist, then the process
// environment. Variables already set in the environment win.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load env files: %w", err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	switch cfg.SessionBackend {
	case SessionBackendPostgres, SessionBackendRedis:
	default:
		return Config{}, fmt.Errorf("unsupported SESSION_BACKEND %q", cfg.SessionBackend)
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, errors.New("SESSION_TTL must be positive")
	}

	return cfg, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

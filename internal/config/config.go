package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Environment is the deployment environment the client runs in.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

func (e Environment) IsProduction() bool { return e == Production }

// ParseEnvironment falls back to Development for unknown values.
func ParseEnvironment(v string) Environment {
	switch Environment(v) {
	case Production, Staging, Testing:
		return Environment(v)
	default:
		return Development
	}
}

const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

type Config struct {
	Port        string        `envconfig:"PORT" default:"8080"`
	APIBase     string        `envconfig:"DEALPULSE_API_BASE" default:"http://localhost:4242"`
	APITimeout  time.Duration `envconfig:"API_TIMEOUT" default:"0s"`
	Environment Environment   `envconfig:"ENVIRONMENT" default:"development"`
	Storage     string        `envconfig:"STORAGE_DRIVER" default:"sqlite"`
	DBDSN       string        `envconfig:"DB_DSN" default:"dealpulse.db"`
	RedisURL    string        `envconfig:"REDIS_URL"`
	LogFile     string        `envconfig:"LOG_FILE"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	cfg.Environment = ParseEnvironment(string(cfg.Environment))
	if cfg.Storage != StorageRedis {
		cfg.Storage = StorageSQLite
	}
	if cfg.Storage == StorageRedis && cfg.RedisURL == "" {
		return Config{}, errors.New("REDIS_URL is required when STORAGE_DRIVER=redis")
	}
	return cfg, nil
}

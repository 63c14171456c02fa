package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/deviolabs/accounts-api/internal/core/domain"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT   JWTConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// JWTConfig carries token issuance settings. Immutable for the process
// lifetime once loaded.
type JWTConfig struct {
	Secret          string `env:"JWT_SECRET"`
	Issuer          string `env:"JWT_ISSUER,           default=accounts-api"`
	Audience        string `env:"JWT_AUDIENCE,         default=https://localhost"`
	ExpirationHours int    `env:"JWT_EXPIRATION_HOURS, default=2"`

	MaxSignInAttempts int           `env:"LOCKOUT_MAX_ATTEMPTS, default=5"`
	LockoutDuration   time.Duration `env:"LOCKOUT_DURATION,     default=5m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=accounts"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the token issuer cannot work with. A
// missing signing secret must stop startup, never surface per-request.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET: %w", domain.ErrMissingSecret)
	}
	if c.JWT.ExpirationHours < 1 {
		return fmt.Errorf("config: JWT_EXPIRATION_HOURS must be at least 1, got %d", c.JWT.ExpirationHours)
	}
	if c.JWT.MaxSignInAttempts < 1 {
		return fmt.Errorf("config: LOCKOUT_MAX_ATTEMPTS must be at least 1, got %d", c.JWT.MaxSignInAttempts)
	}
	return nil
}

// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App   AppConfig
	DB    DBConfig
	Auth  AuthConfig
	CORS  CORSConfig
	Redis RedisConfig
}

type AppConfig struct {
	Addr           string        `envconfig:"SHAREDSHOP_ADDR" default:":8080"`
	LogLevel       string        `envconfig:"SHAREDSHOP_LOG_LEVEL" default:"info"`
	LogFormat      string        `envconfig:"SHAREDSHOP_LOG_FORMAT" default:"text"`
	RequestTimeout time.Duration `envconfig:"SHAREDSHOP_REQUEST_TIMEOUT" default:"30s"`
}

type DBConfig struct {
	Path        string `envconfig:"SHAREDSHOP_DB_PATH" default:"./data/sharedshop.db"`
	MaxBatchOps int    `envconfig:"SHAREDSHOP_DB_MAX_BATCH_OPS" default:"500"`
}

type AuthConfig struct {
	JWTSecret string        `envconfig:"SHAREDSHOP_JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `envconfig:"SHAREDSHOP_TOKEN_TTL" default:"24h"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SHAREDSHOP_CORS_ALLOWED_ORIGINS" default:"*"`
}

// RedisConfig enables rate limiting of invitation acceptance when URL is set.
type RedisConfig struct {
	URL          string        `envconfig:"SHAREDSHOP_REDIS_URL"`
	AcceptLimit  int           `envconfig:"SHAREDSHOP_ACCEPT_INVITE_LIMIT" default:"10"`
	AcceptWindow time.Duration `envconfig:"SHAREDSHOP_ACCEPT_INVITE_WINDOW" default:"1m"`
}

// Enabled reports whether a Redis URL is configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != ""
}

// Load reads the given dotenv files, when present, then the environment.
// Variables already set in the environment win over dotenv values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		for _, f := range envFiles {
			if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("loading %s: %w", f, err)
			}
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DB.MaxBatchOps <= 0 {
		return fmt.Errorf("SHAREDSHOP_DB_MAX_BATCH_OPS must be positive, got %d", c.DB.MaxBatchOps)
	}
	if c.Redis.Enabled() && (c.Redis.AcceptLimit <= 0 || c.Redis.AcceptWindow <= 0) {
		return errors.New("invitation rate limit and window must be positive when redis is enabled")
	}
	switch c.App.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("SHAREDSHOP_LOG_FORMAT must be text or json, got %q", c.App.LogFormat)
	}
	return nil
}

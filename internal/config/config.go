package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Service   svcConfig
	Auth      authConfig
	Narrative narrativeConfig
}

type svcConfig struct {
	Address   string  `envconfig:"B31G_ADDRESS" default:":8443" validate:"required"`
	TLSCert   string  `envconfig:"B31G_TLS_CERT" default:"" validate:"required_with=TLSKey"`
	TLSKey    string  `envconfig:"B31G_TLS_KEY" default:"" validate:"required_with=TLSCert"`
	LogLevel  string  `envconfig:"B31G_LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	RateLimit float64 `envconfig:"B31G_RATE_LIMIT" default:"1" validate:"gt=0"`
	RateBurst int     `envconfig:"B31G_RATE_BURST" default:"3" validate:"gte=1"`
}

type authConfig struct {
	// TokenKey signs session cookies. Empty disables authentication.
	TokenKey      string `envconfig:"TOKEN_KEY" default:""`
	AccessKeyHash string `envconfig:"B31G_ACCESS_KEY_HASH" default:"" validate:"required_with=TokenKey"`
}

type narrativeConfig struct {
	URL       string        `envconfig:"B31G_NARRATIVE_URL" default:"https://generativelanguage.googleapis.com/v1beta" validate:"url"`
	Model     string        `envconfig:"B31G_NARRATIVE_MODEL" default:"gemini-2.5-flash-preview-09-2025" validate:"required"`
	Key       string        `envconfig:"B31G_NARRATIVE_KEY" default:""`
	Retries   int           `envconfig:"B31G_NARRATIVE_RETRIES" default:"5" validate:"gte=1,lte=10"`
	BaseDelay time.Duration `envconfig:"B31G_NARRATIVE_BASE_DELAY" default:"1s"`
}

func (c *Config) TLS() bool {
	return c.Service.TLSCert != ""
}

func (c *Config) AuthEnabled() bool {
	return c.Auth.TokenKey != ""
}

// New loads an optional .env file and then the environment. Variables already
// set in the environment win over the file.
func New(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

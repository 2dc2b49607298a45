package auth

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

// AppConfig is the process-wide configuration, loaded once at startup. There
// is no committed default signing key; production refuses to boot without
// one.
type AppConfig struct {
	SigningKey  string        `env:"AUTH_SIGNING_KEY"`
	TokenTTL    time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"1h"`
	BcryptCost  int           `env:"AUTH_BCRYPT_COST" envDefault:"10"`
	Issuer      string        `env:"AUTH_ISSUER"`
	Audience    []string      `env:"AUTH_AUDIENCE" envSeparator:","`
	ContextKey  string        `env:"AUTH_CONTEXT_KEY" envDefault:"user"`
	AuthScheme  string        `env:"AUTH_SCHEME" envDefault:"Bearer"`
	TokenLookup string        `env:"AUTH_TOKEN_LOOKUP" envDefault:"header:Authorization"`
	HTTPAddr    string        `env:"AUTH_HTTP_ADDR" envDefault:":3000"`
	DBDSN       string        `env:"AUTH_DB_DSN" envDefault:"file:auth.db?cache=shared&mode=rwc"`
	Environment string        `env:"AUTH_ENV" envDefault:"development"`
}

var _ Config = (*AppConfig)(nil)

// LoadConfig parses configuration from environment variables and validates
// it.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate enforces startup invariants. The signing key is mandatory in
// production; development may fall back to an ephemeral key generated by the
// caller.
func (c *AppConfig) Validate() error {
	if c.IsProduction() && c.SigningKey == "" {
		return fmt.Errorf("AUTH_SIGNING_KEY is required in production")
	}

	if c.BcryptCost != 0 && (c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost) {
		return fmt.Errorf("AUTH_BCRYPT_COST %d outside of valid range [%d, %d]", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	if c.TokenTTL < 0 {
		return fmt.Errorf("AUTH_TOKEN_TTL must not be negative")
	}

	return nil
}

// IsProduction reports whether the service runs in production mode
func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

func (c *AppConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c *AppConfig) GetTokenTTL() time.Duration {
	return c.TokenTTL
}

func (c *AppConfig) GetBcryptCost() int {
	return c.BcryptCost
}

func (c *AppConfig) GetIssuer() string {
	return c.Issuer
}

func (c *AppConfig) GetAudience() []string {
	return c.Audience
}

func (c *AppConfig) GetContextKey() string {
	return c.ContextKey
}

func (c *AppConfig) GetAuthScheme() string {
	return c.AuthScheme
}

func (c *AppConfig) GetTokenLookup() string {
	return c.TokenLookup
}

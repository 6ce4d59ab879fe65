package auth

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config configures token signing and password hashing.
type Config struct {
	// JWTSecret is the HS256 signing key.
	JWTSecret string `mapstructure:"jwt_secret"`

	// Issuer is the "iss" claim on issued tokens.
	Issuer string `mapstructure:"issuer"`

	// TokenTTL is the lifetime of access tokens.
	TokenTTL time.Duration `mapstructure:"token_ttl"`

	// BcryptCost is the bcrypt cost parameter.
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

// ApplyDefaults fills zero fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Issuer == "" {
		c.Issuer = "meetscribe"
	}
	if c.TokenTTL == 0 {
		c.TokenTTL = 24 * time.Hour
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		c.BcryptCost = 12
	}
}

// Validate checks that required fields are present.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("auth.jwt_secret must be at least 16 characters")
	}
	return nil
}

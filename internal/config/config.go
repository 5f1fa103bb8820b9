// internal/config/config.go
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// AppConfig holds all application-wide configuration.
type AppConfig struct {
	ServerPort      string `env:"SERVER_PORT" envDefault:"8080"`
	MaxUsers        int    `env:"MAX_USERS" envDefault:"1000"`        // User store capacity
	MaxTransactions int    `env:"MAX_TRANSACTIONS" envDefault:"5000"` // Transaction ledger capacity
}

// LoadConfig reads configuration from environment variables, falling back to
// the defaults above. It returns an error when a variable cannot be parsed
// or a capacity is not positive.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.MaxUsers <= 0 {
		return nil, fmt.Errorf("MAX_USERS must be positive, got %d", cfg.MaxUsers)
	}
	if cfg.MaxTransactions <= 0 {
		return nil, fmt.Errorf("MAX_TRANSACTIONS must be positive, got %d", cfg.MaxTransactions)
	}

	return cfg, nil
}

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime configuration, all sourced from the environment.
type Config struct {
	Port      int    `env:"PORT" envDefault:"7860"`
	Driver    string `env:"VAULT_DB" envDefault:"sqlite3"`
	PublicDir string `env:"VAULT_PUBLIC_DIR" envDefault:"./public"`

	SQLiteDSN string `env:"VAULT_SQLITE_DSN" envDefault:"culture_vault.db"`

	MySQLUser     string `env:"MYSQL_USER" envDefault:"root"`
	MySQLPassword string `env:"MYSQL_PASSWORD"`
	MySQLHost     string `env:"MYSQL_HOST" envDefault:"127.0.0.1"`
	MySQLPort     int    `env:"MYSQL_PORT" envDefault:"3306"`
	MySQLDatabase string `env:"MYSQL_DATABASE" envDefault:"culture_vault"`
	MySQLParams   string `env:"MYSQL_PARAMS" envDefault:"parseTime=true&loc=UTC"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Addr returns the listen address; the service binds all interfaces.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

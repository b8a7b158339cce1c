package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Budgeteer"`
	}

	Data struct {
		// Dir defaults to ~/.budgeteer when unset.
		Dir    string `envconfig:"DATA_DIR" default:""`
		DBFile string `envconfig:"DB_FILE" default:"budgeteer.db"`
	}
}

// DBPath resolves the SQLite file location, creating no directories.
func (c *Config) DBPath() (string, error) {
	dir := c.Data.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}

		dir = filepath.Join(home, ".budgeteer")
	}

	return filepath.Join(dir, c.Data.DBFile), nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

package yaml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ochairo/headless/internal/domain/entities"
)

// ConfigEnv names the environment variable pointing at a config file
const ConfigEnv = "HEADLESS_CONFIG"

// ConfigRepository implements repositories.ConfigRepository using YAML files
type ConfigRepository struct {
	parser *ConfigParser
}

// NewConfigRepository creates a new YAML-based config repository
func NewConfigRepository() *ConfigRepository {
	return &ConfigRepository{parser: NewConfigParser()}
}

// LoadConfig reads the config at path
func (r *ConfigRepository) LoadConfig(_ context.Context, path string) (*entities.Config, error) {
	cfg, err := r.parser.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrConfig, err)
	}
	return cfg, nil
}

// DefaultConfigPath returns the config file to load when none is given on
// the command line: $HEADLESS_CONFIG, else $XDG_CONFIG_HOME/headless/config.yml
// (~/.config/headless/config.yml) when it exists. It returns "" when there is
// nothing to load.
func DefaultConfigPath() string {
	if path := os.Getenv(ConfigEnv); path != "" {
		return path
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, "headless", "config.yml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

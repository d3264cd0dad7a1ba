// Package repositories defines persistence contracts.
package repositories

import (
	"context"

	"github.com/ochairo/headless/internal/domain/entities"
)

// ConfigRepository loads headless settings
type ConfigRepository interface {
	// LoadConfig reads the config at path
	LoadConfig(ctx context.Context, path string) (*entities.Config, error)
}

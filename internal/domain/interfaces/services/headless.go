// Package services defines interfaces for domain service contracts.
package services

import (
	"context"

	"github.com/ochairo/headless/internal/domain/entities"
)

// DependencyService discovers the shared libraries a target links against
type DependencyService interface {
	// FindDependencies returns every dependency record and the resolved paths
	// (in discovery order) that should be imported alongside the target
	FindDependencies(ctx context.Context, target string) ([]entities.Dependency, []string, error)
}

// CommandBuilder assembles analyzer invocations
type CommandBuilder interface {
	Build(opts entities.Options, imports []string) *entities.Command
}

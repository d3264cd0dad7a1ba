// Package services implements domain business logic and use cases.
package services

import (
	"context"
	"fmt"

	"github.com/ochairo/headless/internal/domain/entities"
	"github.com/ochairo/headless/internal/domain/interfaces"
	"github.com/ochairo/headless/internal/domain/interfaces/gateways"
	"github.com/ochairo/headless/internal/domain/interfaces/services"
)

// dependencyService implements DependencyService on top of a resolver gateway
type dependencyService struct {
	resolver gateways.DependencyResolver
	log      interfaces.Logger
}

// NewDependencyService creates a new dependency service
func NewDependencyService(resolver gateways.DependencyResolver, log interfaces.Logger) services.DependencyService {
	return &dependencyService{resolver: resolver, log: log}
}

// FindDependencies resolves the target's shared libraries and keeps the ones
// with a filesystem path. Finding none is reported, not treated as an error.
func (s *dependencyService) FindDependencies(ctx context.Context, target string) ([]entities.Dependency, []string, error) {
	s.log.Info(fmt.Sprintf("Locating linked dependencies for '%s'...", target))

	deps, err := s.resolver.ResolveDependencies(ctx, target)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", entities.ErrDependencyResolution, target, err)
	}

	paths := entities.ResolvedPaths(deps)
	if len(paths) == 0 {
		s.log.Warn("Unable to find any dependencies")
		return deps, paths, nil
	}

	s.log.Info(fmt.Sprintf("Found %d dependencies:", len(paths)))
	return deps, paths, nil
}

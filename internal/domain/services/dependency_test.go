package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/headless/internal/domain/entities"
	"github.com/ochairo/headless/internal/domain/interfaces"
)

// mockResolver is a mock implementation for testing
type mockResolver struct {
	deps   []entities.Dependency
	err    error
	target string
}

func (m *mockResolver) ResolveDependencies(_ context.Context, binaryPath string) ([]entities.Dependency, error) {
	m.target = binaryPath
	return m.deps, m.err
}

func TestDependencyService_FindDependencies(t *testing.T) {
	resolver := &mockResolver{deps: []entities.Dependency{
		{Soname: "linux-vdso.so.1", Address: "0x00007ffc"},
		{Soname: "libc.so.6", Path: "/lib/libc.so.6"},
		{Soname: "libgone.so"},
		{Soname: "libm.so.6", Path: "/lib/libm.so.6"},
	}}
	log := &interfaces.RecordingLogger{}
	svc := NewDependencyService(resolver, log)

	deps, paths, err := svc.FindDependencies(context.Background(), "/usr/bin/true")

	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/true", resolver.target)
	assert.Len(t, deps, 4)
	assert.Equal(t, []string{"/lib/libc.so.6", "/lib/libm.so.6"}, paths)
	assert.Equal(t, []string{
		"Locating linked dependencies for '/usr/bin/true'...",
		"Found 2 dependencies:",
	}, log.Messages("INFO"))
	assert.Empty(t, log.Messages("WARN"))
	assert.Empty(t, log.Messages("DEBUG"), "paths are listed by the display")
}

func TestDependencyService_NoDependencies(t *testing.T) {
	log := &interfaces.RecordingLogger{}
	svc := NewDependencyService(&mockResolver{deps: []entities.Dependency{{Soname: "linux-vdso.so.1"}}}, log)

	_, paths, err := svc.FindDependencies(context.Background(), "/bin/static")

	require.NoError(t, err)
	assert.Empty(t, paths)
	assert.Equal(t, []string{"Unable to find any dependencies"}, log.Messages("WARN"))
}

func TestDependencyService_ResolverError(t *testing.T) {
	resolverErr := errors.New("malformed ELF header")
	svc := NewDependencyService(&mockResolver{err: resolverErr}, &interfaces.NoOpLogger{})

	_, _, err := svc.FindDependencies(context.Background(), "/tmp/garbage")

	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrDependencyResolution)
	assert.ErrorIs(t, err, resolverErr)
	assert.Contains(t, err.Error(), "/tmp/garbage")
}

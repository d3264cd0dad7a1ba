// Package gateways defines the contracts the headless pipeline uses to
// reach the outside world (processes, files, terminal).
package gateways

import (
	"context"

	"github.com/ochairo/headless/internal/domain/entities"
)

// DependencyResolver lists the shared library dependencies of a binary.
// Records are returned in discovery order; Path is empty for unresolved ones.
type DependencyResolver interface {
	ResolveDependencies(ctx context.Context, binaryPath string) ([]entities.Dependency, error)
}

// AnalyzerRunner creates run logs and executes analyzer commands
type AnalyzerRunner interface {
	// CreateLog creates a fresh, empty log file in dir and returns its path
	CreateLog(dir string) (string, error)

	// Run executes cmd with stdout and stderr redirected to logPath and
	// blocks until the process exits
	Run(ctx context.Context, cmd *entities.Command, logPath string) (*entities.RunResult, error)
}

// AnalyzerInspector reads metadata about the installation an analyzer belongs to
type AnalyzerInspector interface {
	Inspect(analyzerPath string) (*entities.AnalyzerInfo, error)
	CheckVersion(info *entities.AnalyzerInfo, constraint string) error
}

// SignatureVerifier checks a detached signature of a file against a keyring
type SignatureVerifier interface {
	VerifyDetached(filePath, sigPath, keyringPath string) error
}

// ChecksumVerifier checks the digest of a file
type ChecksumVerifier interface {
	VerifyChecksum(ctx context.Context, filePath, expected string) error
}

// RandomSource produces random decimal identifiers
type RandomSource interface {
	// Digits returns n independently drawn decimal digits
	Digits(n int) string
}

// Prompter asks the operator yes/no questions
type Prompter interface {
	Confirm(question string) (bool, error)
}

// Display presents pipeline results to the operator
type Display interface {
	ShowDependencies(deps []entities.Dependency)
	ShowCommand(cmd *entities.Command)
}

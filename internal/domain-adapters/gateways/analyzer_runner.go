package gateways

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/go-logr/logr"

	"github.com/ochairo/headless/internal/domain/entities"
	"github.com/ochairo/headless/internal/domain/interfaces/gateways"
)

// LogSuffix ends every run log file name
const LogSuffix = "_headless_log.txt"

const (
	logIDDigits    = 6
	maxLogAttempts = 10
	logPermissions = 0o644
	logOpenFlags   = os.O_RDWR | os.O_CREATE | os.O_EXCL
)

// AnalyzerRunner launches analyzeHeadless through the shell with all output
// redirected to a per-run log file
type AnalyzerRunner struct {
	executor *ProcessExecutor
	random   gateways.RandomSource
	log      logr.Logger
}

// NewAnalyzerRunner creates a new analyzer runner
func NewAnalyzerRunner(executor *ProcessExecutor, random gateways.RandomSource, log logr.Logger) *AnalyzerRunner {
	return &AnalyzerRunner{
		executor: executor,
		random:   random,
		log:      log,
	}
}

// CreateLog creates an empty <6 digits>_headless_log.txt in dir. The file is
// created exclusively; an id already taken by another run is redrawn.
func (r *AnalyzerRunner) CreateLog(dir string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < maxLogAttempts; attempt++ {
		path := filepath.Join(dir, r.random.Digits(logIDDigits)+LogSuffix)

		//nolint:gosec // G304: log directory is chosen by the operator
		f, err := os.OpenFile(path, logOpenFlags, logPermissions)
		if err == nil {
			if err := f.Close(); err != nil {
				return "", fmt.Errorf("%w %s: %w", entities.ErrLogFile, path, err)
			}
			return path, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%w %s: %w", entities.ErrLogFile, path, err)
		}
		r.log.V(1).Info("log file name taken, drawing another", "path", path)
		lastErr = err
	}
	return "", fmt.Errorf("%w in %s after %d attempts: %w", entities.ErrLogFile, dir, maxLogAttempts, lastErr)
}

// Run executes cmd through /bin/sh with "> log 2>&1" appended and waits for it
func (r *AnalyzerRunner) Run(ctx context.Context, cmd *entities.Command, logPath string) (*entities.RunResult, error) {
	script := fmt.Sprintf("%s > %s 2>&1", cmd.ShellString(), entities.ShellQuote(logPath))

	result := r.executor.Execute(ctx, ExecuteConfig{Script: script})

	run := &entities.RunResult{
		ExitCode: result.ExitCode,
		Elapsed:  result.Duration,
		LogPath:  logPath,
	}

	// A non-zero exit is the analyzer's business; only failing to start is ours
	var exitErr *exec.ExitError
	if result.Error != nil && !errors.As(result.Error, &exitErr) {
		if ctx.Err() != nil {
			return run, nil
		}
		return run, fmt.Errorf("failed to start analyzer: %w", result.Error)
	}

	return run, nil
}

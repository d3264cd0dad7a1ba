// Package gateways provides adapter implementations for external tools and the host system.
package gateways

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/go-logr/logr"
)

// waitDelay bounds how long output pipes are drained after the process is killed
const waitDelay = 2 * time.Second

// ProcessExecutor runs external programs
type ProcessExecutor struct {
	shell string
	log   logr.Logger
}

// NewProcessExecutor creates a new process executor using /bin/sh for shell commands
func NewProcessExecutor(log logr.Logger) *ProcessExecutor {
	return &ProcessExecutor{
		shell: "/bin/sh",
		log:   log,
	}
}

// ExecuteConfig contains configuration for running a program.
// Either Args (argv, no shell) or Script (run with sh -c) must be set.
type ExecuteConfig struct {
	Args    []string
	Script  string
	Env     map[string]string // Added to the inherited environment
	Timeout time.Duration     // Zero means no timeout
}

// ExecuteResult contains the result of a program execution
type ExecuteResult struct {
	Success  bool
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	Error    error
}

// Execute runs a program with the given configuration and waits for it to exit
func (pe *ProcessExecutor) Execute(ctx context.Context, config ExecuteConfig) *ExecuteResult {
	startTime := time.Now()
	result := &ExecuteResult{}

	execCtx := ctx
	if config.Timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}

	var cmd *exec.Cmd
	switch {
	case config.Script != "":
		//nolint:gosec // G204: running the operator's command is the purpose of this tool
		cmd = exec.CommandContext(execCtx, pe.shell, "-c", config.Script)
	case len(config.Args) > 0:
		//nolint:gosec // G204: program and arguments come from the operator
		cmd = exec.CommandContext(execCtx, config.Args[0], config.Args[1:]...)
	default:
		result.ExitCode = -1
		result.Error = errors.New("nothing to execute")
		return result
	}

	killProcessGroupOnCancel(cmd)
	cmd.WaitDelay = waitDelay

	if len(config.Env) > 0 {
		env := os.Environ()
		for key, value := range config.Env {
			env = append(env, fmt.Sprintf("%s=%s", key, value))
		}
		cmd.Env = env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	pe.log.V(1).Info("executing", "args", cmd.Args)

	err := cmd.Run()
	result.Duration = time.Since(startTime)
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	if err != nil {
		result.Error = err
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// -1 when the process was killed by a signal
			result.ExitCode = exitErr.ExitCode()
		}
		if config.Timeout > 0 && errors.Is(execCtx.Err(), context.DeadlineExceeded) {
			result.Error = fmt.Errorf("execution timeout after %v: %w", config.Timeout, err)
		}
		pe.log.V(1).Info("execution finished", "exitCode", result.ExitCode, "duration", result.Duration, "error", result.Error.Error())
		return result
	}

	result.Success = true
	result.ExitCode = 0
	pe.log.V(1).Info("execution finished", "exitCode", 0, "duration", result.Duration)
	return result
}

package gateways

import (
	"bufio"
	"context"
	"debug/elf"
	"fmt"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/ochairo/headless/internal/domain/entities"
)

// lddTimeout bounds a single ldd invocation
const lddTimeout = 30 * time.Second

// LddResolver lists dependencies by running the system's ldd
type LddResolver struct {
	executor *ProcessExecutor
	lddPath  string
	log      logr.Logger
}

// NewLddResolver creates a resolver running "ldd" from PATH
func NewLddResolver(executor *ProcessExecutor, log logr.Logger) *LddResolver {
	return &LddResolver{
		executor: executor,
		lddPath:  "ldd",
		log:      log,
	}
}

// ResolveDependencies runs ldd on binaryPath and parses its report
func (r *LddResolver) ResolveDependencies(ctx context.Context, binaryPath string) ([]entities.Dependency, error) {
	result := r.executor.Execute(ctx, ExecuteConfig{
		Args:    []string{r.lddPath, binaryPath},
		Env:     map[string]string{"LC_ALL": "C"},
		Timeout: lddTimeout,
	})

	output := result.Stdout + result.Stderr
	if isStaticReport(output) {
		// ldd says the same about files that are not ELF at all
		if err := checkELF(binaryPath); err != nil {
			return nil, err
		}
		r.log.V(1).Info("target is not dynamically linked", "target", binaryPath)
		return nil, nil
	}

	if !result.Success {
		return nil, fmt.Errorf("ldd failed (exit %d): %w: %s",
			result.ExitCode, result.Error, strings.TrimSpace(result.Stderr))
	}

	deps, err := ParseLddOutput(result.Stdout)
	if err != nil {
		return nil, err
	}
	r.log.V(1).Info("ldd report parsed", "target", binaryPath, "records", len(deps))
	return deps, nil
}

func checkELF(path string) error {
	f, err := elf.Open(path)
	if err != nil {
		return fmt.Errorf("%s is not a valid ELF file: %w", path, err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()
	return nil
}

func isStaticReport(output string) bool {
	return strings.Contains(output, "not a dynamic executable") ||
		strings.Contains(output, "statically linked")
}

// ParseLddOutput parses the report printed by ldd. Recognized line shapes:
//
//	libc.so.6 => /lib/x86_64-linux-gnu/libc.so.6 (0x00007f...)
//	libfoo.so => not found
//	/lib64/ld-linux-x86-64.so.2 (0x00007f...)
//	linux-vdso.so.1 (0x00007ffd...)
func ParseLddOutput(output string) ([]entities.Dependency, error) {
	var deps []entities.Dependency

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		dep, ok := parseLddLine(line)
		if !ok {
			return nil, fmt.Errorf("unexpected ldd output line: %q", line)
		}
		deps = append(deps, dep)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ldd output: %w", err)
	}

	return deps, nil
}

func parseLddLine(line string) (entities.Dependency, bool) {
	var dep entities.Dependency

	// Trailing load address
	if open := strings.LastIndex(line, " ("); open >= 0 && strings.HasSuffix(line, ")") {
		dep.Address = line[open+2 : len(line)-1]
		line = strings.TrimSpace(line[:open])
	}

	if name, target, found := strings.Cut(line, "=>"); found {
		dep.Soname = strings.TrimSpace(name)
		target = strings.TrimSpace(target)
		if target != "not found" && target != "" {
			dep.Path = target
		}
		return dep, dep.Soname != ""
	}

	if strings.ContainsAny(line, " \t") {
		return dep, false
	}

	dep.Soname = line
	if strings.HasPrefix(line, "/") {
		dep.Path = line
	}
	return dep, true
}

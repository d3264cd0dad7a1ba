package main

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/headless/internal/domain/entities"
	"github.com/ochairo/headless/internal/external-adapters/yaml"
)

// isolate keeps tests away from the developer's own config file
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(yaml.ConfigEnv, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
}

type fixture struct {
	target   string
	analyzer string
	logDir   string
}

// newFixture creates a target file, a fake analyzeHeadless printing its
// arguments, and an empty log directory
func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	fx := &fixture{
		target:   filepath.Join(dir, "target"),
		analyzer: filepath.Join(dir, "support", "analyzeHeadless"),
		logDir:   filepath.Join(dir, "logs"),
	}
	require.NoError(t, os.WriteFile(fx.target, []byte("\x7fELF"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Dir(fx.analyzer), 0o755))
	require.NoError(t, os.WriteFile(fx.analyzer, []byte("#!/bin/sh\nfor a in \"$@\"; do echo \"$a\"; done\n"), 0o755))
	require.NoError(t, os.MkdirAll(fx.logDir, 0o755))
	return fx
}

func (fx *fixture) logs(t *testing.T) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(fx.logDir, "*_headless_log.txt"))
	require.NoError(t, err)
	return matches
}

func runCLI(stdin string, args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Help(t *testing.T) {
	isolate(t)

	for _, args := range [][]string{{"-h"}, {"--help"}} {
		code, stdout, _ := runCLI("", args...)

		assert.Equal(t, exitOK, code)
		assert.Contains(t, stdout, "OPTIONS:")
		assert.Contains(t, stdout, "EXAMPLES:")
		assert.Contains(t, stdout, "automate your automation")
	}
}

func TestRun_MissingRequiredShowsUsage(t *testing.T) {
	isolate(t)
	fx := newFixture(t)

	tests := map[string][]string{
		"nothing":          nil,
		"no analyzer":      {"-t", fx.target},
		"no target":        {"-a", fx.analyzer},
		"no target banner": {"--no-banner", "-a", fx.analyzer},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			code, stdout, _ := runCLI("y\n", args...)

			assert.Equal(t, exitOK, code)
			assert.Contains(t, stdout, "OPTIONS:")
			assert.NotContains(t, stdout, "COMMAND")
			assert.Empty(t, fx.logs(t))
		})
	}
}

func TestRun_TargetNotAFile(t *testing.T) {
	isolate(t)
	fx := newFixture(t)
	missing := filepath.Join(t.TempDir(), "missing")

	code, stdout, _ := runCLI("y\n", "--no-banner", "-t", missing, "-a", fx.analyzer, "-l", fx.logDir)

	assert.Equal(t, exitNotAFile, code)
	assert.Contains(t, stdout, fmt.Sprintf("'%s' is not a file", missing))
	assert.NotContains(t, stdout, "COMMAND")
	assert.Empty(t, fx.logs(t))
}

func TestRun_EndToEnd(t *testing.T) {
	isolate(t)
	fx := newFixture(t)

	code, stdout, stderr := runCLI("Y\n", "--no-banner",
		"-t", fx.target, "-a", fx.analyzer, "-l", fx.logDir,
		"-s", "Script.py", "-s", "Export.py out dir")

	require.Equal(t, exitOK, code, "stdout: %s\nstderr: %s", stdout, stderr)

	pattern := regexp.MustCompile(regexp.QuoteMeta(fx.analyzer) +
		` /tmp (project_\d{6}) -postScript Script.py -postScript "Export.py out dir"\n`)
	match := pattern.FindStringSubmatch(stdout)
	require.NotNil(t, match, stdout)
	assert.Contains(t, stdout, "No project folder provided, using: '/tmp'")
	assert.Contains(t, stdout, "Run this command? (Y/N)")
	assert.Contains(t, stdout, "Analyzer exited with code: 0")
	assert.Contains(t, stdout, "Analysis complete, elapsed (sec): ")

	logs := fx.logs(t)
	require.Len(t, logs, 1)
	assert.Regexp(t, regexp.MustCompile(`/\d{6}_headless_log\.txt$`), logs[0])
	logged, err := os.ReadFile(logs[0])
	require.NoError(t, err)
	assert.Equal(t, "/tmp\n"+match[1]+"\n-postScript\nScript.py\n-postScript\nExport.py out dir\n", string(logged))
}

func TestRun_Declined(t *testing.T) {
	isolate(t)
	fx := newFixture(t)

	for _, answer := range []string{"n\n", "yes\n", "\n", ""} {
		code, stdout, _ := runCLI(answer, "--no-banner", "-t", fx.target, "-a", fx.analyzer, "-l", fx.logDir)

		assert.Equal(t, exitOK, code)
		assert.Contains(t, stdout, "COMMAND")
		assert.NotContains(t, stdout, "Created log file")
		assert.Empty(t, fx.logs(t), "answer %q must not create a log", answer)
	}
}

func TestRun_AssumeYesWithFolderAndProject(t *testing.T) {
	isolate(t)
	fx := newFixture(t)

	code, stdout, _ := runCLI("", "--no-banner", "-y",
		"-t", fx.target, "-a", fx.analyzer, "-l", fx.logDir, "-f", "/data/ghidra", "-p", "fw")

	require.Equal(t, exitOK, code, stdout)
	assert.Contains(t, stdout, fx.analyzer+" /data/ghidra fw\n")
	assert.NotContains(t, stdout, "Run this command?")
	assert.Len(t, fx.logs(t), 1)
}

func TestRun_LogDirMissing(t *testing.T) {
	isolate(t)
	fx := newFixture(t)

	code, stdout, _ := runCLI("y\n", "--no-banner",
		"-t", fx.target, "-a", fx.analyzer, "-l", filepath.Join(fx.logDir, "nope"))

	assert.Equal(t, exitLogFile, code)
	assert.Contains(t, stdout, "Unable to create log file")
	assert.NotContains(t, stdout, "Analyzer exited")
}

func TestRun_DependencyFailure(t *testing.T) {
	isolate(t)
	fx := newFixture(t)

	for _, resolver := range []string{"elf", "ldd", ""} {
		t.Run("resolver="+resolver, func(t *testing.T) {
			args := []string{"--no-banner", "-d", "-t", fx.target, "-a", fx.analyzer, "-l", fx.logDir}
			if resolver != "" {
				args = append(args, "-r", resolver)
			}

			code, stdout, _ := runCLI("y\n", args...)

			assert.Equal(t, exitDependency, code, stdout)
			assert.Contains(t, stdout, "dependency resolution failed")
			assert.NotContains(t, stdout, "Unable to find any dependencies")
			assert.NotContains(t, stdout, "COMMAND")
			assert.Empty(t, fx.logs(t))
		})
	}
}

func TestRun_ConfigFile(t *testing.T) {
	isolate(t)
	fx := newFixture(t)
	config := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(config, []byte(fmt.Sprintf(`analyzer: %s
project: from_config
scripts:
  - Config.py
log_dir: %s
`, fx.analyzer, fx.logDir)), 0o600))

	t.Run("config supplies defaults", func(t *testing.T) {
		code, stdout, _ := runCLI("", "--no-banner", "-y", "-c", config, "-t", fx.target)

		require.Equal(t, exitOK, code, stdout)
		assert.Contains(t, stdout, fx.analyzer+" /tmp from_config -postScript Config.py\n")
	})

	t.Run("flags override config", func(t *testing.T) {
		code, stdout, _ := runCLI("", "--no-banner", "-y", "-c", config, "-t", fx.target, "-p", "cli", "-s", "Cli.py")

		require.Equal(t, exitOK, code, stdout)
		assert.Contains(t, stdout, fx.analyzer+" /tmp cli -postScript Cli.py\n")
	})

	t.Run("environment variable", func(t *testing.T) {
		t.Setenv(yaml.ConfigEnv, config)
		code, stdout, _ := runCLI("", "--no-banner", "-y", "-t", fx.target)

		require.Equal(t, exitOK, code, stdout)
		assert.Contains(t, stdout, " from_config ")
	})
}

func TestRun_ConfigErrors(t *testing.T) {
	isolate(t)
	fx := newFixture(t)
	bad := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("resolver: objdump\n"), 0o600))

	tests := map[string][]string{
		"bad config file":         {"-c", bad, "-t", fx.target, "-a", fx.analyzer},
		"missing config file":     {"-c", bad + ".missing", "-t", fx.target, "-a", fx.analyzer},
		"unknown resolver":        {"-r", "objdump", "-t", fx.target, "-a", fx.analyzer},
		"unknown flag":            {"--bogus"},
		"positional argument":     {"extra"},
		"signature needs keyring": {"--signature", fx.target, "-t", fx.target, "-a", fx.analyzer},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			code, _, _ := runCLI("y\n", append([]string{"--no-banner"}, args...)...)
			assert.Equal(t, exitConfig, code)
			assert.Empty(t, fx.logs(t))
		})
	}
}

func TestRun_AnalyzerVersion(t *testing.T) {
	isolate(t)
	fx := newFixture(t)
	root := filepath.Dir(filepath.Dir(fx.analyzer))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Ghidra"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Ghidra", "application.properties"),
		[]byte("application.version=10.4\n"), 0o600))

	code, _, _ := runCLI("", "--no-banner", "-y", "-t", fx.target, "-a", fx.analyzer, "-l", fx.logDir,
		"--min-analyzer-version", ">= 10.3")
	assert.Equal(t, exitOK, code)

	code, stdout, _ := runCLI("", "--no-banner", "-y", "-t", fx.target, "-a", fx.analyzer, "-l", fx.logDir,
		"--min-analyzer-version", ">= 11")
	assert.Equal(t, exitAnalyzerVersion, code)
	assert.Contains(t, stdout, "does not satisfy")
}

func TestRun_Checksum(t *testing.T) {
	isolate(t)
	fx := newFixture(t)
	sum := sha256.Sum256([]byte("\x7fELF"))

	code, stdout, _ := runCLI("", "--no-banner", "-y", "-t", fx.target, "-a", fx.analyzer, "-l", fx.logDir,
		"--sha256", hex.EncodeToString(sum[:]))
	assert.Equal(t, exitOK, code, stdout)
	assert.Contains(t, stdout, "verified")

	code, stdout, _ = runCLI("", "--no-banner", "-y", "-t", fx.target, "-a", fx.analyzer, "-l", fx.logDir,
		"--sha256", strings.Repeat("0", 64))
	assert.Equal(t, exitChecksum, code)
	assert.Contains(t, stdout, "mismatch")
	assert.Len(t, fx.logs(t), 1)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, exitOK},
		{entities.ErrAborted, exitOK},
		{fmt.Errorf("wrapped: %w", entities.ErrNotAFile), exitNotAFile},
		{entities.ErrDependencyResolution, exitDependency},
		{entities.ErrLogFile, exitLogFile},
		{entities.ErrSignature, exitSignature},
		{entities.ErrConfig, exitConfig},
		{entities.ErrAnalyzerVersion, exitAnalyzerVersion},
		{entities.ErrChecksum, exitChecksum},
		{assert.AnError, exitFailure},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, exitCode(tt.err), "exitCode(%v)", tt.err)
	}
}

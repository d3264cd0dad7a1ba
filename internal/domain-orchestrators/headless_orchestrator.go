// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"fmt"
	"os"

	"github.com/ochairo/headless/internal/domain/entities"
	"github.com/ochairo/headless/internal/domain/interfaces"
	"github.com/ochairo/headless/internal/domain/interfaces/gateways"
	"github.com/ochairo/headless/internal/domain/interfaces/services"
)

// ConfirmQuestion is asked before the analyzer is started
const ConfirmQuestion = "Run this command? (Y/N)"

// HeadlessOrchestrator runs the headless pipeline: validate inputs, find
// dependencies, build the command, confirm and run it
type HeadlessOrchestrator struct {
	dependencies services.DependencyService
	builder      services.CommandBuilder
	runner       gateways.AnalyzerRunner
	inspector    gateways.AnalyzerInspector
	verifier     gateways.SignatureVerifier
	checksums    gateways.ChecksumVerifier
	prompter     gateways.Prompter
	display      gateways.Display
	log          interfaces.Logger
}

// HeadlessDeps holds the collaborators of the orchestrator
type HeadlessDeps struct {
	Dependencies services.DependencyService
	Builder      services.CommandBuilder
	Runner       gateways.AnalyzerRunner
	Inspector    gateways.AnalyzerInspector
	Verifier     gateways.SignatureVerifier
	Checksums    gateways.ChecksumVerifier
	Prompter     gateways.Prompter
	Display      gateways.Display
	Log          interfaces.Logger
}

// NewHeadlessOrchestrator creates a new headless orchestrator
func NewHeadlessOrchestrator(deps HeadlessDeps) *HeadlessOrchestrator {
	log := deps.Log
	if log == nil {
		log = &interfaces.NoOpLogger{}
	}
	return &HeadlessOrchestrator{
		dependencies: deps.Dependencies,
		builder:      deps.Builder,
		runner:       deps.Runner,
		inspector:    deps.Inspector,
		verifier:     deps.Verifier,
		checksums:    deps.Checksums,
		prompter:     deps.Prompter,
		display:      deps.Display,
		log:          log,
	}
}

// HeadlessResult contains everything a completed pipeline produced
type HeadlessResult struct {
	Analyzer     *entities.AnalyzerInfo
	Dependencies []entities.Dependency
	Command      *entities.Command
	Run          *entities.RunResult
}

// Run executes the pipeline for opts. It returns entities.ErrAborted when
// the operator declines to run the command; nothing is started in that case.
func (o *HeadlessOrchestrator) Run(ctx context.Context, opts entities.Options) (*HeadlessResult, error) {
	result := &HeadlessResult{}

	// Step 1: Inputs must be regular files
	for _, path := range []string{opts.Target, opts.Analyzer} {
		if err := requireFile(path); err != nil {
			o.log.Error(fmt.Sprintf("'%s' is not a file", path))
			return nil, err
		}
	}

	// Step 2: Target integrity and provenance
	if opts.Checksum != "" {
		if err := o.checksums.VerifyChecksum(ctx, opts.Target, opts.Checksum); err != nil {
			return nil, err
		}
		o.log.Info(fmt.Sprintf("SHA-256 of '%s' verified", opts.Target))
	}
	if opts.Signature != "" {
		if err := o.verifier.VerifyDetached(opts.Target, opts.Signature, opts.Keyring); err != nil {
			return nil, err
		}
		o.log.Info(fmt.Sprintf("Signature of '%s' verified", opts.Target))
	}

	// Step 3: Analyzer installation
	info, err := o.inspectAnalyzer(opts)
	if err != nil {
		return nil, err
	}
	result.Analyzer = info

	// Step 4: Dependencies
	var imports []string
	if opts.Dependencies {
		deps, paths, err := o.dependencies.FindDependencies(ctx, opts.Target)
		if err != nil {
			return nil, err
		}
		result.Dependencies = deps
		imports = paths
		o.display.ShowDependencies(deps)
	}

	// Step 5: Command
	cmd := o.builder.Build(opts, imports)
	result.Command = cmd
	o.display.ShowCommand(cmd)

	// Step 6: Confirmation
	if !opts.AssumeYes {
		ok, err := o.prompter.Confirm(ConfirmQuestion)
		if err != nil {
			return result, err
		}
		if !ok {
			return result, entities.ErrAborted
		}
	}

	// Step 7: Run
	logDir := opts.LogDir
	if logDir == "" {
		logDir = entities.DefaultLogDir
	}
	logPath, err := o.runner.CreateLog(logDir)
	if err != nil {
		o.log.Error(fmt.Sprintf("Unable to create log file, err: %v", err))
		return result, err
	}
	o.log.Info(fmt.Sprintf("Created log file '%s'", logPath))

	o.log.Info("Running command, analysis might take a while!")
	run, err := o.runner.Run(ctx, cmd, logPath)
	if err != nil {
		return result, err
	}
	result.Run = run

	o.log.Info(fmt.Sprintf("Analyzer exited with code: %d", run.ExitCode))
	o.log.Info(fmt.Sprintf("Analysis complete, elapsed (sec): %d", run.ElapsedSeconds()))
	o.log.Info(fmt.Sprintf("Check %s for details", run.LogPath))

	return result, nil
}

func (o *HeadlessOrchestrator) inspectAnalyzer(opts entities.Options) (*entities.AnalyzerInfo, error) {
	info, err := o.inspector.Inspect(opts.Analyzer)
	if err != nil {
		// Metadata is informational unless a version constraint depends on it
		o.log.Warn(fmt.Sprintf("Unable to inspect analyzer installation: %v", err))
	}
	if info == nil {
		info = &entities.AnalyzerInfo{Path: opts.Analyzer}
	}
	if info.KnownVersion() {
		o.log.Debug("analyzer installation", interfaces.F("version", info.Version), interfaces.F("root", info.InstallDir))
	}

	if err := o.inspector.CheckVersion(info, opts.MinAnalyzerVersion); err != nil {
		return nil, err
	}
	return info, nil
}

// requireFile fails with ErrNotAFile unless path names a regular file
func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("'%s': %w: %w", path, entities.ErrNotAFile, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("'%s': %w", path, entities.ErrNotAFile)
	}
	return nil
}

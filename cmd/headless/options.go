package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/ochairo/headless/internal/domain/entities"
	"github.com/ochairo/headless/internal/domain/interfaces/repositories"
	"github.com/ochairo/headless/internal/external-adapters/yaml"
)

// loadConfig reads the config file named on the command line, or the
// default one when it exists. No config yields an empty Config.
func loadConfig(ctx context.Context, path string) (*entities.Config, error) {
	return loadConfigFrom(ctx, yaml.NewConfigRepository(), path)
}

func loadConfigFrom(ctx context.Context, repo repositories.ConfigRepository, path string) (*entities.Config, error) {
	if path == "" {
		path = yaml.DefaultConfigPath()
	}
	if path == "" {
		return &entities.Config{}, nil
	}
	return repo.LoadConfig(ctx, path)
}

// resolveOptions merges the command line over the config file. A flag only
// overrides the config when it was given explicitly.
func resolveOptions(flags *pflag.FlagSet, f *flagValues, cfg *entities.Config) (entities.Options, error) {
	pick := func(name, flagValue, configValue string) string {
		if flags.Changed(name) || configValue == "" {
			return flagValue
		}
		return configValue
	}

	opts := entities.Options{
		Target:             f.target,
		Analyzer:           pick("analyzer", f.analyzer, cfg.Analyzer),
		Folder:             pick("folder", f.folder, cfg.Folder),
		Project:            pick("project", f.project, cfg.Project),
		Scripts:            entities.NewScriptSpecs(f.scripts),
		Dependencies:       f.dependencies,
		Resolver:           strings.ToLower(pick("resolver", f.resolver, cfg.Resolver)),
		LogDir:             pick("log-dir", f.logDir, cfg.LogDir),
		AssumeYes:          f.assumeYes,
		Checksum:           f.checksum,
		Signature:          f.signature,
		Keyring:            pick("keyring", f.keyring, cfg.Keyring),
		MinAnalyzerVersion: pick("min-analyzer-version", f.minVersion, cfg.MinAnalyzerVersion),
	}

	if !flags.Changed("script") && len(cfg.Scripts) > 0 {
		opts.Scripts = entities.NewScriptSpecs(cfg.Scripts)
	}
	if !flags.Changed("dependencies") && cfg.Dependencies != nil {
		opts.Dependencies = *cfg.Dependencies
	}

	switch opts.Resolver {
	case entities.ResolverLdd, entities.ResolverELF:
	default:
		return opts, fmt.Errorf("%w: unknown resolver %q (want %q or %q)",
			entities.ErrConfig, opts.Resolver, entities.ResolverLdd, entities.ResolverELF)
	}

	for _, s := range opts.Scripts {
		if s.Name() == "" {
			return opts, fmt.Errorf("%w: empty --script value", entities.ErrConfig)
		}
	}

	if opts.Signature != "" && opts.Keyring == "" {
		return opts, fmt.Errorf("%w: --signature requires --keyring", entities.ErrConfig)
	}

	return opts, nil
}

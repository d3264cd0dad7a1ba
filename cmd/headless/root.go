package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ochairo/headless/internal/domain/entities"
	"github.com/ochairo/headless/internal/external-adapters/console"
	"github.com/ochairo/headless/internal/external-adapters/yaml"
)

// flagValues holds the raw command line
type flagValues struct {
	target       string
	analyzer     string
	folder       string
	project      string
	scripts      []string
	dependencies bool
	resolver     string
	logDir       string
	assumeYes    bool
	configPath   string
	checksum     string
	signature    string
	keyring      string
	minVersion   string
	verbose      bool
	noColor      bool
	noBanner     bool
}

// run executes the headless command line and returns the process exit code
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var runErr error
	cmd := newRootCmd(stdin, stdout, &runErr)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		console.PrintUsage(stdout)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCode(fmt.Errorf("%w: %w", entities.ErrConfig, err))
	}
	return exitCode(runErr)
}

func newRootCmd(stdin io.Reader, stdout io.Writer, runErr *error) *cobra.Command {
	f := &flagValues{}

	cmd := &cobra.Command{
		Use:           "headless",
		Short:         "Run Ghidra's analyzeHeadless against a binary and its dependencies",
		Long:          "headless builds an analyzeHeadless invocation for a target binary, optionally importing its shared library dependencies, and runs it with all output captured in a log file.",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(c *cobra.Command, _ []string) error {
			*runErr = execute(c, f, stdin, stdout)
			return nil
		},
	}

	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if !f.noBanner {
			console.PrintBanner(c.OutOrStdout())
		}
		console.PrintUsage(c.OutOrStdout())
	})
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", entities.ErrConfig, err)
	})

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.StringVarP(&f.target, "target", "t", "", "Path of the target ELF to analyze")
	flags.StringVarP(&f.analyzer, "analyzer", "a", "", "Path to Ghidra's analyzeHeadless script")
	flags.StringVarP(&f.folder, "folder", "f", "", "Ghidra project folder (default: /tmp)")
	flags.StringVarP(&f.project, "project", "p", "", "Ghidra project name (default: project_<6 random digits>)")
	flags.StringArrayVarP(&f.scripts, "script", "s", nil, "Post-script to run, optionally with arguments (repeatable)")
	flags.BoolVarP(&f.dependencies, "dependencies", "d", false, "Find and import the target's shared library dependencies")
	flags.StringVarP(&f.resolver, "resolver", "r", entities.ResolverLdd, "Dependency resolver: ldd or elf")
	flags.StringVarP(&f.logDir, "log-dir", "l", entities.DefaultLogDir, "Directory for the run log")
	flags.BoolVarP(&f.assumeYes, "yes", "y", false, "Run without asking for confirmation")
	flags.StringVarP(&f.configPath, "config", "c", "", "YAML config file (default: $"+yaml.ConfigEnv+" or ~/.config/headless/config.yml)")
	flags.StringVar(&f.checksum, "sha256", "", "Expected SHA-256 of the target, hex")
	flags.StringVar(&f.signature, "signature", "", "Detached OpenPGP signature of the target")
	flags.StringVar(&f.keyring, "keyring", "", "Public keyring used to check --signature")
	flags.StringVar(&f.minVersion, "min-analyzer-version", "", `Required Ghidra version constraint, e.g. ">= 10.3"`)
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "Show debug output")
	flags.BoolVar(&f.noColor, "no-color", false, "Disable colored output")
	flags.BoolVar(&f.noBanner, "no-banner", false, "Do not print the banner")

	return cmd
}

// execute runs one headless pipeline; the returned error decides the exit code
func execute(c *cobra.Command, f *flagValues, stdin io.Reader, stdout io.Writer) error {
	noColor := f.noColor || os.Getenv("NO_COLOR") != ""
	log := console.NewLogger(stdout, console.Options{Verbose: f.verbose, NoColor: noColor})

	if !f.noBanner {
		console.PrintBanner(stdout)
	}

	cfg, err := loadConfig(c.Context(), f.configPath)
	if err != nil {
		log.Error(err.Error())
		return err
	}

	opts, err := resolveOptions(c.Flags(), f, cfg)
	if err != nil {
		log.Error(err.Error())
		return err
	}

	// Missing required inputs show the usage and exit successfully
	if opts.Target == "" || opts.Analyzer == "" {
		console.PrintUsage(stdout)
		return nil
	}

	orch := newOrchestrator(opts, log, stdin, stdout, noColor)
	_, err = orch.Run(c.Context(), opts)
	switch {
	case err == nil, errors.Is(err, entities.ErrAborted):
	case errors.Is(err, entities.ErrNotAFile), errors.Is(err, entities.ErrLogFile):
		// Already reported by the orchestrator
	default:
		log.Error(err.Error())
	}
	return err
}

package main

import (
	"io"

	gw "github.com/ochairo/headless/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/headless/internal/domain-orchestrators"
	"github.com/ochairo/headless/internal/domain/entities"
	"github.com/ochairo/headless/internal/domain/interfaces/gateways"
	"github.com/ochairo/headless/internal/domain/services"
	"github.com/ochairo/headless/internal/external-adapters/console"
	"github.com/ochairo/headless/internal/external-adapters/gpg"
)

// newOrchestrator wires the production adapters behind the headless pipeline
func newOrchestrator(opts entities.Options, log *console.Logger, stdin io.Reader, stdout io.Writer, noColor bool) *orchestrators.HeadlessOrchestrator {
	lr := log.Logr()
	executor := gw.NewProcessExecutor(lr.WithName("exec"))
	random := gw.NewRandomSource()

	var resolver gateways.DependencyResolver
	switch opts.Resolver {
	case entities.ResolverELF:
		resolver = gw.NewELFResolver(lr.WithName("elf"))
	default:
		resolver = gw.NewLddResolver(executor, lr.WithName("ldd"))
	}

	return orchestrators.NewHeadlessOrchestrator(orchestrators.HeadlessDeps{
		Dependencies: services.NewDependencyService(resolver, log),
		Builder:      services.NewCommandBuilder(random, log),
		Runner:       gw.NewAnalyzerRunner(executor, random, lr.WithName("runner")),
		Inspector:    gw.NewAnalyzerInspector(lr.WithName("inspector")),
		Verifier:     gpg.NewVerifier(),
		Checksums:    gw.NewChecksumVerifier(lr.WithName("checksum")),
		Prompter:     console.NewPrompter(stdin, stdout, noColor),
		Display:      console.NewDisplay(stdout, noColor),
		Log:          log,
	})
}

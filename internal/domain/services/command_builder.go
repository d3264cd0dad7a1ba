package services

import (
	"fmt"

	"github.com/ochairo/headless/internal/domain/entities"
	"github.com/ochairo/headless/internal/domain/interfaces"
	"github.com/ochairo/headless/internal/domain/interfaces/gateways"
	"github.com/ochairo/headless/internal/domain/interfaces/services"
)

// ProjectPrefix starts every generated project name
const ProjectPrefix = "project_"

// projectDigits is the number of random digits in a generated project name
const projectDigits = 6

type commandBuilder struct {
	random gateways.RandomSource
	log    interfaces.Logger
}

// NewCommandBuilder creates a command builder drawing default project names from random
func NewCommandBuilder(random gateways.RandomSource, log interfaces.Logger) services.CommandBuilder {
	return &commandBuilder{random: random, log: log}
}

// Build assembles the analyzer invocation: analyzer, folder, project, one
// -import per path and one -postScript per script spec, in that order
func (b *commandBuilder) Build(opts entities.Options, imports []string) *entities.Command {
	b.log.Info("Building command to send to the analyzeHeadless script...")

	folder := opts.Folder
	if folder == "" {
		folder = entities.DefaultFolder
		b.log.Warn(fmt.Sprintf("No project folder provided, using: '%s'", folder))
	}

	project := opts.Project
	if project == "" {
		project = ProjectPrefix + b.random.Digits(projectDigits)
		b.log.Warn(fmt.Sprintf("No project name provided, created one: '%s'", project))
	}

	cmd := &entities.Command{
		Analyzer: opts.Analyzer,
		Folder:   folder,
		Project:  project,
	}
	if len(imports) > 0 {
		cmd.Imports = append([]string(nil), imports...)
	}
	if len(opts.Scripts) > 0 {
		cmd.PostScripts = append([]entities.ScriptSpec(nil), opts.Scripts...)
	}

	return cmd
}

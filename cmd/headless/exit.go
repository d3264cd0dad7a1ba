package main

import (
	"errors"

	"github.com/ochairo/headless/internal/domain/entities"
)

// Process exit codes, one per error category
const (
	exitOK              = 0
	exitFailure         = 1
	exitNotAFile        = 2
	exitDependency      = 3
	exitLogFile         = 4
	exitSignature       = 5
	exitConfig          = 6
	exitAnalyzerVersion = 7
	exitChecksum        = 8
)

func exitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, entities.ErrAborted):
		return exitOK
	case errors.Is(err, entities.ErrNotAFile):
		return exitNotAFile
	case errors.Is(err, entities.ErrDependencyResolution):
		return exitDependency
	case errors.Is(err, entities.ErrLogFile):
		return exitLogFile
	case errors.Is(err, entities.ErrSignature):
		return exitSignature
	case errors.Is(err, entities.ErrConfig):
		return exitConfig
	case errors.Is(err, entities.ErrAnalyzerVersion):
		return exitAnalyzerVersion
	case errors.Is(err, entities.ErrChecksum):
		return exitChecksum
	default:
		return exitFailure
	}
}

package entities

import "errors"

// Error categories reported by the headless pipeline
var (
	ErrAborted              = errors.New("run aborted by operator")
	ErrNotAFile             = errors.New("not a file")
	ErrDependencyResolution = errors.New("dependency resolution failed")
	ErrLogFile              = errors.New("unable to create log file")
	ErrSignature            = errors.New("signature verification failed")
	ErrChecksum             = errors.New("checksum verification failed")
	ErrConfig               = errors.New("invalid configuration")
	ErrAnalyzerVersion      = errors.New("analyzer version check failed")
)

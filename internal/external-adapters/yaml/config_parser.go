// Package yaml provides YAML-based configuration parsing and loading.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ochairo/headless/internal/domain/entities"
)

// yamlConfig represents the raw YAML structure
type yamlConfig struct {
	Analyzer           string   `yaml:"analyzer"`
	Folder             string   `yaml:"folder"`
	Project            string   `yaml:"project"`
	Scripts            []string `yaml:"scripts"`
	Dependencies       *bool    `yaml:"dependencies"`
	Resolver           string   `yaml:"resolver"`
	LogDir             string   `yaml:"log_dir"`
	Keyring            string   `yaml:"keyring"`
	MinAnalyzerVersion string   `yaml:"min_analyzer_version"`
}

// ConfigParser parses headless YAML config files
type ConfigParser struct{}

// NewConfigParser creates a new YAML parser
func NewConfigParser() *ConfigParser {
	return &ConfigParser{}
}

// ParseFile parses a YAML config file into a Config entity
func (p *ConfigParser) ParseFile(filePath string) (*entities.Config, error) {
	//nolint:gosec // G304: filePath is the operator's config file
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes into a Config entity. Unknown keys are rejected.
func (p *ConfigParser) Parse(data []byte) (*entities.Config, error) {
	var raw yamlConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	resolver := strings.ToLower(strings.TrimSpace(raw.Resolver))
	switch resolver {
	case "", entities.ResolverLdd, entities.ResolverELF:
	default:
		return nil, fmt.Errorf("unknown resolver %q (want %q or %q)", raw.Resolver, entities.ResolverLdd, entities.ResolverELF)
	}

	for i, s := range raw.Scripts {
		if strings.TrimSpace(s) == "" {
			return nil, fmt.Errorf("scripts[%d] is empty", i)
		}
	}

	return &entities.Config{
		Analyzer:           expandHome(raw.Analyzer),
		Folder:             expandHome(raw.Folder),
		Project:            raw.Project,
		Scripts:            raw.Scripts,
		Dependencies:       raw.Dependencies,
		Resolver:           resolver,
		LogDir:             expandHome(raw.LogDir),
		Keyring:            expandHome(raw.Keyring),
		MinAnalyzerVersion: raw.MinAnalyzerVersion,
	}, nil
}

// expandHome replaces a leading "~/" with the user's home directory
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + path[1:]
}

package gateways

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/hashicorp/go-version"

	"github.com/ochairo/headless/internal/domain/entities"
)

// applicationProperties is the Ghidra file carrying the release metadata,
// relative to the installation root
const applicationProperties = "Ghidra/application.properties"

// AnalyzerInspector reads Ghidra installation metadata next to analyzeHeadless
type AnalyzerInspector struct {
	log logr.Logger
}

// NewAnalyzerInspector creates a new analyzer inspector
func NewAnalyzerInspector(log logr.Logger) *AnalyzerInspector {
	return &AnalyzerInspector{log: log}
}

// Inspect locates the installation of analyzerPath (<root>/support/analyzeHeadless)
// and reads its application.properties. A missing properties file is not an
// error: the returned info simply has no version.
func (i *AnalyzerInspector) Inspect(analyzerPath string) (*entities.AnalyzerInfo, error) {
	resolved, err := filepath.EvalSymlinks(analyzerPath)
	if err != nil {
		resolved = analyzerPath
	}
	root := filepath.Dir(filepath.Dir(resolved))

	info := &entities.AnalyzerInfo{
		Path:       analyzerPath,
		InstallDir: root,
	}

	propsPath := filepath.Join(root, applicationProperties)
	props, err := readProperties(propsPath)
	if errors.Is(err, os.ErrNotExist) {
		i.log.V(1).Info("no application.properties found", "path", propsPath)
		return info, nil
	}
	if err != nil {
		return info, fmt.Errorf("failed to read %s: %w", propsPath, err)
	}

	info.Name = props["application.name"]
	info.Version = props["application.version"]
	info.ReleaseName = props["application.release.name"]
	i.log.V(1).Info("analyzer installation", "root", root, "version", info.Version, "release", info.ReleaseName)
	return info, nil
}

// CheckVersion verifies the installation satisfies constraint (e.g. ">= 10.3, < 12")
func (i *AnalyzerInspector) CheckVersion(info *entities.AnalyzerInfo, constraint string) error {
	if constraint == "" {
		return nil
	}

	constraints, err := version.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("%w: invalid constraint %q: %w", entities.ErrAnalyzerVersion, constraint, err)
	}

	if !info.KnownVersion() {
		return fmt.Errorf("%w: unable to determine the version of %s", entities.ErrAnalyzerVersion, info.Path)
	}

	v, err := version.NewVersion(info.Version)
	if err != nil {
		return fmt.Errorf("%w: unparsable version %q: %w", entities.ErrAnalyzerVersion, info.Version, err)
	}

	if !constraints.Check(v) {
		return fmt.Errorf("%w: version %s does not satisfy %q", entities.ErrAnalyzerVersion, v, constraint)
	}
	return nil
}

// readProperties parses a Java-style key=value properties file
func readProperties(path string) (map[string]string, error) {
	//nolint:gosec // G304: path is derived from the operator's analyzer path
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	props := map[string]string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			key, value, found = strings.Cut(line, ":")
		}
		if !found {
			continue
		}
		props[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return props, nil
}

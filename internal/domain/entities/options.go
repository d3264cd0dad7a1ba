package entities

import "strings"

// Dependency resolver names accepted by Options.Resolver
const (
	ResolverLdd = "ldd"
	ResolverELF = "elf"
)

// DefaultFolder is the project folder used when none is given
const DefaultFolder = "/tmp"

// DefaultLogDir is where run logs are written when no log directory is given
const DefaultLogDir = "/tmp"

// Options represents one invocation of the headless wrapper
type Options struct {
	Target       string       // Binary to analyze
	Analyzer     string       // Path to analyzeHeadless
	Folder       string       // Project folder, empty means DefaultFolder
	Project      string       // Project name, empty means a generated one
	Scripts      []ScriptSpec // Post-scripts in the order given
	Dependencies bool         // Discover and import shared library dependencies

	Resolver           string // "ldd" or "elf"
	LogDir             string
	AssumeYes          bool   // Skip the confirmation prompt
	Checksum           string // Expected SHA-256 of the target, hex
	Signature          string // Detached OpenPGP signature of the target
	Keyring            string // Public keyring used to check Signature
	MinAnalyzerVersion string // Version constraint, e.g. ">= 10.3"
}

// ScriptSpec is a post-script name optionally followed by its arguments,
// exactly as typed by the operator (e.g. "MyScript.py arg1 arg2")
type ScriptSpec string

// Name returns the script name (first field)
func (s ScriptSpec) Name() string {
	fields := strings.Fields(string(s))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Args returns the arguments following the script name
func (s ScriptSpec) Args() []string {
	fields := strings.Fields(string(s))
	if len(fields) < 2 {
		return nil
	}
	return fields[1:]
}

// HasArgs reports whether the spec carries arguments beyond the script name
func (s ScriptSpec) HasArgs() bool {
	return len(strings.Fields(string(s))) > 1
}

// NewScriptSpecs converts raw flag values into script specs
func NewScriptSpecs(raw []string) []ScriptSpec {
	if len(raw) == 0 {
		return nil
	}
	specs := make([]ScriptSpec, 0, len(raw))
	for _, r := range raw {
		specs = append(specs, ScriptSpec(r))
	}
	return specs
}

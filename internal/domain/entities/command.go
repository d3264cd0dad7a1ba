package entities

import (
	"regexp"
	"strings"
)

// Analyzer flags emitted by the command builder
const (
	FlagImport     = "-import"
	FlagPostScript = "-postScript"
)

// Command represents a fully assembled analyzeHeadless invocation.
// It is built once by the command builder and not modified afterwards.
type Command struct {
	Analyzer    string
	Folder      string
	Project     string
	Imports     []string
	PostScripts []ScriptSpec
}

// Argv returns the command as argument tokens, one per process argument
func (c *Command) Argv() []string {
	argv := make([]string, 0, 3+2*len(c.Imports)+2*len(c.PostScripts))
	argv = append(argv, c.Analyzer, c.Folder, c.Project)
	for _, path := range c.Imports {
		argv = append(argv, FlagImport, path)
	}
	for _, script := range c.PostScripts {
		argv = append(argv, FlagPostScript, string(script))
	}
	return argv
}

// String renders the command for display. A post-script spec carrying
// arguments is wrapped in double quotes, everything else is emitted bare.
func (c *Command) String() string {
	parts := make([]string, 0, 3+2*len(c.Imports)+2*len(c.PostScripts))
	parts = append(parts, c.Analyzer, c.Folder, c.Project)
	for _, path := range c.Imports {
		parts = append(parts, FlagImport, path)
	}
	for _, script := range c.PostScripts {
		if script.HasArgs() {
			parts = append(parts, FlagPostScript, `"`+string(script)+`"`)
		} else {
			parts = append(parts, FlagPostScript, string(script))
		}
	}
	return strings.Join(parts, " ")
}

// ShellString renders the command for /bin/sh -c, quoting every token
// that is not made of shell-safe characters
func (c *Command) ShellString() string {
	argv := c.Argv()
	quoted := make([]string, 0, len(argv))
	for _, arg := range argv {
		quoted = append(quoted, ShellQuote(arg))
	}
	return strings.Join(quoted, " ")
}

var shellSafe = regexp.MustCompile(`^[A-Za-z0-9_@%+=:,./-]+$`)

// ShellQuote quotes s for a POSIX shell using single quotes
func ShellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if shellSafe.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/headless/internal/domain/entities"
	"github.com/ochairo/headless/internal/domain/interfaces"
)

func TestLogger_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, Options{NoColor: true})

	log.Info("Building command")
	log.Warn("No project folder provided", interfaces.F("folder", "/tmp"))
	log.Debug("hidden without verbose")
	log.Error("Unable to create log file")

	assert.Equal(t, "h>> Building command\n"+
		"h>> No project folder provided folder=/tmp\n"+
		"h>> Unable to create log file\n", buf.String())
}

func TestLogger_Verbose(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, Options{NoColor: true, Verbose: true})

	log.Debug("resolved dependency", interfaces.F("path", "/lib/libc.so.6"), interfaces.F("index", 1))

	assert.Equal(t, "h>> resolved dependency index=1 path=/lib/libc.so.6\n", buf.String())
}

func TestLogger_Colors(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, Options{})

	log.Info("info")
	log.Warn("warn")
	log.Error("error")

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, boldWhite+"h"+reset+boldMagenta+">>"+reset+" info", lines[0])
	assert.Contains(t, lines[1], boldYellow+">>")
	assert.Contains(t, lines[2], boldRed+">>")
}

func TestLogger_Logr(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, Options{NoColor: true})
	lr := log.Logr()

	lr.Info("via logr", "key", "value")
	lr.V(1).Info("debug via logr")
	lr.Error(errors.New("boom"), "failed")

	out := buf.String()
	assert.Contains(t, out, "h>> via logr key=value\n")
	assert.NotContains(t, out, "debug via logr")
	assert.Contains(t, out, "h>> failed")
	assert.Contains(t, out, "boom")
}

func TestDisplay_ShowCommand(t *testing.T) {
	cmd := &entities.Command{
		Analyzer:    "/opt/ghidra/support/analyzeHeadless",
		Folder:      "/tmp",
		Project:     "project_123456",
		PostScripts: []entities.ScriptSpec{"Script.py"},
	}
	line := cmd.String()

	tests := []struct {
		name  string
		width int
		want  int
	}{
		{name: "wide terminal", width: 200, want: len(line)},
		{name: "narrow terminal", width: 20, want: 20},
		{name: "unknown width", width: 0, want: len(line)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			d := &Display{out: &buf, noColor: true, width: func() int { return tt.width }}

			d.ShowCommand(cmd)

			separator := strings.Repeat("=", tt.want)
			assert.Equal(t, "\nCOMMAND\n"+separator+"\n"+line+"\n"+separator+"\n\n", buf.String())
		})
	}
}

func TestDisplay_ShowCommand_CountsCharacters(t *testing.T) {
	cmd := &entities.Command{
		Analyzer: "/opt/ghidra/support/analyzeHeadless",
		Folder:   "/tmp/données",
		Project:  "projet_été",
	}
	line := cmd.String()
	var buf bytes.Buffer
	d := &Display{out: &buf, noColor: true, width: func() int { return 0 }}

	d.ShowCommand(cmd)

	separator := strings.Repeat("=", utf8.RuneCountInString(line))
	assert.Less(t, len(separator), len(line))
	assert.Equal(t, "\nCOMMAND\n"+separator+"\n"+line+"\n"+separator+"\n\n", buf.String())
}

func TestDisplay_ShowDependencies(t *testing.T) {
	var buf bytes.Buffer
	d := &Display{out: &buf, noColor: true, width: func() int { return 80 }}

	d.ShowDependencies([]entities.Dependency{
		{Soname: "libc.so.6", Path: "/lib/libc.so.6"},
		{Soname: "libm.so.6", Path: "/lib/libm.so.6"},
	})

	assert.Equal(t, "    -- /lib/libc.so.6\n    -- /lib/libm.so.6\n", buf.String())
}

func TestDisplay_ShowDependencies_Unresolved(t *testing.T) {
	var buf bytes.Buffer
	d := &Display{out: &buf, noColor: true, width: func() int { return 80 }}

	d.ShowDependencies([]entities.Dependency{
		{Soname: "libc.so.6", Path: "/lib/libc.so.6"},
		{Soname: "libgone.so.1"},
	})

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "    -- /lib/libc.so.6\n"))
	assert.NotContains(t, out, "-- libgone")
	assert.Contains(t, out, "libgone.so.1")
	assert.Contains(t, out, "not found")
	assert.Contains(t, out, "SONAME")
}

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "Y\n", want: true},
		{input: "  y  \n", want: true},
		{input: "y", want: true},
		{input: "yes\n", want: false},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out, true)

			got, err := p.Confirm("Run this command? (Y/N)")

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, strings.HasPrefix(out.String(), "h>> Run this command? (Y/N) "))
		})
	}
}

func TestPrintUsage(t *testing.T) {
	var buf bytes.Buffer

	PrintUsage(&buf)

	for _, flag := range []string{"--target", "--analyzer", "--folder", "--project", "--script", "--dependencies", "--help"} {
		assert.Contains(t, buf.String(), flag)
	}
}

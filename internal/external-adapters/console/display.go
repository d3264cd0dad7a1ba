package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"

	"github.com/ochairo/headless/internal/domain/entities"
)

// Display prints the dependency report and the assembled command
type Display struct {
	out     io.Writer
	noColor bool
	// width returns the terminal width in columns, 0 when unknown
	width func() int
}

// NewDisplay creates a display writing to out, sized to the terminal on stdout
func NewDisplay(out io.Writer, noColor bool) *Display {
	return &Display{
		out:     out,
		noColor: noColor,
		width:   func() int { return TerminalWidth(os.Stdout) },
	}
}

// ShowDependencies lists resolved dependency paths under the finder's report,
// followed by a table of every record when unresolved ones exist
func (d *Display) ShowDependencies(deps []entities.Dependency) {
	unresolved := 0
	for _, dep := range deps {
		if dep.Resolved() {
			fmt.Fprintf(d.out, "    -- %s\n", dep.Path)
		} else {
			unresolved++
		}
	}
	if unresolved == 0 {
		return
	}

	fmt.Fprintln(d.out)
	table := tablewriter.NewWriter(d.out)
	table.SetHeader([]string{"Soname", "Path"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	for _, dep := range deps {
		path := dep.Path
		if path == "" {
			path = "not found"
		}
		table.Append([]string{dep.Soname, path})
	}
	table.Render()
	fmt.Fprintln(d.out)
}

// ShowCommand prints the command framed by separator lines as wide as the
// command, capped at the terminal width
func (d *Display) ShowCommand(cmd *entities.Command) {
	line := cmd.String()

	n := utf8.RuneCountInString(line)
	if w := d.width(); w > 0 && w < n {
		n = w
	}
	separator := paint(d.noColor, boldMagenta, strings.Repeat("=", n))

	fmt.Fprintf(d.out, "\n%s\n", paint(d.noColor, boldWhite, "COMMAND"))
	fmt.Fprintln(d.out, separator)
	fmt.Fprintln(d.out, line)
	fmt.Fprintf(d.out, "%s\n\n", separator)
}

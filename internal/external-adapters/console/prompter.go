package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter asks yes/no questions on a terminal
type Prompter struct {
	in      *bufio.Reader
	out     io.Writer
	noColor bool
}

// NewPrompter creates a prompter reading answers from in
func NewPrompter(in io.Reader, out io.Writer, noColor bool) *Prompter {
	return &Prompter{
		in:      bufio.NewReader(in),
		out:     out,
		noColor: noColor,
	}
}

// Confirm prints question and reports whether the answer was "y" or "Y".
// End of input counts as "no".
func (p *Prompter) Confirm(question string) (bool, error) {
	prompt := (&promptFormatter{noColor: p.noColor}).prompt(boldMagenta)
	fmt.Fprintf(p.out, "%s %s ", prompt, question)

	answer, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	if errors.Is(err, io.EOF) && answer == "" {
		fmt.Fprintln(p.out)
	}

	return strings.EqualFold(strings.TrimSpace(answer), "y"), nil
}

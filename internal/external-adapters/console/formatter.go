package console

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// ANSI color codes
const (
	reset       = "\033[0m"
	boldWhite   = "\033[1;37m"
	boldRed     = "\033[1;31m"
	boldYellow  = "\033[1;33m"
	boldMagenta = "\033[1;35m"
	boldCyan    = "\033[1;36m"
	dim         = "\033[2m"
)

// promptMark is printed in front of every message
const promptMark = "h"

// promptFormatter renders entries as "h>> message key=value"
type promptFormatter struct {
	noColor bool
}

func (f *promptFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	b.WriteString(f.prompt(levelColor(e.Level)))
	b.WriteByte(' ')
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", paint(f.noColor, dim, k), e.Data[k])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

func (f *promptFormatter) prompt(color string) string {
	return paint(f.noColor, boldWhite, promptMark) + paint(f.noColor, color, ">>")
}

func levelColor(level logrus.Level) string {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		return boldRed
	case logrus.WarnLevel:
		return boldYellow
	case logrus.DebugLevel, logrus.TraceLevel:
		return boldCyan
	default:
		return boldMagenta
	}
}

func paint(noColor bool, code, text string) string {
	if noColor {
		return text
	}
	return code + text + reset
}

//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package console

import "os"

// TerminalWidth is unknown on this platform
func TerminalWidth(_ *os.File) int {
	return 0
}

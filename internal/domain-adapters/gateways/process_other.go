//go:build !unix

package gateways

import "os/exec"

// killProcessGroupOnCancel keeps the default behaviour of killing only the
// started process
func killProcessGroupOnCancel(_ *exec.Cmd) {}

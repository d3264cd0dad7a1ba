package entities

import "time"

// RunResult contains the outcome of one analyzer run
type RunResult struct {
	ExitCode int
	Elapsed  time.Duration
	LogPath  string
}

// ElapsedSeconds returns the elapsed wall-clock time in whole seconds
func (r *RunResult) ElapsedSeconds() int {
	return int(r.Elapsed / time.Second)
}

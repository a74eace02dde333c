package domain

// RunResult is the captured outcome of one external process invocation.
// It lives for the duration of a single build or execute step and is never
// persisted.
type RunResult struct {
	Stdout string
	Stderr string
	Err    error // spawn or exit failure cause, nil on a clean exit
}

// Failed reports whether the invocation itself failed (non-zero exit, kill
// or spawn error). A failed invocation can still carry usable stdout.
func (r RunResult) Failed() bool {
	return r.Err != nil
}

package domain

import "time"

// TestState is the checked state of a single test after a suite run.
type TestState string

const (
	// TestPassed means the runner printed a PASS line for the test.
	TestPassed TestState = "passed"
	// TestFailed means the runner printed a FAIL line, or the whole suite
	// process failed without producing output.
	TestFailed TestState = "failed"
	// TestUnknown means the suite ran but no result line matched the test.
	TestUnknown TestState = "unknown"
)

// TestEvent reports the checked state of one test.
type TestEvent struct {
	Suite   *SuiteNode
	Test    *TestCase
	State   TestState
	Line    int    // 0-based failure line, -1 when not applicable
	Message string // failure message, empty otherwise
}

// RunInfo identifies one orchestrated run.
type RunInfo struct {
	ID        string // fresh UUID per run
	Requested []string
	Started   time.Time
}

// Reporter consumes run lifecycle events. It is the seam a host UI plugs
// into; the bundled CLI reporter is the reference implementation.
type Reporter interface {
	RunStarted(run RunInfo)
	SuiteStarted(suite *SuiteNode)
	SuiteFinished(suite *SuiteNode)
	Test(event TestEvent)
	// Error surfaces a user-visible, non-fatal message scoped to the
	// current run (scan warnings, build failures and the like).
	Error(msg string)
	RunFinished(run RunInfo)
}

type multiReporter []Reporter

// Multi fans events out to several reporters in order.
func Multi(reporters ...Reporter) Reporter {
	return multiReporter(reporters)
}

func (m multiReporter) RunStarted(run RunInfo) {
	for _, r := range m {
		r.RunStarted(run)
	}
}

func (m multiReporter) SuiteStarted(suite *SuiteNode) {
	for _, r := range m {
		r.SuiteStarted(suite)
	}
}

func (m multiReporter) SuiteFinished(suite *SuiteNode) {
	for _, r := range m {
		r.SuiteFinished(suite)
	}
}

func (m multiReporter) Test(event TestEvent) {
	for _, r := range m {
		r.Test(event)
	}
}

func (m multiReporter) Error(msg string) {
	for _, r := range m {
		r.Error(msg)
	}
}

func (m multiReporter) RunFinished(run RunInfo) {
	for _, r := range m {
		r.RunFinished(run)
	}
}

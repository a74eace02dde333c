package ui

import (
	"github.com/fatih/color"
	"utp/internal/domain"
)

// RunReporter renders run progress on the terminal. It drives one progress
// bar across all tests of the run and replays error messages after the bar
// completes, so they do not tear the in-flight rendering.
type RunReporter struct {
	bar       *ProgressBar
	completed int
	passed    int
	failed    int
	unknown   int
	deferred  []string
}

// NewRunReporter creates a reporter sized for the total number of tests
// the run is expected to check.
func NewRunReporter(totalTests int) *RunReporter {
	return &RunReporter{bar: NewProgressBar(totalTests)}
}

func (r *RunReporter) RunStarted(run domain.RunInfo) {}

func (r *RunReporter) SuiteStarted(suite *domain.SuiteNode) {}

func (r *RunReporter) SuiteFinished(suite *domain.SuiteNode) {}

func (r *RunReporter) Test(event domain.TestEvent) {
	r.completed++
	switch event.State {
	case domain.TestPassed:
		r.passed++
	case domain.TestFailed:
		r.failed++
	default:
		r.unknown++
	}
	r.bar.Update(r.completed, r.passed, r.failed, r.unknown)
}

func (r *RunReporter) Error(msg string) {
	r.deferred = append(r.deferred, msg)
}

func (r *RunReporter) RunFinished(run domain.RunInfo) {
	r.bar.Finish()
	for _, msg := range r.deferred {
		color.Red("✗ %s", msg)
	}
}

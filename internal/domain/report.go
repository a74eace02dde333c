package domain

import "time"

// RunMeta summarizes one run for the stored report.
type RunMeta struct {
	RunID           string  `json:"run_id"`
	SuitesRun       int     `json:"suites_run"`
	TestsChecked    int     `json:"tests_checked"`
	Passed          int     `json:"passed"`
	Failed          int     `json:"failed"`
	Unknown         int     `json:"unknown"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// FailureRecord is one failed test in the stored report.
type FailureRecord struct {
	TestName string `json:"test_name"`
	Label    string `json:"label"`
	Suite    string `json:"suite"`
	File     string `json:"file"`
	Line     int    `json:"line"` // 0-based line from the runner output, -1 for process failures
	Message  string `json:"message"`
	Resolved bool   `json:"resolved,omitempty"` // track if the failure was marked as resolved
}

// RunReport is the persisted output of the last run, consumed by the
// failures viewer and the summary printer.
type RunReport struct {
	Meta     RunMeta         `json:"meta"`
	Failures []FailureRecord `json:"details"`
}

// Recorder accumulates run events into a RunReport. Events within one run
// arrive sequentially, so no locking is needed.
type Recorder struct {
	run      RunInfo
	finished time.Time
	suites   int
	passed   int
	failed   int
	unknown  int
	failures []FailureRecord
}

// NewRecorder returns an empty Recorder ready to receive one run.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) RunStarted(run RunInfo) {
	r.run = run
}

func (r *Recorder) SuiteStarted(suite *SuiteNode) {}

func (r *Recorder) SuiteFinished(suite *SuiteNode) {
	r.suites++
}

func (r *Recorder) Test(event TestEvent) {
	switch event.State {
	case TestPassed:
		r.passed++
	case TestFailed:
		r.failed++
		r.failures = append(r.failures, FailureRecord{
			TestName: event.Test.Name,
			Label:    event.Test.Label,
			Suite:    event.Suite.Label,
			File:     event.Test.File,
			Line:     event.Line,
			Message:  event.Message,
		})
	case TestUnknown:
		r.unknown++
	}
}

func (r *Recorder) Error(msg string) {}

func (r *Recorder) RunFinished(run RunInfo) {
	r.finished = time.Now()
}

// Report builds the final report for the recorded run.
func (r *Recorder) Report() *RunReport {
	end := r.finished
	if end.IsZero() {
		end = time.Now()
	}
	duration := end.Sub(r.run.Started)
	return &RunReport{
		Meta: RunMeta{
			RunID:           r.run.ID,
			SuitesRun:       r.suites,
			TestsChecked:    r.passed + r.failed + r.unknown,
			Passed:          r.passed,
			Failed:          r.failed,
			Unknown:         r.unknown,
			Duration:        duration.Round(time.Millisecond).String(),
			DurationSeconds: duration.Seconds(),
			Timestamp:       end.Format(time.RFC3339),
		},
		Failures: r.failures,
	}
}

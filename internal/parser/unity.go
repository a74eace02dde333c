package parser

import (
	"fmt"
	"regexp"
)

// Outcome classifies the result line found for one test.
type Outcome int

const (
	// NoMatch means no result line for the test was found in the output.
	// Callers surface this as an "unknown" state rather than ignoring it.
	NoMatch Outcome = iota
	Passed
	Failed
)

// Check is the parsed result for a single test.
type Check struct {
	Outcome Outcome
	Line    int    // 0-based failure line, -1 unless Outcome is Failed
	Message string // failure message, empty unless Outcome is Failed
}

// UnityParser parses Unity test runner output
type UnityParser struct{}

// NewUnityParser creates a new UnityParser
func NewUnityParser() *UnityParser {
	return &UnityParser{}
}

// CheckResult scans output for the result line of the test with the given
// display label. Unity prints `<file>:<line>:<test>:PASS` or
// `<file>:<line>:<test>:FAIL: <message>` per executed test; the first
// matching line wins. Unity's line numbers are 1-based and are converted
// to 0-based here. Output in any other shape yields NoMatch.
func (p *UnityParser) CheckResult(label, output string) Check {
	pattern := regexp.MustCompile(`:(\d+):.*` + regexp.QuoteMeta(label) + `:(PASS|FAIL: (.*))`)
	match := pattern.FindStringSubmatch(output)
	if match == nil {
		return Check{Outcome: NoMatch, Line: -1}
	}
	if match[2] == "PASS" {
		return Check{Outcome: Passed, Line: -1}
	}

	var line int
	fmt.Sscanf(match[1], "%d", &line)
	return Check{Outcome: Failed, Line: line - 1, Message: match[3]}
}

// Summary extracts the test counts from Unity's run footer, e.g.
// "3 Tests 1 Failures 0 Ignored". ok is false when no footer is present
// (crashed runner, garbage output).
func (p *UnityParser) Summary(output string) (tests, failures, ignored int, ok bool) {
	match := regexp.MustCompile(`(\d+) Tests (\d+) Failures (\d+) Ignored`).FindStringSubmatch(output)
	if match == nil {
		return 0, 0, 0, false
	}
	fmt.Sscanf(match[1], "%d", &tests)
	fmt.Sscanf(match[2], "%d", &failures)
	fmt.Sscanf(match[3], "%d", &ignored)
	return tests, failures, ignored, true
}

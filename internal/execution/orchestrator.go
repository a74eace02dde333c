package execution

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"utp/internal/config"
	"utp/internal/discovery"
	"utp/internal/domain"
	"utp/internal/parser"
)

// ProcessRunner is the coordinator surface the orchestrator drives.
type ProcessRunner interface {
	RunBuild(ctx context.Context, args string) domain.RunResult
	RunExecutable(ctx context.Context, path string) domain.RunResult
	CancelAll()
}

// TreeLoader produces a fresh discovery pass.
type TreeLoader interface {
	Load() (*discovery.Result, error)
}

// DebugLauncher starts an attached debugger for a built test executable.
// The executable path is passed explicitly; launchers hold no session
// state between calls.
type DebugLauncher interface {
	Launch(ctx context.Context, profileName, executable string) error
}

// Orchestrator owns the authoritative suite tree and drives the
// build, execute, parse, report cycle for requested suite or test ids.
type Orchestrator struct {
	config   *config.Config
	runner   ProcessRunner
	loader   TreeLoader
	launcher DebugLauncher
	parser   *parser.UnityParser

	mu      sync.Mutex // guards tree, result and loadGen
	loadMu  sync.Mutex // serializes discovery passes
	tree    *domain.RootSuite
	result  *discovery.Result
	loadGen uint64
}

// NewOrchestrator creates a new Orchestrator
func NewOrchestrator(cfg *config.Config, runner ProcessRunner, loader TreeLoader, launcher DebugLauncher) *Orchestrator {
	return &Orchestrator{
		config:   cfg,
		runner:   runner,
		loader:   loader,
		launcher: launcher,
		parser:   parser.NewUnityParser(),
	}
}

// Load rebuilds the suite tree, replacing the previous one wholesale.
// Loads are single-flight: concurrent calls queue, and a call that finds
// two loads completed since it started adopts the latest snapshot instead
// of scanning again, so a burst of reloads coalesces into one trailing
// pass whose scan began after every request in the burst.
func (o *Orchestrator) Load() (*discovery.Result, error) {
	o.mu.Lock()
	captured := o.loadGen
	o.mu.Unlock()

	o.loadMu.Lock()
	defer o.loadMu.Unlock()

	o.mu.Lock()
	if o.loadGen >= captured+2 {
		result := o.result
		o.mu.Unlock()
		return result, nil
	}
	o.mu.Unlock()

	result, err := o.loader.Load()
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	o.result = result
	o.tree = result.Tree
	o.loadGen++
	o.mu.Unlock()
	return result, nil
}

// Tree returns the current suite tree, or nil before the first Load.
func (o *Orchestrator) Tree() *domain.RootSuite {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.tree
}

// Run drives build, execute, check and report for every requested id, in
// request order. Ids may name the root, whole suites or individual tests;
// unresolvable ids are skipped. Failures inside a suite are reported and
// scoped to that suite; Run itself only fails when no tree is loaded.
func (o *Orchestrator) Run(ctx context.Context, ids []string, reporter domain.Reporter) error {
	tree := o.Tree()
	if tree == nil {
		return errors.New("no suite tree loaded")
	}

	info := domain.RunInfo{
		ID:        uuid.NewString(),
		Requested: append([]string(nil), ids...),
		Started:   time.Now(),
	}
	reporter.RunStarted(info)
	defer reporter.RunFinished(info)

	// Materialize build output directories first when configured. This
	// is best-effort: a failure is reported and the run continues.
	if o.config.FoldersCommandArgs != "" {
		if result := o.runner.RunBuild(ctx, o.config.FoldersCommandArgs); result.Failed() {
			reporter.Error(fmt.Sprintf("folder preparation failed: %s", describeFailure(result)))
		}
	}

	if requestsRoot(ids) {
		ids = tree.SuiteIDs()
	}

	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		if suite := tree.FindSuite(id); suite != nil {
			o.runSuite(ctx, suite, nil, reporter)
			continue
		}
		if suite, test := tree.FindTest(id); suite != nil {
			o.runSuite(ctx, suite, test, reporter)
		}
	}
	return nil
}

// runSuite rebuilds and reruns one suite. When only is non-nil the
// request was test-level and just that test is checked against the
// output; otherwise every test in the suite is.
func (o *Orchestrator) runSuite(ctx context.Context, suite *domain.SuiteNode, only *domain.TestCase, reporter domain.Reporter) {
	reporter.SuiteStarted(suite)
	defer reporter.SuiteFinished(suite)

	executable := o.config.ExecutablePath(suite.File)

	build := o.runner.RunBuild(ctx, buildArgs(o.config.TestBuildCommandArgs, executable))
	if build.Failed() {
		reporter.Error(fmt.Sprintf("build failed for %s: %s", suite.Label, describeFailure(build)))
		if build.Stdout == "" {
			o.failAll(suite, "build failed: "+describeFailure(build), reporter)
		}
		return
	}

	run := o.runner.RunExecutable(ctx, executable)
	if run.Failed() && run.Stdout == "" {
		// The executable died without telling us anything; every test
		// in the suite inherits the process failure.
		reporter.Error(fmt.Sprintf("%s failed for %s: %s", executable, suite.Label, describeFailure(run)))
		o.failAll(suite, describeFailure(run), reporter)
		return
	}

	// A non-zero exit with stdout present is a normal completion: Unity
	// runners exit non-zero whenever any test failed.
	for i := range suite.Tests {
		test := &suite.Tests[i]
		if only != nil && test.ID != only.ID {
			continue
		}
		reporter.Test(o.check(suite, test, run.Stdout))
	}
}

// check parses the captured output for one test's result line.
func (o *Orchestrator) check(suite *domain.SuiteNode, test *domain.TestCase, output string) domain.TestEvent {
	event := domain.TestEvent{Suite: suite, Test: test, Line: -1}

	result := o.parser.CheckResult(test.Label, output)
	switch result.Outcome {
	case parser.Passed:
		event.State = domain.TestPassed
	case parser.Failed:
		event.State = domain.TestFailed
		event.Line = result.Line
		event.Message = result.Message
	default:
		// The suite ran but produced no recognizable line for this
		// test: surfaced as unknown instead of staying silent.
		event.State = domain.TestUnknown
	}
	return event
}

// failAll marks every test of a suite as failed with the given
// process-level message, without consulting the result parser.
func (o *Orchestrator) failAll(suite *domain.SuiteNode, message string, reporter domain.Reporter) {
	for i := range suite.Tests {
		test := &suite.Tests[i]
		reporter.Test(domain.TestEvent{
			Suite:   suite,
			Test:    test,
			State:   domain.TestFailed,
			Line:    -1,
			Message: message,
		})
	}
}

// Cancel kills the active build and execute processes. It emits no
// events: an externally cancelled run is abandoned as-is, not completed.
func (o *Orchestrator) Cancel() {
	o.runner.CancelAll()
}

// Debug builds the suite owning id and launches the configured debugger
// profile against its executable.
func (o *Orchestrator) Debug(ctx context.Context, id string) error {
	if o.config.DebugConfiguration == "" {
		return errors.New("no debug configuration set: set debugConfiguration to a configured debug profile")
	}

	tree := o.Tree()
	if tree == nil {
		return errors.New("no suite tree loaded")
	}
	suite := tree.ResolveSuite(id)
	if suite == nil {
		return fmt.Errorf("unknown suite or test id %q", id)
	}

	executable := o.config.ExecutablePath(suite.File)
	if build := o.runner.RunBuild(ctx, buildArgs(o.config.TestBuildCommandArgs, executable)); build.Failed() {
		return fmt.Errorf("build failed for %s: %s", suite.Label, describeFailure(build))
	}
	return o.launcher.Launch(ctx, o.config.DebugConfiguration, executable)
}

// buildArgs appends the target executable to the configured build
// argument template.
func buildArgs(template, executable string) string {
	if template == "" {
		return executable
	}
	return template + " " + executable
}

// requestsRoot reports whether the request names the synthetic root,
// which expands to every top-level suite.
func requestsRoot(ids []string) bool {
	for _, id := range ids {
		if id == domain.RootID {
			return true
		}
	}
	return false
}

// describeFailure renders a process failure for user-visible messages,
// preferring captured stderr over the bare exit error.
func describeFailure(result domain.RunResult) string {
	if msg := strings.TrimSpace(result.Stderr); msg != "" {
		return msg
	}
	if result.Err != nil {
		return result.Err.Error()
	}
	return "unknown failure"
}

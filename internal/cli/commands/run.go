package commands

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"utp/internal/config"
	"utp/internal/discovery"
	"utp/internal/domain"
	"utp/internal/execution"
	"utp/internal/storage"
	"utp/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config       *config.Config
	orchestrator *execution.Orchestrator
	filter       *discovery.Filter
	storage      storage.Storage
	formatter    *ui.Formatter
	viewer       ui.Viewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	orchestrator *execution.Orchestrator,
	filter *discovery.Filter,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer ui.Viewer,
) *RunCommand {
	return &RunCommand{
		config:       cfg,
		orchestrator: orchestrator,
		filter:       filter,
		storage:      st,
		formatter:    formatter,
		viewer:       viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	// Ctrl+C cancels the run; the in-flight process group is killed and
	// results gathered so far are still reported.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := rc.orchestrator.Load(); err != nil {
		return err
	}
	tree := rc.orchestrator.Tree()

	if len(tree.Suites) == 0 {
		color.Yellow("No tests to execute")
		return nil
	}

	ids, err := rc.selectIDs(tree, args)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		color.Yellow("No tests match filter %q", rc.config.Flags.NameFilter)
		return nil
	}

	recorder := domain.NewRecorder()
	progress := ui.NewRunReporter(countTests(tree, ids))

	if err := rc.orchestrator.Run(ctx, ids, domain.Multi(recorder, progress)); err != nil {
		return err
	}

	report := recorder.Report()
	if err := rc.storage.Save(report); err != nil {
		return fmt.Errorf("failed to save test results: %w", err)
	}

	rc.formatter.PrintSummary(report)

	if rc.config.Flags.OpenFailures && len(report.Failures) > 0 {
		return rc.viewer.View(report)
	}
	return nil
}

// selectIDs turns positional arguments or the name filter into the run
// request. With neither, the whole tree runs.
func (rc *RunCommand) selectIDs(tree *domain.RootSuite, args []string) ([]string, error) {
	pattern := rc.config.Flags.NameFilter
	switch {
	case len(args) > 0 && pattern != "":
		return nil, errors.New("pass either ids or --filter, not both")
	case len(args) > 0:
		return resolveIDs(rc.config, tree, args)
	case pattern != "":
		return filterSelection(tree, rc.filter.Apply(tree, pattern)), nil
	default:
		return []string{domain.RootID}, nil
	}
}

// filterSelection maps a filtered tree back onto run ids: suites that kept
// every test run as one suite, partially matched suites run per test.
func filterSelection(tree, filtered *domain.RootSuite) []string {
	var ids []string
	for _, suite := range filtered.Suites {
		full := tree.FindSuite(suite.ID)
		if full != nil && len(suite.Tests) == len(full.Tests) {
			ids = append(ids, suite.ID)
			continue
		}
		for i := range suite.Tests {
			ids = append(ids, suite.Tests[i].ID)
		}
	}
	return ids
}

// countTests sizes the progress bar for a run request.
func countTests(tree *domain.RootSuite, ids []string) int {
	total := 0
	for _, id := range ids {
		if id == domain.RootID {
			for _, suite := range tree.Suites {
				total += len(suite.Tests)
			}
			continue
		}
		if suite := tree.FindSuite(id); suite != nil {
			total += len(suite.Tests)
			continue
		}
		if _, test := tree.FindTest(id); test != nil {
			total++
		}
	}
	return total
}

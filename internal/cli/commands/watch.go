package commands

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
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

// WatchCommand handles the watch command
type WatchCommand struct {
	config       *config.Config
	orchestrator *execution.Orchestrator
	storage      storage.Storage
	formatter    *ui.Formatter
	warn         func(string)
}

// NewWatchCommand creates a new WatchCommand
func NewWatchCommand(
	cfg *config.Config,
	orchestrator *execution.Orchestrator,
	st storage.Storage,
	formatter *ui.Formatter,
	warn func(string),
) *WatchCommand {
	return &WatchCommand{
		config:       cfg,
		orchestrator: orchestrator,
		storage:      st,
		formatter:    formatter,
		warn:         warn,
	}
}

// Execute runs the command. It runs every suite once, then reruns on
// debounced file changes until interrupted. Test file changes trigger a
// rediscovery pass first; source file changes rerun against the current
// tree.
func (wc *WatchCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := discovery.NewWatcher(wc.config, wc.warn)
	if err != nil {
		return err
	}
	defer watcher.Close()

	result, err := wc.orchestrator.Load()
	if err != nil {
		return err
	}
	if err := watcher.Watch(result.TestFiles, result.SourceFiles); err != nil {
		wc.warn(err.Error())
	}

	wc.runAll(ctx)

	for {
		select {
		case <-ctx.Done():
			wc.orchestrator.Cancel()
			color.Cyan("\nWatch stopped")
			return nil
		case change, ok := <-watcher.Changes():
			if !ok {
				return nil
			}
			color.Cyan("\nChange detected: %s", wc.displayPath(change.Path))
			if change.Reload {
				result, err := wc.orchestrator.Load()
				if err != nil {
					color.Red("✗ %v", err)
					continue
				}
				if err := watcher.Watch(result.TestFiles, result.SourceFiles); err != nil {
					wc.warn(err.Error())
				}
			}
			wc.runAll(ctx)
		}
	}
}

// runAll runs the whole tree once and reports the outcome. Failures are
// printed, never returned; the watch loop keeps going.
func (wc *WatchCommand) runAll(ctx context.Context) {
	tree := wc.orchestrator.Tree()
	if tree == nil || len(tree.Suites) == 0 {
		color.Yellow("No tests to execute")
		return
	}

	recorder := domain.NewRecorder()
	progress := ui.NewRunReporter(countTests(tree, []string{domain.RootID}))

	if err := wc.orchestrator.Run(ctx, []string{domain.RootID}, domain.Multi(recorder, progress)); err != nil {
		color.Red("✗ %v", err)
		return
	}

	report := recorder.Report()
	if err := wc.storage.Save(report); err != nil {
		color.Red("✗ failed to save test results: %v", err)
	}
	wc.formatter.PrintSummary(report)
	color.Cyan("Watching for changes... (Ctrl+C to stop)")
}

func (wc *WatchCommand) displayPath(path string) string {
	if rel, err := filepath.Rel(wc.config.WorkspaceRoot, path); err == nil {
		return rel
	}
	return path
}

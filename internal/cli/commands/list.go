package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"utp/internal/config"
	"utp/internal/discovery"
	"utp/internal/storage"
	"utp/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	loader    *discovery.Loader
	filter    *discovery.Filter
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	loader *discovery.Loader,
	filter *discovery.Filter,
	formatter *ui.Formatter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		loader:    loader,
		filter:    filter,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	result, err := lc.loader.Load()
	if err != nil {
		return err
	}

	tree := result.Tree
	if pattern := lc.config.Flags.NameFilter; pattern != "" {
		tree = lc.filter.Apply(tree, pattern)
	}

	if len(tree.Suites) == 0 {
		color.Yellow("No tests found")
		return nil
	}

	// Mark failures from the last stored run, when one exists.
	var failedIDs map[string]struct{}
	if report, err := lc.storage.Load(); err == nil {
		failedIDs = ui.FailedIDs(report)
	}

	lc.formatter.PrintTestList(tree, lc.config.Flags.TestCases, failedIDs)
	return nil
}

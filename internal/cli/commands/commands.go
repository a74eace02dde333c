package commands

import (
	"fmt"
	"path/filepath"

	"utp/internal/cli"
	"utp/internal/config"
	"utp/internal/debugger"
	"utp/internal/discovery"
	"utp/internal/domain"
	"utp/internal/execution"
	"utp/internal/storage"
	"utp/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Watch    *WatchCommand
	Failures *FailuresCommand
	Debug    *DebugCommand
}

// NewCommands creates all commands with dependencies. The passed config is
// shared by reference: Register reloads it in place once flags are parsed,
// before any command body runs.
func NewCommands(cfg *config.Config) *Commands {
	warn := func(msg string) {
		color.Yellow("warning: %s", msg)
	}

	loader := discovery.NewLoader(cfg, warn)
	filter := discovery.NewFilter()
	coordinator := execution.NewCoordinator(cfg)
	launcher := debugger.NewCommandLauncher(cfg)
	orchestrator := execution.NewOrchestrator(cfg, coordinator, loader, launcher)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg)
	errorViewer := ui.NewErrorViewer(cfg, jsonStorage)

	return &Commands{
		Run:      NewRunCommand(cfg, orchestrator, filter, jsonStorage, formatter, errorViewer),
		List:     NewListCommand(cfg, loader, filter, formatter, jsonStorage),
		Watch:    NewWatchCommand(cfg, orchestrator, jsonStorage, formatter, warn),
		Failures: NewFailuresCommand(cfg, jsonStorage, errorViewer),
		Debug:    NewDebugCommand(cfg, orchestrator),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Every command re-resolves the effective config for the chosen
	// workspace once flags are parsed.
	reload := func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flags.Workspace, flags.ToConfigFlags())
		if err != nil {
			return err
		}
		*cfg = *loaded
		return nil
	}

	rootCmd.PersistentFlags().StringVarP(&flags.Workspace, "workspace", "w", ".", "Workspace root directory")

	// Run command
	runCmd := &cobra.Command{
		Use:     "run [id...]",
		Short:   "Build and run Unity test suites",
		Long:    "Build and execute the requested Unity test suites and check each test result. Ids are test source files (absolute or workspace relative), suite labels or test names; with no ids, every discovered suite runs.",
		RunE:    c.Run.Execute,
		PreRunE: reload,
	}
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Run only suites or tests matching this name pattern (supports wildcards, e.g. '*timer*' or 'test_add*')")
	runCmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failures viewer when the run finishes with failures")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List discovered Unity tests",
		Long:    "Scan the workspace and list all Unity test suites without executing them",
		RunE:    c.List.Execute,
		PreRunE: reload,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "List only suites or tests matching this name pattern")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List test cases under each test file")
	rootCmd.AddCommand(listCmd)

	// Watch command
	watchCmd := &cobra.Command{
		Use:     "watch",
		Short:   "Run tests continuously on file changes",
		Long:    "Run every suite once, then watch test and project sources and rerun on changes until interrupted",
		RunE:    c.Watch.Execute,
		PreRunE: reload,
	}
	rootCmd.AddCommand(watchCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:     "failures",
		Short:   "View test failures interactively",
		Long:    "Display test failures from the last run in an interactive viewer",
		RunE:    c.Failures.Execute,
		PreRunE: reload,
	}
	rootCmd.AddCommand(failuresCmd)

	// Debug command
	debugCmd := &cobra.Command{
		Use:     "debug <id>",
		Short:   "Debug a test suite",
		Long:    "Build the suite owning the given id and launch it under the configured debugger",
		Args:    cobra.ExactArgs(1),
		RunE:    c.Debug.Execute,
		PreRunE: reload,
	}
	rootCmd.AddCommand(debugCmd)
}

// resolveID maps a user-supplied identifier to a tree id. Accepted forms
// are the root id, suite ids (absolute paths), workspace relative paths,
// suite labels, test ids and raw or prettified test names.
func resolveID(cfg *config.Config, tree *domain.RootSuite, raw string) (string, bool) {
	if raw == domain.RootID {
		return raw, true
	}
	if tree.FindSuite(raw) != nil {
		return raw, true
	}
	if s, _ := tree.FindTest(raw); s != nil {
		return raw, true
	}
	if !filepath.IsAbs(raw) {
		abs := filepath.Join(cfg.WorkspaceRoot, raw)
		if tree.FindSuite(abs) != nil {
			return abs, true
		}
	}
	for _, suite := range tree.Suites {
		if suite.Label == raw {
			return suite.ID, true
		}
		for i := range suite.Tests {
			if suite.Tests[i].Name == raw || suite.Tests[i].Label == raw {
				return suite.Tests[i].ID, true
			}
		}
	}
	return "", false
}

// resolveIDs resolves every argument, failing on the first unknown one.
func resolveIDs(cfg *config.Config, tree *domain.RootSuite, args []string) ([]string, error) {
	ids := make([]string, 0, len(args))
	for _, arg := range args {
		id, ok := resolveID(cfg, tree, arg)
		if !ok {
			return nil, fmt.Errorf("unknown test or suite: %s", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

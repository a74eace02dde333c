package main

import (
	"fmt"
	"os"

	"utp/internal/cli"
	"utp/internal/cli/commands"
	"utp/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "utp",
		Short:   "Unity test processor",
		Long:    `A test processor for C projects using the Unity test framework. Discover Unity test files, build them with make, run the resulting executables and check every test result, from the command line or continuously on file changes.`,
		Version: version,
	}

	// Create initial config with defaults; Register reloads it in place
	// for the chosen workspace before a command runs.
	cfg := config.New(".")

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"utp/internal/config"
	"utp/internal/execution"
)

// DebugCommand handles the debug command
type DebugCommand struct {
	config       *config.Config
	orchestrator *execution.Orchestrator
}

// NewDebugCommand creates a new DebugCommand
func NewDebugCommand(cfg *config.Config, orchestrator *execution.Orchestrator) *DebugCommand {
	return &DebugCommand{
		config:       cfg,
		orchestrator: orchestrator,
	}
}

// Execute runs the command
func (dc *DebugCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := dc.orchestrator.Load(); err != nil {
		return err
	}

	id, ok := resolveID(dc.config, dc.orchestrator.Tree(), args[0])
	if !ok {
		return fmt.Errorf("unknown test or suite: %s", args[0])
	}

	return dc.orchestrator.Debug(ctx, id)
}

package debugger

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"utp/internal/config"
)

// CommandLauncher starts a debugger in the foreground. Profile names
// resolve against the configured debug profiles; a profile value is a
// command template and the target executable is appended as its final
// argument, so "gdb --args" becomes `gdb --args <executable>`. The
// launcher holds no session state: the executable is passed in per call.
type CommandLauncher struct {
	config *config.Config
}

// NewCommandLauncher creates a new CommandLauncher
func NewCommandLauncher(cfg *config.Config) *CommandLauncher {
	return &CommandLauncher{config: cfg}
}

// Launch runs the named profile against the executable with the caller's
// terminal attached and returns once the debugger exits.
func (l *CommandLauncher) Launch(ctx context.Context, profileName, executable string) error {
	template, ok := l.config.DebugProfiles[profileName]
	if !ok {
		return fmt.Errorf("unknown debug profile %q", profileName)
	}
	argv := strings.Fields(template)
	if len(argv) == 0 {
		return fmt.Errorf("debug profile %q is empty", profileName)
	}
	argv = append(argv, executable)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = l.config.WorkspaceRoot
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

package execution

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"sync"
	"syscall"

	"github.com/acarl005/stripansi"

	"utp/internal/config"
	"utp/internal/domain"
)

// defaultBuildTool drives test builds; testBuildCommandArgs and
// foldersCommandArgs are argument strings for it.
const defaultBuildTool = "make"

// processSlot tracks the active process of one serialization domain. Its
// own mutex guards the pointer because the domain lock is held for the
// whole process lifetime while CancelAll must never block on it.
type processSlot struct {
	mu  sync.Mutex
	cmd *exec.Cmd
}

func (s *processSlot) set(cmd *exec.Cmd) {
	s.mu.Lock()
	s.cmd = cmd
	s.mu.Unlock()
}

func (s *processSlot) clear() {
	s.mu.Lock()
	s.cmd = nil
	s.mu.Unlock()
}

// kill sends SIGKILL to the active process group, if any. Negative pid
// addresses the whole group, taking down children spawned by build tools.
func (s *processSlot) kill() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd == nil || s.cmd.Process == nil {
		return
	}
	syscall.Kill(-s.cmd.Process.Pid, syscall.SIGKILL)
}

// Coordinator serializes external process invocations. Builds and test
// executions are two independent domains, each with one lock and one
// active-process slot, so system-wide at most one build-tool process and
// one test executable are in flight at any instant. Queued callers each
// see only their own invocation's output.
type Coordinator struct {
	config    *config.Config
	buildTool string

	buildMu sync.Mutex
	build   processSlot

	execMu  sync.Mutex
	execute processSlot
}

// NewCoordinator creates a new Coordinator
func NewCoordinator(cfg *config.Config) *Coordinator {
	return &Coordinator{config: cfg, buildTool: defaultBuildTool}
}

// RunBuild invokes the build tool with the given argument string in the
// configured build working directory and returns its captured output.
func (c *Coordinator) RunBuild(ctx context.Context, args string) domain.RunResult {
	c.buildMu.Lock()
	defer c.buildMu.Unlock()

	cmd := exec.CommandContext(ctx, c.buildTool, strings.Fields(args)...)
	cmd.Dir = c.config.MakeCwd()
	return c.run(cmd, &c.build)
}

// RunExecutable spawns the given path directly, with the workspace root
// as working directory, and returns its captured output.
func (c *Coordinator) RunExecutable(ctx context.Context, path string) domain.RunResult {
	c.execMu.Lock()
	defer c.execMu.Unlock()

	cmd := exec.CommandContext(ctx, path)
	cmd.Dir = c.config.WorkspaceRoot
	return c.run(cmd, &c.execute)
}

// CancelAll best-effort kills the active build and execute process
// groups. It does not wait for either process to exit: the in-flight
// RunBuild/RunExecutable call still returns normally (with an error
// result) and releases its domain lock.
func (c *Coordinator) CancelAll() {
	c.build.kill()
	c.execute.kill()
}

func (c *Coordinator) run(cmd *exec.Cmd, slot *processSlot) domain.RunResult {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Own process group, so cancellation reaches the children build
	// tools spawn.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}

	slot.set(cmd)
	err := cmd.Run()
	slot.clear()

	return domain.RunResult{
		Stdout: stripansi.Strip(stdout.String()),
		Stderr: stripansi.Strip(stderr.String()),
		Err:    err,
	}
}

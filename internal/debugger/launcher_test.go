package debugger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"utp/internal/config"
)

func TestCommandLauncher_Launch(t *testing.T) {
	dir := t.TempDir()

	// A stand-in debugger that records its arguments.
	recorded := filepath.Join(dir, "argv")
	script := filepath.Join(dir, "fakegdb")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho \"$@\" > "+recorded+"\n"), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	cfg := config.New(dir)
	cfg.DebugProfiles = map[string]string{"gdb": script + " --args"}

	launcher := NewCommandLauncher(cfg)
	if err := launcher.Launch(context.Background(), "gdb", "/ws/build/mathTest.exe"); err != nil {
		t.Fatalf("launch failed: %v", err)
	}

	argv, err := os.ReadFile(recorded)
	if err != nil {
		t.Fatalf("the debugger was not invoked: %v", err)
	}
	if got := string(argv); got != "--args /ws/build/mathTest.exe\n" {
		t.Errorf("unexpected debugger arguments %q", got)
	}
}

func TestCommandLauncher_UnknownProfile(t *testing.T) {
	cfg := config.New(t.TempDir())

	err := NewCommandLauncher(cfg).Launch(context.Background(), "no-such-profile", "/ws/build/aTest.exe")
	if err == nil {
		t.Fatal("expected an error for an unknown profile")
	}
}

func TestCommandLauncher_EmptyProfile(t *testing.T) {
	cfg := config.New(t.TempDir())
	cfg.DebugProfiles = map[string]string{"blank": "   "}

	err := NewCommandLauncher(cfg).Launch(context.Background(), "blank", "/ws/build/aTest.exe")
	if err == nil {
		t.Fatal("expected an error for an empty profile command")
	}
}

func TestCommandLauncher_DebuggerExitCodePropagates(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "failinggdb")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nexit 3\n"), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	cfg := config.New(dir)
	cfg.DebugProfiles = map[string]string{"gdb": script}

	if err := NewCommandLauncher(cfg).Launch(context.Background(), "gdb", "/ws/build/aTest.exe"); err == nil {
		t.Fatal("expected the debugger exit failure to propagate")
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	cfg := New("/ws")

	if cfg.TestSourcePath != DefaultTestSourcePath {
		t.Errorf("expected TestSourcePath %s, got %s", DefaultTestSourcePath, cfg.TestSourcePath)
	}
	if cfg.TestFilePattern != DefaultTestFilePattern {
		t.Errorf("expected TestFilePattern %s, got %s", DefaultTestFilePattern, cfg.TestFilePattern)
	}
	if cfg.TestFunctionPrefix != DefaultTestFunctionPrefix {
		t.Errorf("expected TestFunctionPrefix %s, got %s", DefaultTestFunctionPrefix, cfg.TestFunctionPrefix)
	}
	if _, ok := cfg.DebugProfiles["gdb"]; !ok {
		t.Error("expected a default gdb debug profile")
	}
}

func TestConfig_PathResolution(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		resolve  func(*Config) string
		expected string
	}{
		{
			name:     "relative test source path",
			config:   &Config{WorkspaceRoot: "/ws", TestSourcePath: "test"},
			resolve:  (*Config).TestSourceDir,
			expected: "/ws/test",
		},
		{
			name:     "absolute test source path",
			config:   &Config{WorkspaceRoot: "/ws", TestSourcePath: "/elsewhere/test"},
			resolve:  (*Config).TestSourceDir,
			expected: "/elsewhere/test",
		},
		{
			name:     "build dir",
			config:   &Config{WorkspaceRoot: "/ws", TestBuildPath: "build"},
			resolve:  (*Config).BuildDir,
			expected: "/ws/build",
		},
		{
			name:     "make cwd dot",
			config:   &Config{WorkspaceRoot: "/ws", MakeCwdPath: "."},
			resolve:  (*Config).MakeCwd,
			expected: "/ws",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.resolve(tt.config)
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestConfig_ExecutablePath(t *testing.T) {
	cfg := &Config{WorkspaceRoot: "/ws", TestBuildPath: "build"}

	got := cfg.ExecutablePath("/ws/test/utilsTest.c")
	want := "/ws/build/utilsTest.exe"
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `prettyTestLabel: true
prettyTestFileLabel: true
testBuildPath: out
testBuildCommandArgs: "-j4"
foldersCommandArgs: "create_folders"
debugConfiguration: gdb
`
	if err := os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(yaml), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(dir, Flags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.PrettyTestLabel || !cfg.PrettyTestFileLabel {
		t.Error("expected prettification to be enabled")
	}
	if cfg.TestBuildPath != "out" {
		t.Errorf("expected TestBuildPath out, got %s", cfg.TestBuildPath)
	}
	if cfg.TestBuildCommandArgs != "-j4" {
		t.Errorf("expected TestBuildCommandArgs -j4, got %s", cfg.TestBuildCommandArgs)
	}
	if cfg.DebugConfiguration != "gdb" {
		t.Errorf("expected DebugConfiguration gdb, got %s", cfg.DebugConfiguration)
	}
	// Unset keys keep their defaults.
	if cfg.TestSourcePath != DefaultTestSourcePath {
		t.Errorf("expected default TestSourcePath, got %s", cfg.TestSourcePath)
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	cfg, err := Load(t.TempDir(), Flags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TestBuildPath != DefaultTestBuildPath {
		t.Errorf("expected defaults without a config file, got %s", cfg.TestBuildPath)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Run("environment variable", func(t *testing.T) {
		t.Setenv("UTP_BUILD_PATH", "env-build")

		cfg, err := Load(t.TempDir(), Flags{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.TestBuildPath != "env-build" {
			t.Errorf("expected env override env-build, got %s", cfg.TestBuildPath)
		}
	})

	t.Run("dotenv file", func(t *testing.T) {
		os.Unsetenv("UTP_MAKE_CWD")
		defer os.Unsetenv("UTP_MAKE_CWD")

		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("UTP_MAKE_CWD=mk\n"), 0644); err != nil {
			t.Fatalf("failed to write .env: %v", err)
		}

		cfg, err := Load(dir, Flags{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.MakeCwdPath != "mk" {
			t.Errorf("expected .env override mk, got %s", cfg.MakeCwdPath)
		}
	})
}

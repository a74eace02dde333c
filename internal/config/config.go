package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for one workspace. Values are layered:
// defaults, then the workspace config file, then .env/environment
// variables, then command-line flags.
type Config struct {
	// WorkspaceRoot is the absolute path every relative setting is
	// resolved against. It is set at load time, never from the file.
	WorkspaceRoot string `yaml:"-"`

	// Label settings
	PrettyTestLabel     bool `yaml:"prettyTestLabel"`
	PrettyTestFileLabel bool `yaml:"prettyTestFileLabel"`

	// Scan roots and patterns
	ProjectSourcePath string `yaml:"projectSourcePath"`
	TestSourcePath    string `yaml:"testSourcePath"`
	TestFilePattern   string `yaml:"testFilePattern"`
	SourceFilePattern string `yaml:"sourceFilePattern"`

	// Extraction and prettification
	TestFunctionPrefix string `yaml:"testFunctionPrefix"`
	TestFileSuffix     string `yaml:"testFileSuffix"`

	// Build and execution
	TestBuildPath        string `yaml:"testBuildPath"`
	TestBuildCommandArgs string `yaml:"testBuildCommandArgs"`
	FoldersCommandArgs   string `yaml:"foldersCommandArgs"`
	MakeCwdPath          string `yaml:"makeCwdPath"`

	// Debugging
	DebugConfiguration string            `yaml:"debugConfiguration"`
	DebugProfiles      map[string]string `yaml:"debugProfiles"`

	// Report output
	OutputJSONFile string `yaml:"outputJSONFile"`
	OutputJSONDir  string `yaml:"outputJSONDir"`

	// Command flags
	Flags Flags `yaml:"-"`
}

// Flags holds command-line flags that feed into the configuration.
type Flags struct {
	NameFilter   string
	TestCases    bool
	OpenFailures bool
}

// New creates a new Config with defaults, rooted at the given workspace.
func New(workspaceRoot string) *Config {
	cfg := &Config{
		WorkspaceRoot:        workspaceRoot,
		ProjectSourcePath:    DefaultProjectSourcePath,
		TestSourcePath:       DefaultTestSourcePath,
		TestFilePattern:      DefaultTestFilePattern,
		SourceFilePattern:    DefaultSourceFilePattern,
		TestFunctionPrefix:   DefaultTestFunctionPrefix,
		TestFileSuffix:       DefaultTestFileSuffix,
		TestBuildPath:        DefaultTestBuildPath,
		TestBuildCommandArgs: "",
		FoldersCommandArgs:   "",
		MakeCwdPath:          DefaultMakeCwdPath,
		OutputJSONFile:       DefaultOutputJSONFile,
		OutputJSONDir:        DefaultOutputJSONDir,
		DebugProfiles:        map[string]string{},
	}
	for name, command := range DefaultDebugProfiles {
		cfg.DebugProfiles[name] = command
	}
	return cfg
}

// Load builds the effective configuration for a workspace.
func Load(workspaceRoot string, flags Flags) (*Config, error) {
	root, err := filepath.Abs(workspaceRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace root: %w", err)
	}

	cfg := New(root)

	if err := cfg.loadFile(filepath.Join(root, DefaultConfigFile)); err != nil {
		return nil, err
	}

	// .env is optional; plain environment variables still apply.
	_ = godotenv.Load(filepath.Join(root, ".env"))
	cfg.applyEnv()

	cfg.Flags = flags
	return cfg, nil
}

// loadFile merges the workspace config file into cfg. A missing file is
// not an error.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides path settings from UTP_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("UTP_TEST_SOURCE_PATH"); v != "" {
		c.TestSourcePath = v
	}
	if v := os.Getenv("UTP_PROJECT_SOURCE_PATH"); v != "" {
		c.ProjectSourcePath = v
	}
	if v := os.Getenv("UTP_BUILD_PATH"); v != "" {
		c.TestBuildPath = v
	}
	if v := os.Getenv("UTP_MAKE_CWD"); v != "" {
		c.MakeCwdPath = v
	}
}

// resolve turns a possibly relative path into an absolute one under the
// workspace root.
func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.WorkspaceRoot, path)
}

// TestSourceDir returns the absolute test scan root.
func (c *Config) TestSourceDir() string {
	return c.resolve(c.TestSourcePath)
}

// ProjectSourceDir returns the absolute source scan root.
func (c *Config) ProjectSourceDir() string {
	return c.resolve(c.ProjectSourcePath)
}

// BuildDir returns the absolute directory built executables land in.
func (c *Config) BuildDir() string {
	return c.resolve(c.TestBuildPath)
}

// MakeCwd returns the absolute working directory for build invocations.
func (c *Config) MakeCwd() string {
	return c.resolve(c.MakeCwdPath)
}

// ExecutablePath returns where the built executable for a test source file
// is expected: <testBuildPath>/<source-basename>.exe on every OS.
func (c *Config) ExecutablePath(sourceFile string) string {
	base := filepath.Base(sourceFile)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(c.BuildDir(), base+".exe")
}

// OutputPath returns the absolute path of the report JSON file, so every
// command reads and writes the same file regardless of cwd.
func (c *Config) OutputPath() string {
	p := filepath.Join(c.WorkspaceRoot, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

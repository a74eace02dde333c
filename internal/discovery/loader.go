package discovery

import (
	"utp/internal/config"
	"utp/internal/domain"
)

// Result is one complete discovery pass: the suite tree plus the file
// sets the watcher subscribes to.
type Result struct {
	Tree        *domain.RootSuite
	TestFiles   []string
	SourceFiles []string
}

// Loader runs a full discovery pass: scan the test and project source
// roots, then build the suite tree from the discovered test files.
type Loader struct {
	config  *config.Config
	scanner *Scanner
	builder *Builder
}

// NewLoader creates a new Loader. warn receives non-fatal scan problems.
func NewLoader(cfg *config.Config, warn func(string)) *Loader {
	return &Loader{
		config:  cfg,
		scanner: NewScanner(warn),
		builder: NewBuilder(cfg),
	}
}

// Load scans both configured roots and builds the suite tree.
func (l *Loader) Load() (*Result, error) {
	testFiles, err := l.scanner.Scan(l.config.TestSourceDir(), l.config.TestFilePattern)
	if err != nil {
		return nil, err
	}
	sourceFiles, err := l.scanner.Scan(l.config.ProjectSourceDir(), l.config.SourceFilePattern)
	if err != nil {
		return nil, err
	}

	tree, err := l.builder.Build(testFiles)
	if err != nil {
		return nil, err
	}
	return &Result{Tree: tree, TestFiles: testFiles, SourceFiles: sourceFiles}, nil
}

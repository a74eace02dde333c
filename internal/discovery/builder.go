package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"utp/internal/config"
	"utp/internal/domain"
)

// Builder assembles per-file test extractions into the two-level suite
// tree consumed by the UI and the run orchestrator.
type Builder struct {
	config    *config.Config
	extractor *Extractor
}

// NewBuilder creates a new Builder
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{
		config:    cfg,
		extractor: NewExtractor(cfg.TestFunctionPrefix),
	}
}

// Build reads every test file, extracts its test cases and assembles the
// root suite. Files without tests still produce an empty suite. A file
// read failure aborts the whole build.
func (b *Builder) Build(testFiles []string) (*domain.RootSuite, error) {
	suites := make([]*domain.SuiteNode, 0, len(testFiles))

	for _, file := range testFiles {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error reading test file %s: %w", file, err)
		}

		suite := &domain.SuiteNode{
			ID:    file,
			Label: b.suiteLabel(file),
			File:  file,
		}
		for _, extraction := range b.extractor.Extract(string(content)) {
			suite.Tests = append(suite.Tests, domain.TestCase{
				ID:    domain.TestID(file, extraction.Name),
				Name:  extraction.Name,
				Label: b.testLabel(extraction.Name),
				File:  file,
				Line:  extraction.Line,
			})
		}
		suites = append(suites, suite)
	}

	return domain.NewRootSuite(suites), nil
}

// suiteLabel computes the display label for a test file: its path relative
// to the workspace root, or the basename with the test-file suffix stripped
// when prettification is enabled.
func (b *Builder) suiteLabel(file string) string {
	if b.config.PrettyTestFileLabel {
		base := filepath.Base(file)
		return strings.TrimSuffix(base, b.config.TestFileSuffix)
	}
	if rel, err := filepath.Rel(b.config.WorkspaceRoot, file); err == nil {
		return rel
	}
	return file
}

// testLabel computes the display label for a test function name.
func (b *Builder) testLabel(name string) string {
	if b.config.PrettyTestLabel {
		return strings.TrimPrefix(name, b.config.TestFunctionPrefix)
	}
	return name
}

package discovery

import (
	"path/filepath"
	"strings"

	"utp/internal/domain"
)

// Filter narrows the suite tree by a name pattern.
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// Apply returns a tree keeping only suites and tests matching pattern.
// A suite whose label or basename matches keeps all of its tests;
// otherwise only its matching tests survive and a suite left with none
// is dropped. An empty pattern returns the tree unchanged.
func (f *Filter) Apply(tree *domain.RootSuite, pattern string) *domain.RootSuite {
	if pattern == "" {
		return tree
	}

	var suites []*domain.SuiteNode
	for _, suite := range tree.Suites {
		if f.Matches(suite.Label, pattern) || f.Matches(filepath.Base(suite.File), pattern) {
			suites = append(suites, suite)
			continue
		}

		var kept []domain.TestCase
		for _, test := range suite.Tests {
			if f.Matches(test.Name, pattern) || f.Matches(test.Label, pattern) {
				kept = append(kept, test)
			}
		}
		if len(kept) > 0 {
			suites = append(suites, &domain.SuiteNode{
				ID:    suite.ID,
				Label: suite.Label,
				File:  suite.File,
				Tests: kept,
			})
		}
	}

	return domain.NewRootSuite(suites)
}

// Matches reports whether name matches pattern. Patterns support * and ?
// wildcards ("*Timer*", "test_add?"); a pattern without wildcards matches
// as a plain substring.
func (f *Filter) Matches(name, pattern string) bool {
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}

	// Wildcard pattern that filepath.Match rejected, e.g. "*Timer*"
	// against a name with path separators. Fall back to requiring every
	// literal part between wildcards as a substring.
	parts := strings.Split(pattern, "*")
	matchedAny := false
	for _, part := range parts {
		if part == "" {
			continue
		}
		if !strings.Contains(name, part) {
			return false
		}
		matchedAny = true
	}
	return matchedAny
}

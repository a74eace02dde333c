package ui

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"utp/internal/config"
	"utp/internal/domain"
)

// Formatter formats and displays discovered test trees
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// displayPath returns the suite file path relative to the workspace root
// for cleaner display, falling back to the absolute path.
func (f *Formatter) displayPath(file string) string {
	relPath, err := filepath.Rel(f.config.WorkspaceRoot, file)
	if err != nil {
		return file
	}
	return relPath
}

// PrintTestList prints the discovered suites, optionally with their test
// cases. failedIDs is optional; suites and tests whose id appears in the
// set are marked with [F] in red (failures from the last stored run).
func (f *Formatter) PrintTestList(tree *domain.RootSuite, showTestCases bool, failedIDs map[string]struct{}) {
	marker := func(id string) string {
		if len(failedIDs) == 0 {
			return ""
		}
		if _, ok := failedIDs[id]; ok {
			return " " + color.RedString("[F]")
		}
		return ""
	}

	if showTestCases {
		// Display tree view with test cases
		color.Green("Found %d test file(s) with test cases:\n", len(tree.Suites))

		for i, suite := range tree.Suites {
			isLastFile := i == len(tree.Suites)-1

			// Print test file as root node
			if isLastFile {
				color.Cyan("└── %s%s", f.displayPath(suite.File), marker(suite.ID))
			} else {
				color.Cyan("├── %s%s", f.displayPath(suite.File), marker(suite.ID))
			}

			// Print test cases as children
			if len(suite.Tests) == 0 {
				var prefix string
				if isLastFile {
					prefix = "    └── "
				} else {
					prefix = "│   └── "
				}
				fmt.Printf("%s%s\n", prefix, color.RedString("(no test cases found)"))
			} else {
				for j, test := range suite.Tests {
					isLastCase := j == len(suite.Tests)-1

					var prefix string
					if isLastFile {
						if isLastCase {
							prefix = "    └── "
						} else {
							prefix = "    ├── "
						}
					} else {
						if isLastCase {
							prefix = "│   └── "
						} else {
							prefix = "│   ├── "
						}
					}

					fmt.Printf("%s%s%s\n", prefix, color.YellowString(test.Label), marker(test.ID))
				}
			}

			// Add spacing between files (except for the last one)
			if i < len(tree.Suites)-1 {
				fmt.Println()
			}
		}
	} else {
		// Display simple list of test files
		color.Green("Found %d test file(s):\n", len(tree.Suites))

		for i, suite := range tree.Suites {
			if i == len(tree.Suites)-1 {
				color.Cyan("└── %s%s", f.displayPath(suite.File), marker(suite.ID))
			} else {
				color.Cyan("├── %s%s", f.displayPath(suite.File), marker(suite.ID))
			}
		}
	}
}

// FailedIDs builds the id set PrintTestList marks from a stored report.
// Both the owning suite and the failed test itself are included, so the
// plain file list shows markers too.
func FailedIDs(report *domain.RunReport) map[string]struct{} {
	if report == nil || len(report.Failures) == 0 {
		return nil
	}
	ids := make(map[string]struct{}, len(report.Failures)*2)
	for _, failure := range report.Failures {
		ids[failure.File] = struct{}{}
		ids[domain.TestID(failure.File, failure.TestName)] = struct{}{}
	}
	return ids
}

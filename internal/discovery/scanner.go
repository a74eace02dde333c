package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Scanner recursively collects regular files whose basename matches a
// glob pattern. Scan failures below the root are reported through the
// warn callback and never abort the walk.
type Scanner struct {
	warn func(msg string)
}

// NewScanner creates a new Scanner. warn may be nil.
func NewScanner(warn func(string)) *Scanner {
	if warn == nil {
		warn = func(string) {}
	}
	return &Scanner{warn: warn}
}

// Scan finds all files under root whose basename matches pattern and
// returns their absolute paths in lexical walk order. A missing or
// unreadable root warns and yields an empty result; only a malformed
// pattern is an error. Safe for concurrent use with different roots.
func (s *Scanner) Scan(root, pattern string) ([]string, error) {
	if _, err := filepath.Match(pattern, "probe"); err != nil {
		return nil, fmt.Errorf("invalid file pattern %q: %w", pattern, err)
	}

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		s.warn(fmt.Sprintf("cannot scan %s: %v", root, err))
		return nil, nil
	}
	if !info.IsDir() {
		s.warn(fmt.Sprintf("scan path is not a directory: %s", root))
		return nil, nil
	}

	var files []string
	filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// Unreadable directory: report it, keep walking siblings.
			s.warn(fmt.Sprintf("cannot read %s: %v", path, err))
			return nil
		}

		if d.IsDir() {
			// Skip hidden directories (starting with .)
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		if matched, _ := filepath.Match(pattern, d.Name()); matched {
			abs, err := filepath.Abs(path)
			if err != nil {
				abs = path
			}
			files = append(files, abs)
		}
		return nil
	})

	return files, nil
}

package discovery

import (
	"regexp"
	"strings"
)

// Extraction is one test function declaration found in C source text.
type Extraction struct {
	Name   string // full function name, including the configured prefix
	Line   int    // 0-based line of the void keyword
	Offset int    // byte offset of the match start
	Decl   string // matched declaration text
}

// Extractor finds Unity test function declarations of the form
// `void <prefix><name>(...)` in C source text.
type Extractor struct {
	pattern *regexp.Regexp
}

// NewExtractor creates an Extractor for test functions starting with
// prefix (e.g. "test_").
func NewExtractor(prefix string) *Extractor {
	// Leading whitespace is captured so line numbers can be corrected
	// when the declaration follows a blank line or a backslash-newline
	// continuation. Whitespace between tokens may itself contain
	// continuations, hence (?:\s|\\)+ instead of \s+.
	pattern := regexp.MustCompile(`(\s*)\bvoid(?:\s|\\)+(` + regexp.QuoteMeta(prefix) + `\w+)(?:\s|\\)*\(`)
	return &Extractor{pattern: pattern}
}

// Extract returns all test declarations in contents, in file order.
// An empty file or a file without matches yields an empty result.
func (e *Extractor) Extract(contents string) []Extraction {
	matches := e.pattern.FindAllStringSubmatchIndex(contents, -1)
	if len(matches) == 0 {
		return nil
	}

	extractions := make([]Extraction, 0, len(matches))
	for _, m := range matches {
		start, end := m[0], m[1]
		leading := contents[m[2]:m[3]]
		// Newlines before the match plus newlines inside the leading
		// whitespace land on the line holding the void keyword.
		line := strings.Count(contents[:start], "\n") + strings.Count(leading, "\n")
		extractions = append(extractions, Extraction{
			Name:   contents[m[4]:m[5]],
			Line:   line,
			Offset: start,
			Decl:   strings.TrimSpace(contents[start:end]),
		})
	}
	return extractions
}

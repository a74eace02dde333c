package domain

// RootID identifies the synthetic root suite.
const RootID = "root"

// RootLabel is the display label of the root suite.
const RootLabel = "Unity Tests"

// TestCase is one discovered test function within a test source file.
// Its identity is the owning file plus the raw function name; instances are
// immutable and recreated wholesale on every load.
type TestCase struct {
	ID    string // "<suite file>::<raw name>"
	Name  string // raw function name, e.g. "test_addTwoNumbers"
	Label string // display label (prettified when configured)
	File  string // absolute path of the owning source file
	Line  int    // 0-based line of the "void" token
}

// SuiteNode is one test source file and its contained tests, in file order.
type SuiteNode struct {
	ID    string // normalized absolute file path
	Label string // relative path, or prettified basename
	File  string // same as ID; kept explicit for clarity at call sites
	Tests []TestCase
}

// Test returns the test case with the given id, or nil.
func (s *SuiteNode) Test(id string) *TestCase {
	for i := range s.Tests {
		if s.Tests[i].ID == id {
			return &s.Tests[i]
		}
	}
	return nil
}

// RootSuite owns the ordered top-level suites. The tree is always exactly
// two levels deep: root, file suites, tests.
type RootSuite struct {
	ID     string
	Label  string
	Suites []*SuiteNode
}

// NewRootSuite wraps the given suites under the synthetic root.
func NewRootSuite(suites []*SuiteNode) *RootSuite {
	return &RootSuite{ID: RootID, Label: RootLabel, Suites: suites}
}

// FindSuite returns the suite with the given id, or nil.
func (r *RootSuite) FindSuite(id string) *SuiteNode {
	for _, s := range r.Suites {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// FindTest returns the test with the given id and its owning suite.
func (r *RootSuite) FindTest(id string) (*SuiteNode, *TestCase) {
	for _, s := range r.Suites {
		if t := s.Test(id); t != nil {
			return s, t
		}
	}
	return nil, nil
}

// ResolveSuite resolves a suite-level or test-level id to the suite that
// owns it. Unknown ids resolve to nil.
func (r *RootSuite) ResolveSuite(id string) *SuiteNode {
	if s := r.FindSuite(id); s != nil {
		return s
	}
	s, _ := r.FindTest(id)
	return s
}

// SuiteIDs returns the ids of all top-level suites in order.
func (r *RootSuite) SuiteIDs() []string {
	ids := make([]string, len(r.Suites))
	for i, s := range r.Suites {
		ids[i] = s.ID
	}
	return ids
}

// TestID builds the id of a test within a test source file.
func TestID(file, name string) string {
	return file + "::" + name
}

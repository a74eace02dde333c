package discovery

import "testing"

func TestExtractor_Extract(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected []Extraction
	}{
		{
			name:   "single test at file start",
			source: "void test_addTwoNumbers(void)\n{\n}\n",
			expected: []Extraction{
				{Name: "test_addTwoNumbers", Line: 0},
			},
		},
		{
			name:   "test after include lines",
			source: "#include \"unity.h\"\n#include \"math.h\"\n\nvoid test_sub(void)\n{\n}\n",
			expected: []Extraction{
				{Name: "test_sub", Line: 3},
			},
		},
		{
			name:   "multiple tests in file order",
			source: "void test_first(void) {}\n\nvoid test_second(void) {}\nvoid test_third(void) {}\n",
			expected: []Extraction{
				{Name: "test_first", Line: 0},
				{Name: "test_second", Line: 2},
				{Name: "test_third", Line: 3},
			},
		},
		{
			name:   "backslash continuation between void and name",
			source: "void \\\n    test_continued(void)\n{\n}\n",
			expected: []Extraction{
				{Name: "test_continued", Line: 0},
			},
		},
		{
			name:   "continuation before parameter list",
			source: "int a;\nvoid test_params \\\n(void)\n{\n}\n",
			expected: []Extraction{
				{Name: "test_params", Line: 1},
			},
		},
		{
			name:   "indented declaration",
			source: "#ifdef UNIT\n    void test_indented(void) {}\n#endif\n",
			expected: []Extraction{
				{Name: "test_indented", Line: 1},
			},
		},
		{
			name:     "non-test functions ignored",
			source:   "void setUp(void) {}\nvoid tearDown(void) {}\nint test_notVoid(void) { return 0; }\n",
			expected: nil,
		},
		{
			name:     "void inside an identifier does not match",
			source:   "int avoid test_trap(void);\n",
			expected: nil,
		},
		{
			name:     "empty file",
			source:   "",
			expected: nil,
		},
		{
			name:     "no newline at end of file",
			source:   "void test_noTrailingNewline(void) {}",
			expected: []Extraction{{Name: "test_noTrailingNewline", Line: 0}},
		},
	}

	extractor := NewExtractor("test_")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractor.Extract(tt.source)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %d extractions, got %d: %+v", len(tt.expected), len(got), got)
			}
			for i, want := range tt.expected {
				if got[i].Name != want.Name {
					t.Errorf("extraction %d: expected name %s, got %s", i, want.Name, got[i].Name)
				}
				if got[i].Line != want.Line {
					t.Errorf("extraction %d (%s): expected line %d, got %d", i, want.Name, want.Line, got[i].Line)
				}
			}
		})
	}
}

func TestExtractor_CustomPrefix(t *testing.T) {
	extractor := NewExtractor("check_")

	got := extractor.Extract("void check_timer(void) {}\nvoid test_timer(void) {}\n")
	if len(got) != 1 {
		t.Fatalf("expected 1 extraction, got %d", len(got))
	}
	if got[0].Name != "check_timer" {
		t.Errorf("expected check_timer, got %s", got[0].Name)
	}
}

func TestExtractor_OffsetAndDecl(t *testing.T) {
	source := "int x;\nvoid test_offset(void) {}\n"
	extractor := NewExtractor("test_")

	got := extractor.Extract(source)
	if len(got) != 1 {
		t.Fatalf("expected 1 extraction, got %d", len(got))
	}
	// Offset points at the match start, which includes the whitespace
	// run preceding the declaration.
	if got[0].Offset != 6 {
		t.Errorf("expected offset 6, got %d", got[0].Offset)
	}
	if got[0].Decl != "void test_offset(" {
		t.Errorf("unexpected declaration text %q", got[0].Decl)
	}
}

package cli

import "utp/internal/config"

// Flags holds command-line flags
type Flags struct {
	Workspace    string
	NameFilter   string
	TestCases    bool
	OpenFailures bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		NameFilter:   f.NameFilter,
		TestCases:    f.TestCases,
		OpenFailures: f.OpenFailures,
	}
}

package config

const (
	// DefaultConfigFile is the workspace config file name
	DefaultConfigFile = ".utp.yaml"
	// DefaultProjectSourcePath is the default source scan root
	DefaultProjectSourcePath = "src"
	// DefaultTestSourcePath is the default test scan root
	DefaultTestSourcePath = "test"
	// DefaultTestFilePattern matches test source files during scans
	DefaultTestFilePattern = "*Test.c"
	// DefaultSourceFilePattern matches watched project sources
	DefaultSourceFilePattern = "*.[ch]"
	// DefaultTestFunctionPrefix is the prefix of Unity test functions
	DefaultTestFunctionPrefix = "test_"
	// DefaultTestFileSuffix is stripped by file-label prettification
	DefaultTestFileSuffix = "Test.c"
	// DefaultTestBuildPath is where built executables are expected
	DefaultTestBuildPath = "build"
	// DefaultMakeCwdPath is the working directory for build invocations
	DefaultMakeCwdPath = "."
	// DefaultOutputJSONFile is the default report file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputJSONDir is the default report directory
	DefaultOutputJSONDir = "storage"
)

// DefaultDebugProfiles are the launch profiles known out of the box. The
// test executable path is appended to the profile's command line.
var DefaultDebugProfiles = map[string]string{
	"gdb": "gdb --args",
}

package discovery

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"utp/internal/config"
)

func newWatchedWorkspace(t *testing.T) (*Watcher, string, string) {
	t.Helper()
	dir := t.TempDir()

	testFile := filepath.Join(dir, "aTest.c")
	if err := os.WriteFile(testFile, []byte("void test_a(void) {}\n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	sourceFile := filepath.Join(dir, "a.c")
	if err := os.WriteFile(sourceFile, []byte("int a;\n"), 0644); err != nil {
		t.Fatalf("failed to write source file: %v", err)
	}

	watcher, err := NewWatcher(config.New(dir), nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	t.Cleanup(func() { watcher.Close() })

	if err := watcher.Watch([]string{testFile}, []string{sourceFile}); err != nil {
		t.Fatalf("failed to watch workspace: %v", err)
	}
	return watcher, testFile, sourceFile
}

func awaitChange(t *testing.T, watcher *Watcher) Change {
	t.Helper()
	select {
	case change, ok := <-watcher.Changes():
		if !ok {
			t.Fatal("watcher closed unexpectedly")
		}
		return change
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
	return Change{}
}

func TestWatcher_TestFileChangeRequestsReload(t *testing.T) {
	watcher, testFile, _ := newWatchedWorkspace(t)

	if err := os.WriteFile(testFile, []byte("void test_a(void) {}\nvoid test_b(void) {}\n"), 0644); err != nil {
		t.Fatalf("failed to modify test file: %v", err)
	}

	change := awaitChange(t, watcher)
	if !change.Reload {
		t.Error("expected a test file change to request a reload")
	}
	if change.Path != testFile {
		t.Errorf("expected path %s, got %s", testFile, change.Path)
	}
}

func TestWatcher_SourceChangeIsPlainAutorun(t *testing.T) {
	watcher, _, sourceFile := newWatchedWorkspace(t)

	if err := os.WriteFile(sourceFile, []byte("int a = 1;\n"), 0644); err != nil {
		t.Fatalf("failed to modify source file: %v", err)
	}

	change := awaitChange(t, watcher)
	if change.Reload {
		t.Error("expected a plain source change not to request a reload")
	}
}

func TestWatcher_BurstIsDebouncedIntoOneChange(t *testing.T) {
	watcher, testFile, sourceFile := newWatchedWorkspace(t)

	if err := os.WriteFile(sourceFile, []byte("int a = 2;\n"), 0644); err != nil {
		t.Fatalf("failed to modify source file: %v", err)
	}
	if err := os.WriteFile(testFile, []byte("void test_c(void) {}\n"), 0644); err != nil {
		t.Fatalf("failed to modify test file: %v", err)
	}

	change := awaitChange(t, watcher)
	if !change.Reload {
		t.Error("expected the merged change to carry the reload flag")
	}

	// The burst must not produce a second notification.
	select {
	case extra := <-watcher.Changes():
		t.Errorf("unexpected second change: %+v", extra)
	case <-time.After(700 * time.Millisecond):
	}
}

func TestWatcher_NewTestFileInWatchedDirectory(t *testing.T) {
	watcher, testFile, _ := newWatchedWorkspace(t)

	created := filepath.Join(filepath.Dir(testFile), "freshTest.c")
	if err := os.WriteFile(created, []byte("void test_fresh(void) {}\n"), 0644); err != nil {
		t.Fatalf("failed to create new test file: %v", err)
	}

	change := awaitChange(t, watcher)
	if !change.Reload {
		t.Error("expected a new test file to request a reload")
	}
}

func TestWatcher_UnrelatedFilesAreIgnored(t *testing.T) {
	watcher, testFile, _ := newWatchedWorkspace(t)

	unrelated := filepath.Join(filepath.Dir(testFile), "notes.md")
	if err := os.WriteFile(unrelated, []byte("scratch\n"), 0644); err != nil {
		t.Fatalf("failed to write unrelated file: %v", err)
	}

	select {
	case change := <-watcher.Changes():
		t.Errorf("unexpected change for unrelated file: %+v", change)
	case <-time.After(700 * time.Millisecond):
	}
}

func TestWatcher_CloseEndsChangeStream(t *testing.T) {
	watcher, _, _ := newWatchedWorkspace(t)

	if err := watcher.Close(); err != nil {
		t.Fatalf("failed to close watcher: %v", err)
	}

	select {
	case _, ok := <-watcher.Changes():
		if ok {
			t.Error("expected the change channel to be closed")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("change channel not closed after Close")
	}
}

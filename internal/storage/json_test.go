package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"utp/internal/config"
	"utp/internal/domain"
)

func sampleReport() *domain.RunReport {
	return &domain.RunReport{
		Meta: domain.RunMeta{
			RunID:           "7c2e4a9a-1111-2222-3333-444455556666",
			SuitesRun:       2,
			TestsChecked:    5,
			Passed:          3,
			Failed:          1,
			Unknown:         1,
			Duration:        "1.25s",
			DurationSeconds: 1.25,
			Timestamp:       "2026-08-25T10:00:00Z",
		},
		Failures: []domain.FailureRecord{
			{
				TestName: "test_sub",
				Label:    "test_sub",
				Suite:    "test/mathTest.c",
				File:     "/ws/test/mathTest.c",
				Line:     19,
				Message:  "Expected 4 Was 5",
			},
		},
	}
}

func TestJSONStorage_SaveAndLoad(t *testing.T) {
	cfg := config.New(t.TempDir())
	store := NewJSONStorage(cfg)

	saved := sampleReport()
	if err := store.Save(saved); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// The output directory is created on demand.
	if _, err := os.Stat(filepath.Join(cfg.WorkspaceRoot, cfg.OutputJSONDir, cfg.OutputJSONFile)); err != nil {
		t.Fatalf("expected report file: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(saved, loaded) {
		t.Errorf("loaded report differs:\nsaved:  %+v\nloaded: %+v", saved, loaded)
	}
}

func TestJSONStorage_SaveReplacesPreviousReport(t *testing.T) {
	cfg := config.New(t.TempDir())
	store := NewJSONStorage(cfg)

	first := sampleReport()
	if err := store.Save(first); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	second := sampleReport()
	second.Meta.RunID = "second-run"
	second.Failures = nil
	if err := store.Save(second); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Meta.RunID != "second-run" {
		t.Errorf("expected the second report, got %s", loaded.Meta.RunID)
	}
	if len(loaded.Failures) != 0 {
		t.Errorf("expected no failures, got %+v", loaded.Failures)
	}
}

func TestJSONStorage_LoadWithoutReport(t *testing.T) {
	store := NewJSONStorage(config.New(t.TempDir()))
	if _, err := store.Load(); err == nil {
		t.Fatal("expected an error when no report exists")
	}
}

func TestJSONStorage_ResolvedFlagRoundTrips(t *testing.T) {
	cfg := config.New(t.TempDir())
	store := NewJSONStorage(cfg)

	report := sampleReport()
	if err := store.Save(report); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	loaded.Failures[0].Resolved = true
	if err := store.Save(loaded); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	again, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !again.Failures[0].Resolved {
		t.Error("expected the resolved flag to survive a save/load cycle")
	}
}

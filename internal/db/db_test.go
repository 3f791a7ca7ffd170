package db

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInit(t *testing.T) {
	tmpDir := t.TempDir()

	db, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer db.Close()

	dbPath := filepath.Join(tmpDir, FileName)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file not created at %s", dbPath)
	}

	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode;").Scan(&journalMode); err != nil {
		t.Fatalf("failed to query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("journal_mode = %s, want wal", journalMode)
	}

	var tableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='builds'").Scan(&tableName)
	if err != nil {
		t.Fatalf("builds table not found: %v", err)
	}
}

func TestInit_CreatesDirectories(t *testing.T) {
	baseDir := filepath.Join(t.TempDir(), "nested", "data")

	db, err := Init(baseDir)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(filepath.Join(baseDir, FileName)); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

func TestInit_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()

	db1, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("first Init() error = %v", err)
	}
	if err := InsertBuild(db1, &Build{ID: "01A", CacheKey: "k", Templates: []string{"Go"}, Path: "/p", BuiltAt: 1}); err != nil {
		t.Fatalf("InsertBuild() error = %v", err)
	}
	db1.Close()

	db2, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	defer db2.Close()

	version, err := GetUserVersion(db2)
	if err != nil {
		t.Fatalf("GetUserVersion() error = %v", err)
	}
	if version != CurrentSchemaVersion {
		t.Errorf("user_version = %d, want %d", version, CurrentSchemaVersion)
	}

	n, err := CountBuilds(db2)
	if err != nil {
		t.Fatalf("CountBuilds() error = %v", err)
	}
	if n != 1 {
		t.Errorf("CountBuilds() = %d, want 1 (data survives re-init)", n)
	}
}

func TestRecentBuilds(t *testing.T) {
	db, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer db.Close()

	records := []Build{
		{ID: "01A", CacheKey: "go", Templates: []string{"Go"}, Path: "/tmp/go", Bytes: 10, BuiltAt: 100},
		{ID: "01B", CacheKey: "rust", Templates: []string{"Rust"}, Path: "/tmp/rust", Bytes: 20, BuiltAt: 200},
		{ID: "01C", CacheKey: "go", Templates: []string{"Go"}, Path: "/tmp/go", Bytes: 11, BuiltAt: 300},
		{ID: "01D", CacheKey: "both", Templates: []string{"Go", "Rust"}, Path: "/tmp/both", Bytes: 30, BuiltAt: 150},
	}
	for i := range records {
		if err := InsertBuild(db, &records[i]); err != nil {
			t.Fatalf("InsertBuild(%s) error = %v", records[i].ID, err)
		}
	}

	builds, err := RecentBuilds(db, 10)
	if err != nil {
		t.Fatalf("RecentBuilds() error = %v", err)
	}
	if len(builds) != 3 {
		t.Fatalf("RecentBuilds() returned %d builds, want 3 (one per cache key)", len(builds))
	}

	wantOrder := []string{"01C", "01B", "01D"}
	for i, id := range wantOrder {
		if builds[i].ID != id {
			t.Errorf("builds[%d].ID = %s, want %s", i, builds[i].ID, id)
		}
	}
	if builds[0].Bytes != 11 || builds[0].BuiltAt != 300 {
		t.Errorf("latest go build = %+v, want bytes 11 at 300", builds[0])
	}
	if len(builds[2].Templates) != 2 || builds[2].Templates[1] != "Rust" {
		t.Errorf("templates not decoded: %+v", builds[2].Templates)
	}

	limited, err := RecentBuilds(db, 1)
	if err != nil {
		t.Fatalf("RecentBuilds(1) error = %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "01C" {
		t.Errorf("RecentBuilds(1) = %+v, want only 01C", limited)
	}
}

func TestRecentBuilds_Empty(t *testing.T) {
	db, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer db.Close()

	builds, err := RecentBuilds(db, 5)
	if err != nil {
		t.Fatalf("RecentBuilds() error = %v", err)
	}
	if len(builds) != 0 {
		t.Errorf("RecentBuilds() = %v, want empty", builds)
	}
}

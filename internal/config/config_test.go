package config

import (
	"os"
	"path/filepath"
	"testing"
)

// noEnv is an environment with nothing set.
func noEnv(string) string { return "" }

// envOf returns a getenv func backed by a map.
func envOf(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestLoad_DefaultWhenMissing(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := LoadWithEnv(tmpDir, noEnv)
	if err != nil {
		t.Fatalf("LoadWithEnv() error = %v", err)
	}
	if cfg.ArchiveURL != DefaultArchiveURL {
		t.Errorf("ArchiveURL = %q, want %q", cfg.ArchiveURL, DefaultArchiveURL)
	}
	if cfg.HistoryLimit != DefaultConfig().HistoryLimit {
		t.Errorf("HistoryLimit = %d, want %d", cfg.HistoryLimit, DefaultConfig().HistoryLimit)
	}
	if cfg.RepositoryDir != filepath.Join(tmpDir, "templates") {
		t.Errorf("RepositoryDir = %q, want %q", cfg.RepositoryDir, filepath.Join(tmpDir, "templates"))
	}
	if cfg.BuildDir != os.TempDir() {
		t.Errorf("BuildDir = %q, want %q", cfg.BuildDir, os.TempDir())
	}
}

func TestLoad_OverridesFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	content := `{"archive_url": "http://localhost/a.zip", "history_limit": 5, "build_dir": "/var/gi"}`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadWithEnv(tmpDir, noEnv)
	if err != nil {
		t.Fatalf("LoadWithEnv() error = %v", err)
	}
	if cfg.ArchiveURL != "http://localhost/a.zip" {
		t.Errorf("ArchiveURL = %q", cfg.ArchiveURL)
	}
	if cfg.HistoryLimit != 5 {
		t.Errorf("HistoryLimit = %d, want 5", cfg.HistoryLimit)
	}
	if cfg.BuildDir != "/var/gi" {
		t.Errorf("BuildDir = %q, want /var/gi", cfg.BuildDir)
	}
	if cfg.DownloadTimeoutSeconds != 60 {
		t.Errorf("DownloadTimeoutSeconds = %d, want 60 (default)", cfg.DownloadTimeoutSeconds)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{not json}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := LoadWithEnv(tmpDir, noEnv); err == nil {
		t.Fatalf("LoadWithEnv() expected error, got nil")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{"history_limit": 5, "log_level": "info"}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadWithEnv(tmpDir, envOf(map[string]string{
		"history_limit":         "9",
		"alfred_workflow_cache": "/cache",
	}))
	if err != nil {
		t.Fatalf("LoadWithEnv() error = %v", err)
	}
	if cfg.HistoryLimit != 9 {
		t.Errorf("HistoryLimit = %d, want 9 (env override)", cfg.HistoryLimit)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info (file)", cfg.LogLevel)
	}
	if cfg.BuildDir != "/cache" {
		t.Errorf("BuildDir = %q, want /cache (workflow cache)", cfg.BuildDir)
	}
}

func TestFromEnv(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantLevel string
		wantLimit int
	}{
		{
			name: "empty",
			env:  map[string]string{},
		},
		{
			name:      "alfred debug forces debug level",
			env:       map[string]string{"alfred_debug": "1", "log_level": "error"},
			wantLevel: "debug",
		},
		{
			name:      "invalid limit ignored",
			env:       map[string]string{"history_limit": "lots"},
			wantLimit: 0,
		},
		{
			name:      "negative limit ignored",
			env:       map[string]string{"history_limit": "-3"},
			wantLimit: 0,
		},
		{
			name:      "valid limit",
			env:       map[string]string{"history_limit": " 7 "},
			wantLimit: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := FromEnv(envOf(tt.env))
			if cfg.LogLevel != tt.wantLevel {
				t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, tt.wantLevel)
			}
			if cfg.HistoryLimit != tt.wantLimit {
				t.Errorf("HistoryLimit = %d, want %d", cfg.HistoryLimit, tt.wantLimit)
			}
		})
	}
}

func TestLoad_DisabledTools(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{"disabled_tools": ["gitignore_update", "gitignore_history"]}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadWithEnv(tmpDir, noEnv)
	if err != nil {
		t.Fatalf("LoadWithEnv() error = %v", err)
	}

	if len(cfg.DisabledTools) != 2 {
		t.Fatalf("DisabledTools length = %d, want 2", len(cfg.DisabledTools))
	}
	if cfg.DisabledTools[0] != "gitignore_update" {
		t.Errorf("DisabledTools[0] = %q, want %q", cfg.DisabledTools[0], "gitignore_update")
	}
}

func TestMerge_ScalarOverride(t *testing.T) {
	base := &Config{HistoryLimit: 20, DownloadTimeoutSeconds: 60, ArchiveURL: "a"}
	overlay := &Config{HistoryLimit: 5}

	result := Merge(base, overlay)

	if result.HistoryLimit != 5 {
		t.Errorf("HistoryLimit = %d, want 5 (overlay)", result.HistoryLimit)
	}
	if result.DownloadTimeoutSeconds != 60 {
		t.Errorf("DownloadTimeoutSeconds = %d, want 60 (base, overlay is zero)", result.DownloadTimeoutSeconds)
	}
	if result.ArchiveURL != "a" {
		t.Errorf("ArchiveURL = %q, want a (base)", result.ArchiveURL)
	}
}

func TestMerge_ArrayMergeDedup(t *testing.T) {
	base := &Config{DisabledTools: []string{"gitignore_update", "gitignore_build"}}
	overlay := &Config{DisabledTools: []string{"gitignore_build", " gitignore_history ", ""}}

	result := Merge(base, overlay)

	if len(result.DisabledTools) != 3 {
		t.Fatalf("DisabledTools = %v, want 3 merged entries", result.DisabledTools)
	}
	if result.DisabledTools[2] != "gitignore_history" {
		t.Errorf("DisabledTools[2] = %q, want trimmed gitignore_history", result.DisabledTools[2])
	}
}

func TestMerge_EmptyArraysStayNil(t *testing.T) {
	result := Merge(&Config{}, &Config{})
	if result.DisabledTools != nil {
		t.Errorf("DisabledTools = %v, want nil", result.DisabledTools)
	}
}

package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultArchiveURL is the github/gitignore snapshot used to refresh the catalog.
const DefaultArchiveURL = "https://github.com/github/gitignore/archive/main.zip"

// Config holds application configuration.
type Config struct {
	// ArchiveURL is the ZIP archive downloaded by the update action.
	ArchiveURL string `json:"archive_url,omitempty"`

	// RepositoryDir is the flat directory holding the *.gitignore templates.
	// Empty means <data dir>/templates.
	RepositoryDir string `json:"repository_dir,omitempty"`

	// BuildDir is where combined .gitignore files are written.
	// Empty means the Alfred workflow cache directory, or the OS temp dir outside Alfred.
	BuildDir string `json:"build_dir,omitempty"`

	// DownloadTimeoutSeconds bounds the archive download.
	DownloadTimeoutSeconds int `json:"download_timeout_seconds,omitempty"`

	// HistoryLimit is the number of recent builds listed by the history action.
	HistoryLimit int `json:"history_limit,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ArchiveURL:             DefaultArchiveURL,
		DownloadTimeoutSeconds: 60,
		HistoryLimit:           20,
		LogLevel:               "warn",
	}
}

// Load loads configuration from baseDir/config.json, then applies Alfred
// workflow variables from the environment on top.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of the workflow data dir.
func Load(baseDir string) (*Config, error) {
	return LoadWithEnv(baseDir, os.Getenv)
}

// LoadWithEnv is Load with an explicit environment lookup.
// Environment values take precedence over the file; both sit on top of the defaults.
func LoadWithEnv(baseDir string, getenv func(string) string) (*Config, error) {
	file, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}

	cfg := Merge(Merge(DefaultConfig(), file), FromEnv(getenv))
	cfg.resolveDirs(baseDir, getenv)
	return cfg, nil
}

// FromEnv reads the workflow variables Alfred exports into the process environment.
// Unset or unparsable values are left at their zero value.
func FromEnv(getenv func(string) string) *Config {
	cfg := &Config{
		ArchiveURL:    strings.TrimSpace(getenv("archive_url")),
		RepositoryDir: strings.TrimSpace(getenv("repository_dir")),
		BuildDir:      strings.TrimSpace(getenv("build_dir")),
		LogLevel:      strings.TrimSpace(getenv("log_level")),
	}
	if n, err := strconv.Atoi(strings.TrimSpace(getenv("download_timeout_seconds"))); err == nil && n > 0 {
		cfg.DownloadTimeoutSeconds = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(getenv("history_limit"))); err == nil && n > 0 {
		cfg.HistoryLimit = n
	}
	// Alfred sets alfred_debug=1 while its debugger panel is open
	if getenv("alfred_debug") == "1" {
		cfg.LogLevel = "debug"
	}
	return cfg
}

// resolveDirs fills in directory defaults that depend on the data dir.
func (c *Config) resolveDirs(baseDir string, getenv func(string) string) {
	if c.RepositoryDir == "" {
		c.RepositoryDir = filepath.Join(baseDir, "templates")
	}
	if c.BuildDir == "" {
		c.BuildDir = getenv("alfred_workflow_cache")
	}
	if c.BuildDir == "" {
		c.BuildDir = os.TempDir()
	}
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.ArchiveURL = firstNonEmpty(overlay.ArchiveURL, base.ArchiveURL)
	result.RepositoryDir = firstNonEmpty(overlay.RepositoryDir, base.RepositoryDir)
	result.BuildDir = firstNonEmpty(overlay.BuildDir, base.BuildDir)
	result.LogLevel = firstNonEmpty(overlay.LogLevel, base.LogLevel)

	result.DownloadTimeoutSeconds = overlay.DownloadTimeoutSeconds
	if result.DownloadTimeoutSeconds == 0 {
		result.DownloadTimeoutSeconds = base.DownloadTimeoutSeconds
	}

	result.HistoryLimit = overlay.HistoryLimit
	if result.HistoryLimit == 0 {
		result.HistoryLimit = base.HistoryLimit
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

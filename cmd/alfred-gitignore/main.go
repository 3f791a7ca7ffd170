package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/hpungsan/alfred-gitignore/internal/config"
	"github.com/hpungsan/alfred-gitignore/internal/db"
	"github.com/hpungsan/alfred-gitignore/internal/logging"
	"github.com/hpungsan/alfred-gitignore/internal/mcp"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// dataDir returns the workflow data directory Alfred provides, or
// ~/.alfred-gitignore when running outside Alfred.
func dataDir() (string, error) {
	if dir := os.Getenv("alfred_workflow_data"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".alfred-gitignore"), nil
}

// isTerminal returns true if stdout is a terminal rather than Alfred's pipe.
func isTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func main() {
	env := &cliEnv{terminal: isTerminal()}

	baseDir, err := dataDir()
	if err != nil {
		env.fail(os.Stdout, os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := config.Load(baseDir)
	if err != nil {
		env.fail(os.Stdout, os.Stderr, fmt.Errorf("failed to load config: %w", err))
		os.Exit(1)
	}
	env.cfg = cfg

	logger := logging.New(os.Stderr, cfg.LogLevel)
	slog.SetDefault(logger)
	env.logger = logger

	if unknown := mcp.ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
		logger.Warn("unknown tools in disabled_tools", "tools", unknown)
	}

	// The ledger is optional: without it builds still work and history reports an error
	var database *sql.DB
	if database, err = db.Init(baseDir); err != nil {
		logger.Warn("build ledger unavailable", "dir", baseDir, "error", err)
	} else {
		defer database.Close()
	}
	env.db = database

	app := newCLIApp(env)
	if err := app.Run(os.Args); err != nil {
		if database != nil {
			database.Close()
		}
		os.Exit(1)
	}
}

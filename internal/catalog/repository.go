// Package catalog manages the local copy of the github/gitignore templates:
// listing them, reading their content, and refreshing them from the remote
// archive. The catalog is a single flat directory of *.gitignore files.
package catalog

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/hpungsan/alfred-gitignore/internal/errors"
)

// Repository is the directory holding the *.gitignore templates.
type Repository struct {
	path   string
	logger *slog.Logger
}

// Open returns the repository rooted at path, creating the directory if it
// doesn't exist yet. A nil logger discards log output.
func Open(path string, logger *slog.Logger) (*Repository, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, errors.NewCatalogUnavailable(path, err)
	}
	return &Repository{path: path, logger: logger}, nil
}

// Path returns the repository root.
func (r *Repository) Path() string {
	return r.path
}

// Templates lists every template in the repository, sorted by name.
// Entries that aren't regular *.gitignore files, or can't be inspected, are skipped.
func (r *Repository) Templates() ([]Template, error) {
	entries, err := os.ReadDir(r.path)
	if err != nil {
		return nil, errors.NewCatalogUnavailable(r.path, err)
	}

	templates := make([]Template, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !IsTemplateFile(name) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			r.logger.Debug("skipping unreadable catalog entry", "entry", name, "error", err)
			continue
		}
		if info.IsDir() {
			continue
		}
		templates = append(templates, NewTemplate(name))
	}

	sort.SliceStable(templates, func(i, j int) bool {
		return templates[i].Name < templates[j].Name
	})

	return templates, nil
}

// Read returns the full content of a template's backing file.
// A missing file is a NOT_FOUND error that still matches fs.ErrNotExist.
func (r *Repository) Read(t Template) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(r.path, t.FileName))
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewNotFound(t.Name, err)
		}
		return nil, errors.NewInternal(fmt.Errorf("read template %s: %w", t.FileName, err))
	}
	return data, nil
}

// Package builder combines selected templates into one .gitignore file.
//
// The output file is named after a hash of the selected template names, so
// the same selection always lands at the same path with the same bytes and
// the build directory doubles as a cache.
package builder

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/hpungsan/alfred-gitignore/internal/catalog"
	"github.com/hpungsan/alfred-gitignore/internal/errors"
)

const (
	// FileNamePrefix starts every combined file name.
	FileNamePrefix = "alfred-gitignore-"

	// FileNameSuffix ends every combined file name.
	FileNameSuffix = ".gitignore"
)

// ContentSource provides the bytes behind a template.
type ContentSource interface {
	Read(t catalog.Template) ([]byte, error)
}

// Result describes a combined .gitignore file.
type Result struct {
	Path      string   `json:"path"`
	FileName  string   `json:"file_name"`
	Templates []string `json:"templates"`
	Bytes     int      `json:"bytes"`
}

// Builder writes combined files into a fixed destination directory.
type Builder struct {
	destDir string
	source  ContentSource
}

// New returns a builder that reads templates from source and writes into destDir.
func New(destDir string, source ContentSource) *Builder {
	return &Builder{destDir: destDir, source: source}
}

// CacheKey returns the file name for a set of template names: the names are
// sorted, concatenated without a separator, and hashed with 64-bit FNV-1a.
// Input order never changes the result.
func CacheKey(names []string) string {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	h := fnv.New64a()
	h.Write([]byte(strings.Join(sorted, "")))

	return FileNamePrefix + strconv.FormatUint(h.Sum64(), 10) + FileNameSuffix
}

// Build writes the combined file for templates and returns where it went.
//
// Templates are deduplicated and written in name order, each preceded by a
// "### <file name>" header line and separated from the next by a newline;
// nothing follows the last template's content.
// Every template is read before anything is written: if one is missing the
// build fails and no file is created. The file is synced and renamed into
// place, so readers see either the previous file or the complete new one.
// An existing file at the same path is always overwritten.
func (b *Builder) Build(templates []catalog.Template) (*Result, error) {
	ordered := canonical(templates)
	if len(ordered) == 0 {
		return nil, errors.NewInvalidRequest("no templates selected")
	}

	names := make([]string, len(ordered))
	for i, t := range ordered {
		names[i] = t.Name
	}
	fileName := CacheKey(names)

	var buf bytes.Buffer
	for i, t := range ordered {
		content, err := b.source.Read(t)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "### %s\n", t.FileName)
		buf.Write(content)
	}

	if err := os.MkdirAll(b.destDir, 0755); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create build directory: %w", err))
	}

	path := filepath.Join(b.destDir, fileName)
	size := buf.Len()
	if err := atomic.WriteFile(path, &buf); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("write %s: %w", path, err))
	}

	return &Result{
		Path:      path,
		FileName:  fileName,
		Templates: names,
		Bytes:     size,
	}, nil
}

// canonical deduplicates templates by comparator and sorts them by name.
func canonical(templates []catalog.Template) []catalog.Template {
	seen := make(map[string]bool, len(templates))
	out := make([]catalog.Template, 0, len(templates))
	for _, t := range templates {
		if seen[t.Comparator] {
			continue
		}
		seen[t.Comparator] = true
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

package ops

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hpungsan/alfred-gitignore/internal/builder"
	"github.com/hpungsan/alfred-gitignore/internal/catalog"
	"github.com/hpungsan/alfred-gitignore/internal/config"
	"github.com/hpungsan/alfred-gitignore/internal/db"
	"github.com/hpungsan/alfred-gitignore/internal/errors"
)

// BuildInput contains parameters for the Build operation.
type BuildInput struct {
	Tokens         []string
	IncludeContent bool // return the combined file in the output
}

// BuildOutput contains the result of the Build operation.
type BuildOutput struct {
	builder.Result

	// Ignored holds tokens that didn't name any template.
	Ignored []string `json:"ignored,omitempty"`

	// Content is the combined file, returned only when requested.
	Content string `json:"content,omitempty"`
}

// Build combines the templates named by the tokens into one file under cfg.BuildDir.
// A non-nil database gets a ledger entry; ledger failures are logged and never fail the build.
func Build(database *sql.DB, cfg *config.Config, repo *catalog.Repository, input BuildInput) (*BuildOutput, error) {
	q, err := newQuery(repo, input.Tokens)
	if err != nil {
		return nil, err
	}

	templates := q.Templates()
	if len(templates) == 0 {
		if len(input.Tokens) == 0 {
			return nil, errors.NewInvalidRequest("no templates selected")
		}
		return nil, errors.NewInvalidRequest("none of the given names match a template")
	}

	result, err := builder.New(cfg.BuildDir, repo).Build(templates)
	if err != nil {
		return nil, err
	}

	if database != nil {
		record(database, result)
	}

	output := &BuildOutput{
		Result:  *result,
		Ignored: ignored(input.Tokens, templates),
	}
	if input.IncludeContent {
		content, err := os.ReadFile(result.Path)
		if err != nil {
			return nil, errors.NewInternal(fmt.Errorf("read %s: %w", result.Path, err))
		}
		output.Content = string(content)
	}

	return output, nil
}

// record appends a build to the ledger.
func record(database *sql.DB, result *builder.Result) {
	id, err := generateULID()
	if err != nil {
		slog.Warn("build ledger: id generation failed", "error", err)
		return
	}
	err = db.InsertBuild(database, &db.Build{
		ID:        id,
		CacheKey:  result.FileName,
		Templates: result.Templates,
		Path:      result.Path,
		Bytes:     result.Bytes,
		BuiltAt:   time.Now().Unix(),
	})
	if err != nil {
		slog.Warn("build ledger: insert failed", "path", result.Path, "error", err)
	}
}

// ignored returns the tokens that resolved to none of templates.
func ignored(tokens []string, templates []catalog.Template) []string {
	known := make(map[string]bool, len(templates))
	for _, t := range templates {
		known[t.Comparator] = true
	}
	var out []string
	for _, token := range tokens {
		if !known[catalog.Normalize(token)] {
			out = append(out, token)
		}
	}
	return out
}

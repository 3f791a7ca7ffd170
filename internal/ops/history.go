package ops

import (
	"database/sql"
	"fmt"

	"github.com/hpungsan/alfred-gitignore/internal/config"
	"github.com/hpungsan/alfred-gitignore/internal/db"
	"github.com/hpungsan/alfred-gitignore/internal/errors"
)

// HistoryInput contains parameters for the History operation.
type HistoryInput struct {
	Limit int // default: cfg.HistoryLimit, max: MaxHistoryLimit
}

// HistoryOutput contains the result of the History operation.
type HistoryOutput struct {
	Items []db.Build `json:"items"`
	Total int        `json:"total"`
}

// History returns recent builds, newest first, one per distinct selection.
func History(database *sql.DB, cfg *config.Config, input HistoryInput) (*HistoryOutput, error) {
	if database == nil {
		return nil, errors.NewInternal(fmt.Errorf("build ledger unavailable"))
	}

	limit := input.Limit
	if limit < 0 {
		return nil, errors.NewInvalidRequest("limit must not be negative")
	}
	if limit == 0 {
		limit = cfg.HistoryLimit
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	items, err := db.RecentBuilds(database, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []db.Build{}
	}

	total, err := db.CountBuilds(database)
	if err != nil {
		return nil, err
	}

	return &HistoryOutput{Items: items, Total: total}, nil
}

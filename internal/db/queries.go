package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/hpungsan/alfred-gitignore/internal/errors"
)

// Build is one recorded run of the output builder.
type Build struct {
	ID        string   `json:"id"`
	CacheKey  string   `json:"cache_key"`
	Templates []string `json:"templates"`
	Path      string   `json:"path"`
	Bytes     int      `json:"bytes"`
	BuiltAt   int64    `json:"built_at"`
}

// InsertBuild records a build in the ledger.
func InsertBuild(db *sql.DB, b *Build) error {
	templatesJSON, err := json.Marshal(b.Templates)
	if err != nil {
		return errors.NewInternal(err)
	}

	query := `
		INSERT INTO builds (id, cache_key, templates_json, path, bytes, built_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := db.Exec(query, b.ID, b.CacheKey, string(templatesJSON), b.Path, b.Bytes, b.BuiltAt); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// RecentBuilds returns up to limit builds, newest first. Repeated builds of
// the same selection collapse into their latest run.
func RecentBuilds(db *sql.DB, limit int) ([]Build, error) {
	// SQLite takes bare columns from the row that produced MAX(built_at)
	query := `
		SELECT id, cache_key, templates_json, path, bytes, MAX(built_at) AS built_at
		FROM builds
		GROUP BY cache_key
		ORDER BY built_at DESC, id DESC
		LIMIT ?
	`
	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var builds []Build
	for rows.Next() {
		var b Build
		var templatesJSON string
		if err := rows.Scan(&b.ID, &b.CacheKey, &templatesJSON, &b.Path, &b.Bytes, &b.BuiltAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		if err := json.Unmarshal([]byte(templatesJSON), &b.Templates); err != nil {
			return nil, errors.NewInternal(fmt.Errorf("build %s: invalid templates_json: %w", b.ID, err))
		}
		builds = append(builds, b)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return builds, nil
}

// CountBuilds returns the total number of recorded builds.
func CountBuilds(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM builds").Scan(&n); err != nil {
		return 0, errors.NewInternal(err)
	}
	return n, nil
}

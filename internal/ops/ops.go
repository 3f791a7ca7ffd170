// Package ops implements the workflow operations shared by the CLI and the MCP server.
package ops

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/alfred-gitignore/internal/catalog"
	"github.com/hpungsan/alfred-gitignore/internal/query"
)

// History limits
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// Tokenize splits a raw query string the way Alfred's argument field does.
func Tokenize(s string) []string {
	return strings.Fields(s)
}

// newQuery loads the catalog and binds the tokens to it.
func newQuery(repo *catalog.Repository, tokens []string) (*query.Query, error) {
	templates, err := repo.Templates()
	if err != nil {
		return nil, err
	}
	return query.New(templates, tokens), nil
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

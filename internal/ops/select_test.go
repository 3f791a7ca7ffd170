package ops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/alfred-gitignore/internal/catalog"
	"github.com/hpungsan/alfred-gitignore/internal/errors"
)

func TestSelect_NoTokens(t *testing.T) {
	out, err := Select(newRepo(t), SelectInput{})
	require.NoError(t, err)
	require.Empty(t, out.Selection)
	require.Equal(t, []string{"Apples", "Olives", "Oranges"}, out.Suggestions)
}

func TestSelect_PrefixAndSelection(t *testing.T) {
	out, err := Select(newRepo(t), SelectInput{Tokens: []string{"apples", "o"}})
	require.NoError(t, err)
	require.Equal(t, []string{"apples"}, out.Selection)
	require.Equal(t, []string{"Apples"}, out.Canonical)
	require.Equal(t, []string{"Olives", "Oranges"}, out.Suggestions)
}

func TestSelect_ExactLastTokenSuggestsRest(t *testing.T) {
	out, err := Select(newRepo(t), SelectInput{Tokens: []string{"Oranges"}})
	require.NoError(t, err)
	require.Equal(t, []string{"Oranges"}, out.Selection)
	require.Equal(t, []string{"Apples", "Olives"}, out.Suggestions)
}

func TestSelect_CatalogUnavailable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "templates")
	repo, err := catalog.Open(dir, nil)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(dir))

	_, err = Select(repo, SelectInput{Tokens: []string{"go"}})
	require.True(t, errors.Is(err, errors.ErrCatalogUnavailable), "got %v", err)
}

func TestTokenize(t *testing.T) {
	require.Equal(t, []string{"apples", "o"}, Tokenize("  apples   o "))
	require.Empty(t, Tokenize("   "))
}

package ops

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/alfred-gitignore/internal/catalog"
	"github.com/hpungsan/alfred-gitignore/internal/config"
)

var fixtures = map[string]string{
	"Apples.gitignore":  "# Apples\n*.core\n",
	"Oranges.gitignore": "# Oranges\n/peel/\n",
	"Olives.gitignore":  "# Olives\n*.pit\n",
}

// newRepo returns a catalog holding the fruit fixtures.
func newRepo(t *testing.T) *catalog.Repository {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "templates")
	require.NoError(t, os.MkdirAll(dir, 0755))
	for name, content := range fixtures {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	repo, err := catalog.Open(dir, nil)
	require.NoError(t, err)
	return repo
}

// testConfig returns defaults with the build dir inside the test's temp dir.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.BuildDir = filepath.Join(t.TempDir(), "build")
	return cfg
}

// zipArchive returns an archive laid out like the github/gitignore snapshot.
func zipArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

package catalog

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/natefinch/atomic"

	"github.com/hpungsan/alfred-gitignore/internal/errors"
)

// lockFileName is held while an update writes into the repository.
// It doesn't end in .gitignore, so Templates never lists it.
const lockFileName = ".update.lock"

// UpdateResult describes a completed refresh.
type UpdateResult struct {
	URL     string `json:"url"`
	Written int    `json:"written"`
	Skipped int    `json:"skipped"`
}

// Update downloads the template archive at url and extracts every
// *.gitignore entry into the repository, overwriting existing files.
// Only one update may run per repository at a time.
func (r *Repository) Update(ctx context.Context, client *http.Client, url string) (*UpdateResult, error) {
	lockPath := filepath.Join(r.path, lockFileName)
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to lock %s: %w", lockPath, err))
	}
	if !locked {
		return nil, errors.NewLocked(lockPath)
	}
	defer lock.Unlock()

	archive, err := r.download(ctx, client, url)
	if err != nil {
		return nil, err
	}
	defer os.Remove(archive)

	result, err := r.extract(archive)
	if err != nil {
		return nil, err
	}
	result.URL = url

	r.logger.Info("templates updated", "url", url, "written", result.Written, "skipped", result.Skipped)
	return result, nil
}

// download fetches url into a temporary file and returns its path.
func (r *Repository) download(ctx context.Context, client *http.Client, url string) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.NewInvalidRequest(fmt.Sprintf("invalid archive url %q: %v", url, err))
	}

	r.logger.Debug("downloading template archive", "url", url)
	resp, err := client.Do(req)
	if err != nil {
		return "", errors.NewNetwork(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.NewNetwork(url, fmt.Errorf("unexpected status %s", resp.Status))
	}

	file, err := os.CreateTemp("", "alfred-gitignore-*.zip")
	if err != nil {
		return "", errors.NewInternal(fmt.Errorf("failed to create archive file: %w", err))
	}
	tempPath := file.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tempPath)
		}
	}()

	n, err := io.Copy(file, resp.Body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", errors.NewNetwork(url, err)
	}

	r.logger.Debug("template archive downloaded", "path", tempPath, "bytes", n)
	success = true
	return tempPath, nil
}

// extract writes every *.gitignore entry of the ZIP archive at archivePath
// into the repository root, flattening directories: "Global/Go.gitignore"
// becomes "Go.gitignore". Entries that can't be opened are skipped; a failure
// while copying an entry aborts the remaining extraction.
func (r *Repository) extract(archivePath string) (*UpdateResult, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, errors.NewInvalidData(err)
	}
	defer reader.Close()

	result := &UpdateResult{}
	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}

		// ZIP entry names always use forward slashes
		name := path.Base(entry.Name)
		if !IsTemplateFile(name) {
			continue
		}

		src, err := entry.Open()
		if err != nil {
			r.logger.Warn("skipping unreadable archive entry", "entry", entry.Name, "error", err)
			result.Skipped++
			continue
		}

		err = atomic.WriteFile(filepath.Join(r.path, name), src)
		src.Close()
		if err != nil {
			return nil, errors.NewInternal(fmt.Errorf("extract %s: %w", entry.Name, err))
		}
		result.Written++
	}

	return result, nil
}

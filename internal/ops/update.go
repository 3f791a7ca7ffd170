package ops

import (
	"context"
	"net/http"
	"time"

	"github.com/hpungsan/alfred-gitignore/internal/catalog"
	"github.com/hpungsan/alfred-gitignore/internal/config"
	"github.com/hpungsan/alfred-gitignore/internal/errors"
)

// UpdateOutput contains the result of the Update operation.
type UpdateOutput struct {
	catalog.UpdateResult

	// Templates is the catalog size after the refresh.
	Templates int `json:"templates"`
}

// Update refreshes the catalog from cfg.ArchiveURL.
func Update(ctx context.Context, cfg *config.Config, repo *catalog.Repository) (*UpdateOutput, error) {
	if cfg.ArchiveURL == "" {
		return nil, errors.NewInvalidRequest("archive_url must not be empty")
	}

	client := &http.Client{Timeout: time.Duration(cfg.DownloadTimeoutSeconds) * time.Second}
	result, err := repo.Update(ctx, client, cfg.ArchiveURL)
	if err != nil {
		return nil, err
	}

	templates, err := repo.Templates()
	if err != nil {
		return nil, err
	}

	return &UpdateOutput{
		UpdateResult: *result,
		Templates:    len(templates),
	}, nil
}

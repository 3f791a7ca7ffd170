package ops

import (
	"strings"

	"github.com/hpungsan/alfred-gitignore/internal/catalog"
)

// TemplatesInput contains parameters for the Templates operation.
type TemplatesInput struct {
	Prefix string // optional, case-insensitive
}

// TemplatesOutput contains the result of the Templates operation.
type TemplatesOutput struct {
	Items []catalog.Template `json:"items"`
	Total int                `json:"total"`
}

// Templates lists the catalog, optionally filtered by name prefix.
func Templates(repo *catalog.Repository, input TemplatesInput) (*TemplatesOutput, error) {
	templates, err := repo.Templates()
	if err != nil {
		return nil, err
	}

	prefix := catalog.Normalize(strings.TrimSpace(input.Prefix))
	items := make([]catalog.Template, 0, len(templates))
	for _, t := range templates {
		if strings.HasPrefix(t.Comparator, prefix) {
			items = append(items, t)
		}
	}

	return &TemplatesOutput{Items: items, Total: len(templates)}, nil
}

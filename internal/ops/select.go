package ops

import (
	"github.com/hpungsan/alfred-gitignore/internal/catalog"
)

// SelectInput contains parameters for the Select operation.
type SelectInput struct {
	Tokens []string
}

// SelectOutput contains the result of the Select operation.
type SelectOutput struct {
	// Selection holds the typed tokens that name a template, in the case the user typed last.
	Selection []string `json:"selection"`

	// Suggestions holds template names that could complete the query.
	Suggestions []string `json:"suggestions"`

	// Canonical holds the catalog names behind Selection, in the same order.
	Canonical []string `json:"canonical"`
}

// Select interprets the tokens typed so far against the catalog.
func Select(repo *catalog.Repository, input SelectInput) (*SelectOutput, error) {
	q, err := newQuery(repo, input.Tokens)
	if err != nil {
		return nil, err
	}

	templates := q.Templates()
	canonical := make([]string, len(templates))
	for i, t := range templates {
		canonical[i] = t.Name
	}

	return &SelectOutput{
		Selection:   q.Selection(),
		Suggestions: q.Suggestions(),
		Canonical:   canonical,
	}, nil
}

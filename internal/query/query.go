// Package query turns the tokens a user typed into Alfred into a validated
// template selection and suggestions for the next keystroke.
package query

import (
	"strings"

	"github.com/hpungsan/alfred-gitignore/internal/catalog"
)

// Query represents one user interaction against the template catalog.
//
// Selection keeps the order in which each token was first typed. Suggestions
// follow catalog order. Neither order carries meaning; it only keeps output
// stable between keystrokes.
type Query struct {
	tokens        []string
	tokenIndex    *tokenIndex
	templateIndex map[string]catalog.Template
	templates     []catalog.Template
}

// New builds a query from the available templates and the raw tokens.
// The template index is fixed for the lifetime of the query.
func New(templates []catalog.Template, tokens []string) *Query {
	index := newTokenIndex()
	for _, token := range tokens {
		index.put(catalog.Normalize(token), token)
	}

	// Later catalog entries win on comparator collisions, and the iteration
	// slice keeps exactly one entry per comparator.
	templateIndex := make(map[string]catalog.Template, len(templates))
	for _, t := range templates {
		templateIndex[t.Comparator] = t
	}
	unique := make([]catalog.Template, 0, len(templateIndex))
	seen := make(map[string]bool, len(templateIndex))
	for _, t := range templates {
		if seen[t.Comparator] {
			continue
		}
		seen[t.Comparator] = true
		unique = append(unique, templateIndex[t.Comparator])
	}

	return &Query{
		tokens:        append([]string(nil), tokens...),
		tokenIndex:    index,
		templateIndex: templateIndex,
		templates:     unique,
	}
}

// Tokens returns the tokens as typed.
func (q *Query) Tokens() []string {
	return append([]string(nil), q.tokens...)
}

// Last returns the token currently being typed, or "" when there are none.
func (q *Query) Last() string {
	if len(q.tokens) == 0 {
		return ""
	}
	return q.tokens[len(q.tokens)-1]
}

// Selection returns every typed token that names a template, deduplicated
// case-insensitively and keeping the case the user typed last.
// Tokens that match nothing are dropped silently.
func (q *Query) Selection() []string {
	selection := make([]string, 0, q.tokenIndex.size())
	for _, key := range q.tokenIndex.keys {
		if _, ok := q.templateIndex[key]; ok {
			selection = append(selection, q.tokenIndex.values[key])
		}
	}
	return selection
}

// Templates returns the catalog templates behind Selection, in the same order.
func (q *Query) Templates() []catalog.Template {
	templates := make([]catalog.Template, 0, q.tokenIndex.size())
	for _, key := range q.tokenIndex.keys {
		if t, ok := q.templateIndex[key]; ok {
			templates = append(templates, t)
		}
	}
	return templates
}

// Suggestions returns template names that could complete the query.
//
// Without tokens every template is suggested. When the last token exactly
// names a template, the templates that haven't been typed yet are suggested.
// Otherwise the last token is treated as a case-insensitive prefix.
func (q *Query) Suggestions() []string {
	if len(q.tokens) == 0 {
		return q.names(func(catalog.Template) bool { return true })
	}

	last := catalog.Normalize(q.Last())
	if _, ok := q.templateIndex[last]; ok {
		return q.names(func(t catalog.Template) bool {
			return !q.tokenIndex.has(t.Comparator)
		})
	}

	return q.names(func(t catalog.Template) bool {
		return strings.HasPrefix(t.Comparator, last)
	})
}

// names returns the names of the templates accepted by keep, in catalog order.
func (q *Query) names(keep func(catalog.Template) bool) []string {
	names := make([]string, 0, len(q.templates))
	for _, t := range q.templates {
		if keep(t) {
			names = append(names, t.Name)
		}
	}
	return names
}

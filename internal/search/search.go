// ABOUTME: Full-text search core: query sanitization and ranked retrieval
// ABOUTME: Keeps FTS5 operator syntax out of user input by construction

package search

import (
	"strings"

	"github.com/quillfeed/quill/internal/storage"
)

// DefaultLimit caps search results when the caller passes no limit.
const DefaultLimit = 50

// ftsOperators are the characters FTS5 treats as query syntax. They are
// deleted rather than escaped, so "-security" and "security" search the
// same; quill does not expose a query language.
const ftsOperators = `"*^()+-:`

// Sanitize converts free-text user input into a safe FTS5 match expression:
// operator characters become spaces, tokens are rejoined with single spaces,
// and the final token gets a prefix wildcard for type-ahead matching.
// Returns "" when nothing searchable remains.
func Sanitize(query string) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(ftsOperators, r) {
			return ' '
		}
		return r
	}, strings.TrimSpace(query))

	tokens := strings.Fields(cleaned)
	if len(tokens) == 0 {
		return ""
	}

	tokens[len(tokens)-1] += "*"
	return strings.Join(tokens, " ")
}

// Articles searches article titles and content for the given free-text
// query and returns ranked results with feed titles attached. A blank or
// operator-only query returns no results without touching the index. Purely
// a read: never changes read/starred state.
func Articles(store storage.Store, query string, limit int) ([]storage.SearchResult, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	match := Sanitize(query)
	if match == "" {
		return nil, nil
	}

	return store.SearchArticles(match, limit)
}

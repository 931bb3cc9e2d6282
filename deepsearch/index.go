package deepsearch

import (
	"context"
	"strings"
	"unicode"

	"github.com/agc2020/consulta/catalog"
	"github.com/agc2020/consulta/core"
)

// Filters is the external index's filter-object convention: category name to
// accepted values. A record matches a category when its value equals any one
// of the listed values; categories compose with AND.
type Filters map[string][]string

// SingleValue builds a one-category filter from a single string, the other
// accepted shape of the filter object.
func SingleValue(category, value string) Filters {
	return Filters{category: {value}}
}

// Matches reports whether the document's embedded metadata satisfies every
// filter category.
func (f Filters) Matches(doc *core.Document) bool {
	for category, accepted := range f {
		values := doc.Categories[category]
		if !anyOverlap(values, accepted) {
			return false
		}
	}
	return true
}

func anyOverlap(values, accepted []string) bool {
	for _, v := range values {
		for _, a := range accepted {
			if v == a {
				return true
			}
		}
	}
	return false
}

// Response is one deep-search answer: the total match count for the preview
// badge plus the ranked hits actually returned.
type Response struct {
	Total int
	Hits  []core.Hit
}

// Index is the deep-search collaborator contract.
type Index interface {
	// Init prepares the index for queries. Called once before the first
	// Search; an Init error marks the index unavailable.
	Init(ctx context.Context) error

	// Search runs a free-text query narrowed by the optional filters and
	// returns up to maxHits ranked hits. An empty query with non-empty
	// filters is a filter-only browse, not an error.
	Search(ctx context.Context, query string, filters Filters, maxHits int) (*Response, error)
}

// Portuguese function words excluded from indexing and queries.
var stopWords = map[string]bool{
	"a": true, "o": true, "as": true, "os": true, "de": true, "da": true,
	"do": true, "das": true, "dos": true, "e": true, "em": true, "no": true,
	"na": true, "nos": true, "nas": true, "um": true, "uma": true, "que": true,
	"para": true, "por": true, "com": true, "ao": true, "sobre": true,
	"nº": true, "n": true,
}

// Tokenize folds text and splits it into index terms, dropping stop words
// and single-character fragments. Ingest and query must use the same
// tokenization or terms will never meet.
func Tokenize(text string) []string {
	folded := catalog.Fold(text)
	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 || stopWords[f] {
			continue
		}
		terms = append(terms, f)
	}
	return terms
}

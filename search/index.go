package search

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/agc2020/consulta/catalog"
	"github.com/agc2020/consulta/core"
)

// Indexed record fields, in weight order.
const (
	fieldTitle = iota
	fieldSummary
	fieldBody
	fieldType
	numFields
)

// Default field weights: title highest, summary next, issuing body and type
// lowest and equal.
var defaultWeights = [numFields]float64{
	fieldTitle:   1.0,
	fieldSummary: 0.7,
	fieldBody:    0.3,
	fieldType:    0.3,
}

const (
	// defaultMinMatchLength is the minimum folded query length; shorter
	// queries produce no matches at all.
	defaultMinMatchLength = 2

	// defaultMinScore is the weighted-score threshold below which a match is
	// discarded. Scattered subsequence matches score negative and fall out.
	defaultMinScore = 0.0
)

// Match is one fuzzy hit, identified by the record's stable index.
type Match struct {
	StableIndex int
	Score       float64
}

// Index is an immutable fuzzy index over the full record set. Field text is
// folded (lowercase, diacritics stripped) at build time so queries match
// regardless of case or accents, and match position within a field does not
// matter beyond the small leading-gap penalty of the underlying matcher.
type Index struct {
	total    int
	fields   [numFields][]string
	weights  [numFields]float64
	minMatch int
	minScore float64
}

// IndexOption configures an Index.
type IndexOption func(*Index) error

// WithMinMatchLength sets the minimum folded query length. Values below 1
// are raised to 1.
func WithMinMatchLength(n int) IndexOption {
	return func(idx *Index) error {
		if n < 1 {
			n = 1
		}
		idx.minMatch = n
		return nil
	}
}

// WithMinScore sets the weighted-score threshold.
func WithMinScore(score float64) IndexOption {
	return func(idx *Index) error {
		idx.minScore = score
		return nil
	}
}

// NewIndex builds the fuzzy index from the complete record set. The index
// does not support incremental insertion or removal; rebuild it after a
// catalog reload.
func NewIndex(records []core.Ato, opts ...IndexOption) (*Index, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	idx := &Index{
		total:    len(records),
		weights:  defaultWeights,
		minMatch: defaultMinMatchLength,
		minScore: defaultMinScore,
	}
	for _, opt := range opts {
		if err := opt(idx); err != nil {
			return nil, err
		}
	}

	for f := 0; f < numFields; f++ {
		idx.fields[f] = make([]string, len(records))
	}
	for i, r := range records {
		idx.fields[fieldTitle][i] = catalog.Fold(r.Title)
		idx.fields[fieldSummary][i] = catalog.Fold(r.Summary)
		idx.fields[fieldBody][i] = catalog.Fold(r.IssuingBody)
		idx.fields[fieldType][i] = catalog.Fold(string(r.Type))
	}

	return idx, nil
}

// Total returns the number of indexed records.
func (idx *Index) Total() int {
	return idx.total
}

// Search returns the records matching the folded query, best first. A record
// scores on its best weighted field match; matches below the score threshold
// are dropped. Queries shorter than the minimum match length return nothing.
// Ties are broken by stable index for determinism, though callers must not
// rely on any particular tie order.
func (idx *Index) Search(query string) []Match {
	folded := catalog.Fold(strings.TrimSpace(query))
	if folded == "" || len([]rune(folded)) < idx.minMatch {
		return nil
	}

	best := make(map[int]float64)
	for f := 0; f < numFields; f++ {
		for _, m := range fuzzy.FindFrom(folded, stringSource(idx.fields[f])) {
			score := idx.weights[f] * float64(m.Score)
			if prev, ok := best[m.Index]; !ok || score > prev {
				best[m.Index] = score
			}
		}
	}

	matches := make([]Match, 0, len(best))
	for i, score := range best {
		if score < idx.minScore {
			continue
		}
		matches = append(matches, Match{StableIndex: i, Score: score})
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].StableIndex < matches[j].StableIndex
	})

	return matches
}

// stringSource adapts a field column to fuzzy.Source.
type stringSource []string

func (s stringSource) String(i int) string { return s[i] }
func (s stringSource) Len() int            { return len(s) }

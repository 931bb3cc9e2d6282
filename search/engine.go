package search

import (
	"log/slog"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/agc2020/consulta/core"
)

// Engine computes the visible subset of records for a filter state:
// text relevance narrows the candidates first, then categorical predicates
// intersect the remainder.
type Engine struct {
	index   *Index
	records []core.Ato
	logger  *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates an engine over the indexed record set. The records slice
// must be the same set the index was built from.
func NewEngine(index *Index, records []core.Ato, opts ...EngineOption) (*Engine, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	if len(records) != index.Total() {
		return nil, ErrRecordCountMismatch
	}

	e := &Engine{
		index:   index,
		records: records,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// ComputeVisible returns the stable indexes of the records that remain
// visible under the given state. An empty bitmap is a valid result.
func (e *Engine) ComputeVisible(state FilterState) *roaring.Bitmap {
	visible := roaring.New()

	for _, m := range e.Ranked(state) {
		visible.Add(uint32(m.StableIndex))
	}

	return visible
}

// Ranked returns the visible records in relevance order: fuzzy candidates
// (or all records, in document order, for an empty query) filtered by the
// categorical constraints. Tie order among equal fuzzy scores is not part of
// the contract.
func (e *Engine) Ranked(state FilterState) []Match {
	query := state.QueryText()

	var candidates []Match
	if query == "" {
		candidates = make([]Match, len(e.records))
		for i := range e.records {
			candidates[i] = Match{StableIndex: i}
		}
	} else {
		candidates = e.index.Search(query)
	}

	matches := candidates[:0:0]
	for _, m := range candidates {
		if state.MatchesRecord(&e.records[m.StableIndex]) {
			matches = append(matches, m)
		}
	}

	e.logger.Debug("computed visible set",
		"query", query,
		"candidates", len(candidates),
		"visible", len(matches),
		"total", len(e.records))

	return matches
}

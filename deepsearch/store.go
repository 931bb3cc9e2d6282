package deepsearch

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"github.com/agc2020/consulta/core"
	"github.com/agc2020/consulta/storage"
)

// BM25 parameters.
const (
	k1 = 1.2
	b  = 0.75
)

// StoreIndex implements Index over the storage repositories built by the
// ingest pipeline.
type StoreIndex struct {
	docs     storage.DocumentRepository
	postings storage.PostingRepository
	stats    core.IndexStats
	ready    bool
	logger   *slog.Logger
}

var _ Index = (*StoreIndex)(nil)

// StoreIndexOption configures a StoreIndex.
type StoreIndexOption func(*StoreIndex) error

// WithStoreLogger sets a custom logger.
// Default is slog.Default().
func WithStoreLogger(logger *slog.Logger) StoreIndexOption {
	return func(s *StoreIndex) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewStoreIndex creates a deep-search index over the given repositories.
func NewStoreIndex(docs storage.DocumentRepository, postings storage.PostingRepository, opts ...StoreIndexOption) (*StoreIndex, error) {
	if docs == nil || postings == nil {
		return nil, ErrIndexRequired
	}

	s := &StoreIndex{
		docs:     docs,
		postings: postings,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Init loads the index statistics. It must run before the first Search.
func (s *StoreIndex) Init(ctx context.Context) error {
	stats, err := s.postings.GetStats(ctx)
	if err != nil {
		return err
	}
	s.stats = stats
	s.ready = true
	s.logger.Debug("deep-search index initialized",
		"docs", stats.DocCount, "terms", stats.TermCount)
	return nil
}

// Search scores the query terms with BM25, drops candidates that fail the
// filter object, and returns up to maxHits ranked hits. Total reflects the
// full match count before truncation. A query with no searchable terms and
// a non-empty filter object degrades to a filter-only browse.
func (s *StoreIndex) Search(ctx context.Context, query string, filters Filters, maxHits int) (*Response, error) {
	if !s.ready {
		return nil, ErrNotInitialized
	}

	terms := Tokenize(query)
	if len(terms) == 0 {
		if len(filters) == 0 {
			return nil, ErrEmptyQuery
		}
		return s.browse(ctx, filters, maxHits)
	}
	if s.stats.DocCount == 0 {
		return &Response{}, nil
	}

	type termPostings struct {
		idf      float64
		postings []core.Posting
	}

	matched := make([]termPostings, 0, len(terms))
	for _, term := range terms {
		postings, err := s.postings.GetPostings(ctx, term)
		if err != nil {
			return nil, err
		}
		if len(postings) == 0 {
			continue
		}
		matched = append(matched, termPostings{
			idf:      idf(s.stats.DocCount, len(postings)),
			postings: postings,
		})
	}
	if len(matched) == 0 {
		return &Response{}, nil
	}

	// Candidate documents, then lengths and metadata in one batch.
	seen := make(map[core.ID]bool)
	var ids []core.ID
	for _, tp := range matched {
		for _, p := range tp.postings {
			if !seen[p.DocId] {
				seen[p.DocId] = true
				ids = append(ids, p.DocId)
			}
		}
	}
	docs, err := s.docs.GetDocuments(ctx, ids...)
	if err != nil {
		return nil, err
	}
	byID := make(map[core.ID]*core.Document, len(docs))
	for _, doc := range docs {
		byID[doc.Id] = doc
	}

	avgLen := float64(s.stats.TotalLength) / float64(s.stats.DocCount)
	scores := make(map[core.ID]float64)
	for _, tp := range matched {
		for _, p := range tp.postings {
			doc := byID[p.DocId]
			if doc == nil {
				continue
			}
			tf := float64(p.Count)
			norm := 1 - b + b*float64(doc.Length)/avgLen
			scores[p.DocId] += tp.idf * tf * (k1 + 1) / (tf + k1*norm)
		}
	}

	hits := make([]core.Hit, 0, len(scores))
	for id, score := range scores {
		doc := byID[id]
		if len(filters) > 0 && !filters.Matches(doc) {
			continue
		}
		hits = append(hits, core.Hit{Document: doc, Score: score})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Document.Slug < hits[j].Document.Slug
	})

	total := len(hits)
	if maxHits > 0 && len(hits) > maxHits {
		hits = hits[:maxHits]
	}

	s.logger.Debug("deep search", "query", query, "terms", len(terms), "total", total)

	return &Response{Total: total, Hits: hits}, nil
}

// browse lists every document that matches the filter object, ordered by
// slug. Hits carry no score since there are no query terms to rank by.
func (s *StoreIndex) browse(ctx context.Context, filters Filters, maxHits int) (*Response, error) {
	docs, err := s.docs.GetAllDocuments(ctx)
	if err != nil {
		return nil, err
	}

	hits := make([]core.Hit, 0, len(docs))
	for _, doc := range docs {
		if !filters.Matches(doc) {
			continue
		}
		hits = append(hits, core.Hit{Document: doc})
	}
	sort.Slice(hits, func(i, j int) bool {
		return hits[i].Document.Slug < hits[j].Document.Slug
	})

	total := len(hits)
	if maxHits > 0 && len(hits) > maxHits {
		hits = hits[:maxHits]
	}

	s.logger.Debug("deep browse", "total", total)

	return &Response{Total: total, Hits: hits}, nil
}

// idf is the BM25 inverse document frequency with the usual +1 smoothing.
func idf(docCount, docFreq int) float64 {
	return math.Log(1 + (float64(docCount)-float64(docFreq)+0.5)/(float64(docFreq)+0.5))
}

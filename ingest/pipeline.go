// Copyright 2025 the consulta authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ingest

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/agc2020/consulta/core"
	"github.com/agc2020/consulta/deepsearch"
	"github.com/agc2020/consulta/storage"
)

// Pipeline builds deep-search documents and postings from act pages.
// Pages are parsed and indexed concurrently on a worker pool.
type Pipeline struct {
	documents storage.DocumentRepository
	postings  storage.PostingRepository
	pool      *ants.Pool
	logger    *slog.Logger

	mu       sync.Mutex
	docCount int
	totalLen int64
	terms    map[string]struct{}
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new indexing pipeline.
func NewPipeline(
	documents storage.DocumentRepository,
	postings storage.PostingRepository,
	opts ...Option,
) (*Pipeline, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if postings == nil {
		return nil, ErrPostingRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		documents: documents,
		postings:  postings,
		pool:      pool,
		logger:    slog.Default(),
		terms:     make(map[string]struct{}),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// IngestDirectory indexes every act page under dir. The catalog page itself
// (index.html) is skipped. Pages that fail to parse are logged and skipped.
// Returns the number of pages indexed.
func (p *Pipeline) IngestDirectory(ctx context.Context, dir string) (int, error) {
	var pages []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}
		if d.Name() == "index.html" {
			return nil
		}
		pages = append(pages, path)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if len(pages) == 0 {
		return 0, ErrNoPages
	}

	var wg sync.WaitGroup
	var indexed int
	var indexedMu sync.Mutex

	for _, path := range pages {
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			if err := p.ingestPage(ctx, path); err != nil {
				p.logger.Error("skipping act page", "path", path, "err", err)
				return
			}
			indexedMu.Lock()
			indexed++
			indexedMu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			p.logger.Error("submitting act page", "path", path, "err", submitErr)
		}
	}
	wg.Wait()

	p.logger.Info("directory ingested", "dir", dir, "pages", len(pages), "indexed", indexed)
	return indexed, nil
}

// ingestPage parses one act page, stores its document and appends its
// postings, and folds its term counts into the collection statistics.
func (p *Pipeline) ingestPage(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	slug := strings.TrimSuffix(filepath.Base(path), ".html")
	page, err := ParseActPage(f, slug)
	if err != nil {
		return err
	}

	counts := make(map[string]int)
	for _, term := range deepsearch.Tokenize(page.Title + " " + page.Body) {
		counts[term]++
	}
	length := 0
	for _, c := range counts {
		length += c
	}

	docs, err := p.documents.AddDocuments(ctx, &core.Document{
		Slug:       page.Slug,
		Title:      page.Title,
		Length:     length,
		Categories: page.Categories,
	})
	if err != nil {
		return err
	}
	docID := docs[0].Id

	for term, count := range counts {
		err := p.postings.AppendPostings(ctx, term, core.Posting{DocId: docID, Count: count})
		if err != nil {
			return err
		}
	}

	p.mu.Lock()
	p.docCount++
	p.totalLen += int64(length)
	for term := range counts {
		p.terms[term] = struct{}{}
	}
	p.mu.Unlock()

	return nil
}

// Finalize writes the collection statistics accumulated so far. Call it once,
// after the last IngestDirectory.
func (p *Pipeline) Finalize(ctx context.Context) (core.IndexStats, error) {
	p.mu.Lock()
	stats := core.IndexStats{
		DocCount:    p.docCount,
		TotalLength: p.totalLen,
		TermCount:   len(p.terms),
	}
	p.mu.Unlock()

	if err := p.postings.SetStats(ctx, stats); err != nil {
		return core.IndexStats{}, err
	}
	return stats, nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

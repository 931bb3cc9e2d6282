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


// Package consulta is the entry point for the legal act catalog: fuzzy
// search and filtering over the extracted catalog page, plus a BM25 deep
// index over the full act texts.
package consulta

import (
	"log/slog"

	"github.com/agc2020/consulta/deepsearch"
	"github.com/agc2020/consulta/ingest"
	"github.com/agc2020/consulta/session"
	"github.com/agc2020/consulta/storage"
	"github.com/agc2020/consulta/storage/badger"
)

// Store bundles the deep-index storage behind one handle.
type Store struct {
	backend  *badger.Backend
	docRepo  storage.DocumentRepository
	postRepo storage.PostingRepository
	logger   *slog.Logger
}

// OpenStore opens the deep-index database at filePath, creating it if
// needed.
func OpenStore(filePath string) (*Store, error) {
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	docRepo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	postRepo, err := badger.NewPostingRepository(backend)
	if err != nil {
		docRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Store{
		backend:  backend,
		docRepo:  docRepo,
		postRepo: postRepo,
		logger:   slog.Default(),
	}, nil
}

func (s *Store) Close() error {
	if err := s.postRepo.Close(); err != nil {
		s.logger.Error("error closing posting repository", "err", err)
		return err
	}
	if err := s.docRepo.Close(); err != nil {
		s.logger.Error("error closing document repository", "err", err)
		return err
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (s *Store) DocumentRepository() storage.DocumentRepository {
	return s.docRepo
}

func (s *Store) PostingRepository() storage.PostingRepository {
	return s.postRepo
}

// NewPipeline creates an indexing pipeline writing into this store.
func (s *Store) NewPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(s.docRepo, s.postRepo, opts...)
}

// NewDeepIndex creates a deep-search index reading from this store.
func (s *Store) NewDeepIndex(opts ...deepsearch.StoreIndexOption) (*deepsearch.StoreIndex, error) {
	return deepsearch.NewStoreIndex(s.docRepo, s.postRepo, opts...)
}

// NewSession builds a session controller over the catalog page at
// catalogPath.
func NewSession(catalogPath string, opts ...session.Option) (*session.Controller, error) {
	return session.NewController(catalogPath, opts...)
}

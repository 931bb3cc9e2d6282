package storage

import (
	"context"

	"github.com/agc2020/consulta/core"
)

// Repository provides common operations shared across repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// DocumentRepository manages the act documents of the deep-search index.
type DocumentRepository interface {
	Repository

	// AddDocuments stores one or more documents. Documents with Id=0 get a
	// content-based ID derived from their slug. Returns the documents with
	// IDs populated.
	AddDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error)

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// GetDocuments retrieves multiple documents by their IDs.
	// Missing documents are skipped without error.
	GetDocuments(ctx context.Context, ids ...core.ID) ([]*core.Document, error)

	// GetDocumentBySlug retrieves a document by its act slug.
	// Returns ErrNotFound if no document carries the slug.
	GetDocumentBySlug(ctx context.Context, slug string) (*core.Document, error)

	// GetAllDocuments retrieves every stored document in no particular order.
	GetAllDocuments(ctx context.Context) ([]*core.Document, error)
}

// PostingRepository manages the inverted index of the deep-search index.
type PostingRepository interface {
	Repository

	// AppendPostings appends postings to a term's list.
	AppendPostings(ctx context.Context, term string, postings ...core.Posting) error

	// GetPostings retrieves a term's posting list. An unknown term yields an
	// empty list, not an error.
	GetPostings(ctx context.Context, term string) ([]core.Posting, error)

	// SetStats stores the index statistics snapshot.
	SetStats(ctx context.Context, stats core.IndexStats) error

	// GetStats retrieves the index statistics. An index without stats yields
	// the zero value, not an error.
	GetStats(ctx context.Context) (core.IndexStats, error)
}

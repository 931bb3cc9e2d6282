package ingest

import "errors"

var (
	// ErrDocumentRepositoryRequired is returned when a document repository is not provided.
	ErrDocumentRepositoryRequired = errors.New("document repository required")

	// ErrPostingRepositoryRequired is returned when a posting repository is not provided.
	ErrPostingRepositoryRequired = errors.New("posting repository required")

	// ErrNoPages is returned when a directory contains no act pages.
	ErrNoPages = errors.New("no act pages found")

	// ErrMissingTitle is returned when an act page carries no usable title.
	ErrMissingTitle = errors.New("act page has no title")
)

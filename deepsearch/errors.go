package deepsearch

import "errors"

var (
	// ErrIndexRequired indicates a nil Index was passed to NewBridge.
	ErrIndexRequired = errors.New("deep-search index is required")

	// ErrSinkRequired indicates a nil Sink was passed to NewBridge.
	ErrSinkRequired = errors.New("result sink is required")

	// ErrNotInitialized indicates Search was called before a successful Init.
	ErrNotInitialized = errors.New("index is not initialized")

	// ErrEmptyQuery indicates a Search call with neither query terms nor
	// filter values.
	ErrEmptyQuery = errors.New("query has no searchable terms")

	// ErrInvalidDebounce indicates a non-positive debounce window.
	ErrInvalidDebounce = errors.New("debounce window must be positive")
)

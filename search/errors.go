package search

import "errors"

var (
	// ErrNoRecords indicates an attempt to build an index over an empty
	// record set.
	ErrNoRecords = errors.New("no records to index")

	// ErrIndexRequired indicates a nil index was passed to NewEngine.
	ErrIndexRequired = errors.New("index is required")

	// ErrRecordCountMismatch indicates the engine's record slice does not
	// match the set the index was built from.
	ErrRecordCountMismatch = errors.New("record count does not match index")

	// ErrUnknownCategory indicates a filter category outside the fixed
	// vocabulary.
	ErrUnknownCategory = errors.New("unknown filter category")

	// ErrSentinelValue indicates an attempt to add the "todos" sentinel to a
	// multi-value constraint set.
	ErrSentinelValue = errors.New("sentinel value cannot be toggled")
)

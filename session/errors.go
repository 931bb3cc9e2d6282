package session

import "errors"

var (
	// ErrCatalogPathRequired is returned when no catalog file path is provided.
	ErrCatalogPathRequired = errors.New("catalog file path required")

	// ErrUnknownControl is returned when a control name maps to no filter
	// category.
	ErrUnknownControl = errors.New("unknown filter control")

	// ErrInvalidDebounce is returned when a non-positive debounce window is
	// configured.
	ErrInvalidDebounce = errors.New("debounce window must be positive")

	// ErrClosed is returned when an operation is attempted on a closed
	// controller.
	ErrClosed = errors.New("session controller is closed")
)

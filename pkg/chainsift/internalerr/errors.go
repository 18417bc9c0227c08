package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrTooLarge      = errors.New("document too large")
	ErrEmptyDocument = errors.New("document has no text")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrNoCompanies   = errors.New("no company folders found")
)

package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Storage backends return these
// (optionally wrapped) so repositories and services can translate them into
// coded domain errors or response codes.
//
// These represent factual states about stored records, not validation
// failures:
// - ErrNotFound: record does not exist in the backend
// - ErrConflict: a uniqueness constraint was violated
// - ErrInvalidState: record in wrong state for the requested operation
// - ErrUnavailable: backend temporarily unavailable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors
// directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)

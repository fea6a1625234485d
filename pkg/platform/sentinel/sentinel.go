package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors with messages
// that make sense for the operation at hand.
//
// These represent factual states about records, not validation failures:
// - ErrNotFound: record does not exist in the store
// - ErrConflict: a uniqueness constraint rejected the write
// - ErrUnavailable: the store is temporarily unreachable
//
// For validation errors (bad input, business-rule violations), use
// pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)

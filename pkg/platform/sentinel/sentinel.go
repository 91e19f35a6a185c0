package sentinel

import "errors"

// Sentinel errors for storage facts. Stores return these (optionally wrapped)
// so services and the gateway can translate them into domain errors.
//
// - ErrNotFound: entity does not exist in store
// - ErrConflict: entity already exists (duplicate assignment, duplicate audit id)
// - ErrUnavailable: backend temporarily unavailable (open circuit, full queue)
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)

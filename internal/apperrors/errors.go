// Package apperrors defines the error taxonomy shared by services and handlers.
package apperrors

import "errors"

// Sentinel errors for the service layer. Services wrap these with context via
// fmt.Errorf("...: %w", err); handlers map them to HTTP status codes with
// errors.Is.
var (
	// ErrValidation marks a missing or malformed required field (400).
	ErrValidation = errors.New("validation failed")
	// ErrConflict marks a uniqueness violation (409).
	ErrConflict = errors.New("conflict")
	// ErrUnauthenticated marks a missing, expired or invalid credential (401).
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden marks a policy denial for an authenticated actor (403).
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound marks an unresolvable resource id (404).
	ErrNotFound = errors.New("not found")
	// ErrInternal marks a store or downstream I/O failure (500).
	ErrInternal = errors.New("internal error")
)

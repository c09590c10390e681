// internal/pkg/apperr/apperr.go
package apperr

import "errors"

// Sentinel errors shared across the domain services. Services wrap them with
// fmt.Errorf("...: %w", ...) and handlers translate them to HTTP statuses
// with errors.Is.
var (
	// ErrNotFound indicates the requested entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates the request payload failed domain validation
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials indicates a failed login attempt
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated indicates a missing or invalid token
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden indicates the caller lacks permission for the operation
	ErrForbidden = errors.New("forbidden")

	// ErrConflict indicates the operation collides with existing state
	ErrConflict = errors.New("conflict")

	// ErrUnavailable indicates a backing service could not be reached
	ErrUnavailable = errors.New("service unavailable")
)

// IsNotFound reports whether err wraps ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err wraps ErrValidation
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsConflict reports whether err wraps ErrConflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

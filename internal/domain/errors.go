package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Handlers only ever inspect errors through this interface or through
// the sentinels below, so the mapping stays uniform across resource types.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors for the decision taxonomy - use with errors.Is().
// Every Deny produced by the authorization core wraps exactly one of these.
var (
	// ErrUnauthenticated indicates no actor was supplied with the request.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound indicates a resource, or a link in its parent chain, is missing.
	ErrNotFound = errors.New("not found")

	// ErrNoAccess indicates the actor has no relationship to the anchor object.
	ErrNoAccess = errors.New("no access to object")

	// ErrNotPermitted indicates a relationship exists but the action is not
	// granted by the policy matrix or a per-resource refinement.
	ErrNotPermitted = errors.New("action not permitted")

	// ErrRoleMismatch indicates an assignment whose scoped role disagrees
	// with the target actor's global role.
	ErrRoleMismatch = errors.New("scoped role mismatch")

	// ErrConflict indicates duplicate state the caller treated as new.
	ErrConflict = errors.New("already exists")

	// ErrValidation indicates invalid input.
	ErrValidation = errors.New("validation failed")
)

// Domain error types implementing HTTPError
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthenticatedError indicates a missing or unverifiable actor
	UnauthenticatedError struct {
		Message string
	}

	// ForbiddenError indicates an authorization denial (NoAccess,
	// NotPermitted or RoleMismatch)
	ForbiddenError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string        { return e.Message }
func (e *ValidationError) Error() string      { return e.Message }
func (e *UnauthenticatedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string       { return e.Message }

func (e *NotFoundError) StatusCode() int        { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int      { return http.StatusBadRequest }
func (e *UnauthenticatedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int       { return http.StatusForbidden }

func (e *NotFoundError) Is(target error) bool        { return target == ErrNotFound }
func (e *UnauthenticatedError) Is(target error) bool { return target == ErrUnauthenticated }

// ConflictError represents a duplicate with details about the existing row.
type ConflictError struct {
	Message      string
	ResourceType string
	ResourceID   int64
}

func (e *ConflictError) Error() string { return e.Message }

// Duplicate state the caller treated as new is a caller mistake, not a
// retryable race, so it maps to 400 alongside validation failures.
func (e *ConflictError) StatusCode() int { return http.StatusBadRequest }

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

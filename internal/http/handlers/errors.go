// Package handlers defines the HTTP-layer error codes used across all API
// endpoints. Codes are lowercase snake_case, stable, and meant for clients to
// branch on programmatically; the accompanying message is for humans.
//
// "not_found" deliberately covers both "does not exist" and "exists but is
// owned by someone else" so the API never leaks the existence of another
// user's records.
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthenticated  = "unauthenticated"
	ErrCodeNotFound         = "not_found"
	ErrCodeValidation       = "validation_failed"
	ErrCodeEmptyUpdate      = "empty_update"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)

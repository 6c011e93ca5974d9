// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP responses
// (via the `fail()` helper in this package). These codes give clients a stable,
// machine-readable error taxonomy that supplements human-readable messages.
//
// Conventions:
//   - Codes are lowercase snake_case.
//   - Generic codes (bad_request, unauthorized, ...) mirror HTTP status semantics.
//   - Domain-specific codes (create_failed, identity_unavailable, ...) name the
//     operation that failed when status alone is ambiguous.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "unauthorized",
//	  "message": "Missing Token"
//	}
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeNotFound         = "not_found"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeCreateFailed        = "create_failed"
	ErrCodeUpdateFailed        = "update_failed"
	ErrCodeIdentityUnavailable = "identity_unavailable"
)

// Messages surfaced verbatim to clients.
const (
	msgMissingToken   = "Missing Token"
	msgMoodLogged     = "Mood logged successfully"
	msgMoodLogFailed  = "Failed to log mood"
	msgNotePosted     = "Message posted successfully"
	msgNotePostFailed = "Failed to post message"
	msgUserIDRequired = "user_id is required"
	msgInvalidBody    = "invalid JSON body"
)

// Package services defines the business logic for chat, mood journaling,
// encouragement notes, progress and profile updates.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import "errors"

var (
	// ErrMissingToken is returned when an operation that writes or reads
	// private data is called without the caller's bearer credential.
	ErrMissingToken = errors.New("missing token")

	// ErrTooLong is returned when user-supplied text exceeds the configured
	// maximum rune length.
	ErrTooLong = errors.New("text too long")

	// ErrIdentityUnavailable is returned by profile updates when the
	// configured store has no identity endpoint (local SQLite driver).
	ErrIdentityUnavailable = errors.New("identity service unavailable")
)

// Package services defines the business logic for the example notes service.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the handler
// layer (via the apierr package).
package services

import "errors"

var (
	// ErrNoteNotFound indicates that the requested note does not exist.
	ErrNoteNotFound = errors.New("note not found")

	// ErrDuplicateSlug is returned when creating a note whose slug is
	// already taken.
	ErrDuplicateSlug = errors.New("slug already exists")

	// ErrInvalidSlug is returned when a slug does not match the allowed
	// pattern (lowercase alphanumerics separated by single hyphens).
	ErrInvalidSlug = errors.New("invalid slug")

	// ErrEmptyTitle is returned when a note title is blank after trimming.
	ErrEmptyTitle = errors.New("title is empty")

	// ErrTitleTooLong is returned when a note title exceeds the configured
	// maximum rune length.
	ErrTitleTooLong = errors.New("title too long")
)

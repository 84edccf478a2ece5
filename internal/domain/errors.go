package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Input errors
	ErrMsgInvalidUserID = "invalid discord user id"

	// Configuration errors
	ErrMsgNotConfigured = "spotify not configured"

	// Request errors
	ErrMsgMethodNotAllowed = "method not allowed"

	// Callback errors
	ErrMsgForbiddenRedirect     = "redirect binding token mismatch"
	ErrMsgUpstreamDenied        = "authorization denied upstream"
	ErrMsgMissingExchangeFields = "missing code or state"
	ErrMsgExchangeFailed        = "token exchange failed"
	ErrMsgPersistenceFailed     = "could not persist link"
	ErrMsgLinkNotFound          = "link not found"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Input errors
	ErrInvalidUserID = errors.New(ErrMsgInvalidUserID)

	// Configuration errors
	ErrNotConfigured = errors.New(ErrMsgNotConfigured)

	// Request errors
	ErrMethodNotAllowed = errors.New(ErrMsgMethodNotAllowed)

	// Callback errors
	ErrForbiddenRedirect     = errors.New(ErrMsgForbiddenRedirect)
	ErrUpstreamDenied        = errors.New(ErrMsgUpstreamDenied)
	ErrMissingExchangeFields = errors.New(ErrMsgMissingExchangeFields)
	ErrExchangeFailed        = errors.New(ErrMsgExchangeFailed)
	ErrPersistenceFailed     = errors.New(ErrMsgPersistenceFailed)

	// Store errors
	ErrLinkNotFound = errors.New(ErrMsgLinkNotFound)
)

package contact

import "errors"

// Client rejections.
var (
	ErrMissingFields  = errors.New("missing required fields")
	ErrInvalidEmail   = errors.New("invalid email format")
	ErrMessageTooLong = errors.New("message exceeds maximum length")
	ErrUndeliverable  = errors.New("email address cannot receive mail")
	ErrLowScore       = errors.New("email address quality score below threshold")
)

// Server-side failures.
var (
	ErrNotConfigured           = errors.New("contact relay is not configured")
	ErrVerificationUnavailable = errors.New("email verification service unavailable")
	ErrVerificationFailed      = errors.New("email verification service reported an error")
	ErrDispatchFailed          = errors.New("failed to dispatch message")
)

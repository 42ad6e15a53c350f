package email

import "fmt"

// ErrDisabled is returned by Send when email.enabled is false.
type ErrDisabled struct{}

func (e ErrDisabled) Error() string { return "email: relay mail is disabled" }

type ErrInvalidMessage struct{ Reason string }

func (e ErrInvalidMessage) Error() string { return "email: invalid message: " + e.Reason }

// ErrSend wraps any failure talking to the mail server. Timeout is set when
// the exchange was abandoned rather than refused.
type ErrSend struct {
	Provider string
	Timeout  bool
	Err      error
}

func (e ErrSend) Error() string {
	if e.Timeout {
		return fmt.Sprintf("email: send via %s timed out: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("email: send via %s failed: %v", e.Provider, e.Err)
}

func (e ErrSend) Unwrap() error { return e.Err }

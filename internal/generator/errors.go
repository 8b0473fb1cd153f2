package generator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a generation failure.
type Kind string

const (
	KindRateLimit   Kind = "rate_limit"
	KindTimeout     Kind = "timeout"
	KindUnavailable Kind = "unavailable"
	KindAuth        Kind = "auth"
	KindBadRequest  Kind = "bad_request"
	KindMalformed   Kind = "malformed_response"
)

// Transient reports whether a failure of this kind may succeed on retry.
func (k Kind) Transient() bool {
	switch k {
	case KindRateLimit, KindTimeout, KindUnavailable:
		return true
	}
	return false
}

// Error is a classified provider failure.
type Error struct {
	Kind     Kind
	Provider string
	// Status is the HTTP status code when the provider answered, zero otherwise.
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s (HTTP %d): %v", e.Provider, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is worth retrying. Deadline errors that
// escaped classification count as timeouts; anything else unclassified does not.
func IsTransient(err error) bool {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind.Transient()
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// KindOf returns the classification of err, or "" when it carries none.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return ""
}

func classifyStatus(code int) Kind {
	switch {
	case code == http.StatusTooManyRequests:
		return KindRateLimit
	case code == http.StatusRequestTimeout || code == http.StatusGatewayTimeout:
		return KindTimeout
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return KindAuth
	case code >= 500:
		return KindUnavailable
	case code >= 400:
		return KindBadRequest
	}
	return KindMalformed
}

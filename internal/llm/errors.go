package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrAuthentication indicates the provider rejected the credential (401/403).
type ErrAuthentication struct {
	Err error
}

func (e *ErrAuthentication) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *ErrAuthentication) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the LLM returned something unusable, such as
// a response with no text content.
type ErrInvalidResponse struct {
	Err error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down, unreachable, or
// was never configured.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ServiceError is returned by Complete for every failed completion call.
// It is surfaced to the user verbatim and never retried.
type ServiceError struct {
	Kind string // "rate_limit", "auth", "unavailable", "invalid_response", "timeout"
	Err  error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("completion service error (%s): %v", e.Kind, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// asServiceError classifies err and wraps it in a ServiceError.
// An existing ServiceError is returned unchanged.
func asServiceError(err error) *ServiceError {
	var svc *ServiceError
	if errors.As(err, &svc) {
		return svc
	}

	var rl *ErrRateLimit
	var auth *ErrAuthentication
	var inv *ErrInvalidResponse
	kind := "unavailable"
	switch {
	case errors.As(err, &rl):
		kind = "rate_limit"
	case errors.As(err, &auth):
		kind = "auth"
	case errors.As(err, &inv):
		kind = "invalid_response"
	case errors.Is(err, context.DeadlineExceeded):
		kind = "timeout"
	}
	return &ServiceError{Kind: kind, Err: err}
}

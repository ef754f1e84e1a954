package model

import (
	"errors"
	"fmt"
)

// maxErrorBody caps how much of an upstream error body is kept
const maxErrorBody = 200

// UpstreamAuthError the stats provider rejected our credentials. Never retried.
type UpstreamAuthError struct {
	StatusCode int
}

func (e *UpstreamAuthError) Error() string {
	return fmt.Sprintf("upstream unauthorized: status=%d", e.StatusCode)
}

// UpstreamError any other non-success response from the stats provider
type UpstreamError struct {
	StatusCode int
	Body       string
}

// NewUpstreamError builds an UpstreamError with the body truncated for diagnostics
func NewUpstreamError(status int, body []byte) *UpstreamError {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return &UpstreamError{StatusCode: status, Body: string(body)}
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error: status=%d, body=%s", e.StatusCode, e.Body)
}

// Retryable 429 and 5xx are transient; other statuses are final
func (e *UpstreamError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// MissingInputError a required query parameter was absent or invalid
type MissingInputError struct {
	Field string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing or invalid %s", e.Field)
}

// ErrViewNotFound no saved view with that id for that user
var ErrViewNotFound = errors.New("saved view not found")

// IsAuthError reports whether err wraps an UpstreamAuthError
func IsAuthError(err error) bool {
	var authErr *UpstreamAuthError
	return errors.As(err, &authErr)
}

// IsMissingInput reports whether err wraps a MissingInputError
func IsMissingInput(err error) bool {
	var missing *MissingInputError
	return errors.As(err, &missing)
}

// Warning codes carried alongside a successful result
const (
	WarnTeammateOutDegraded = "teammate_out_degraded"
	WarnOpponentUnresolved  = "opponent_unresolved"
	WarnInvalidOdds         = "invalid_odds"
	WarnPageLimitReached    = "page_limit_reached"
	WarnViewNotFound        = "view_not_found"
)

// Warning a non-fatal condition surfaced to the consumer
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

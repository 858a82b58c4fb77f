package oracle

import (
	"fmt"
	"net/http"
)

// APIError is a structured error envelope returned in the body of an
// Azure OpenAI response, preserved so callers can log the service's own
// error code.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("oracle: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
}

// IsContentFiltered returns true if the prompt or completion tripped the
// service's content filter.
func (e *APIError) IsContentFiltered() bool {
	return e.Code == "content_filter"
}

// IsRateLimited returns true if the deployment's quota was exhausted.
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// HTTPError represents a non-200 response without a parseable error
// envelope.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("oracle: HTTP %d: %s", e.StatusCode, e.Body)
}

// IsRateLimited returns true if the status indicates request throttling.
func (e *HTTPError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsAuth returns true if the API key was rejected.
func (e *HTTPError) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

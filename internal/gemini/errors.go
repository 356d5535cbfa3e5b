package gemini

import (
	"errors"
	"fmt"
	"strings"
)

// APIError is a failed remote call. StatusCode is the HTTP status; Status
// is the provider's status token when present.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("gemini: %s (%d): %s", e.Status, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("gemini: status %d: %s", e.StatusCode, e.Message)
}

// HTTPStatus satisfies the retry layer's status-carrier interface.
func (e *APIError) HTTPStatus() int { return e.StatusCode }

// Category is the user-facing classification of a remote failure. Raw
// provider error text is never shown to end users; handlers map categories
// to their own messages.
type Category string

const (
	CategoryRateLimited     Category = "rate_limited"
	CategoryContentFiltered Category = "content_filtered"
	CategoryUnauthorized    Category = "unauthorized"
	CategoryConnectivity    Category = "connectivity"
	CategoryUnknown         Category = "unknown"
)

// Categorize maps any error from a remote call to a Category.
func Categorize(err error) Category {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return CategoryConnectivity
	}

	switch {
	case apiErr.StatusCode == 429:
		return CategoryRateLimited
	case apiErr.StatusCode == 401 || apiErr.StatusCode == 403:
		return CategoryUnauthorized
	case apiErr.Status == "BLOCKED" || strings.Contains(strings.ToLower(apiErr.Message), "safety"):
		return CategoryContentFiltered
	case apiErr.StatusCode >= 500:
		return CategoryConnectivity
	default:
		return CategoryUnknown
	}
}

package fetch

import "fmt"

// Code is a stable error code calling UIs can branch on.
type Code string

const (
	// CodeNotFound indicates the remote resource does not exist.
	CodeNotFound Code = "NOT_FOUND"
	// CodeRegistry indicates a non-2xx, non-404 response from the remote
	// service.
	CodeRegistry Code = "REGISTRY_ERROR"
	// CodeNetwork indicates a transport-level failure after retries were
	// exhausted.
	CodeNetwork Code = "NETWORK_ERROR"
	// CodeRateLimited indicates the GitHub API rate limit is exhausted.
	CodeRateLimited Code = "RATE_LIMITED"
)

// Error is a fetch-layer error with a stable code and structured details.
type Error struct {
	// Code is the stable error code.
	Code Code
	// Source is the fetcher that produced the error ("npm",
	// "github-release", "github-repo").
	Source string
	// Selector is the package, template, or repository being fetched.
	Selector string
	// Message is the human-readable error message.
	Message string
	// StatusCode is the HTTP status, when the error came from a response.
	StatusCode int
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s fetch error [%s] for %q: %s (caused by: %v)",
			e.Source, e.Code, e.Selector, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s fetch error [%s] for %q: %s", e.Source, e.Code, e.Selector, e.Message)
}

// Unwrap returns the underlying cause for error wrapping.
func (e *Error) Unwrap() error {
	return e.Cause
}

// retryable reports whether the error is transient and worth another
// attempt. Transport failures always are; server-side 5xx responses are;
// missing resources and auth problems are not.
func (e *Error) retryable() bool {
	switch e.Code {
	case CodeNetwork:
		return true
	case CodeRegistry:
		return e.StatusCode >= 500
	default:
		return false
	}
}

// NewNotFoundError creates a not-found error.
func NewNotFoundError(source, selector, message string) *Error {
	return &Error{Code: CodeNotFound, Source: source, Selector: selector, Message: message}
}

// NewRegistryError creates an error for an unexpected HTTP status.
func NewRegistryError(source, selector string, statusCode int, message string) *Error {
	return &Error{Code: CodeRegistry, Source: source, Selector: selector, StatusCode: statusCode, Message: message}
}

// NewNetworkError creates a transport-failure error.
func NewNetworkError(source, selector string, cause error) *Error {
	return &Error{Code: CodeNetwork, Source: source, Selector: selector, Message: "network request failed", Cause: cause}
}

// NewRateLimitedError creates a rate-limit error with an actionable message.
func NewRateLimitedError(source, selector string) *Error {
	return &Error{
		Code:       CodeRateLimited,
		Source:     source,
		Selector:   selector,
		StatusCode: 403,
		Message:    "GitHub API rate limit exceeded; set GITHUB_TOKEN to raise the limit",
	}
}

package fetcher

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error that occurred while opening or using a fetcher
type ErrorType string

const (
	// ErrorTypeConfiguration indicates a required setting is missing or malformed
	ErrorTypeConfiguration ErrorType = "configuration"
	// ErrorTypeURLParse indicates the base endpoint is not a valid absolute URL
	ErrorTypeURLParse ErrorType = "url_parse"
	// ErrorTypeHTTP indicates a transport-level failure (DNS, connection refused, TLS, truncated body)
	ErrorTypeHTTP ErrorType = "http"
	// ErrorTypeRejected indicates the server was reached but answered with a non-2xx status
	ErrorTypeRejected ErrorType = "rejected"
	// ErrorTypeCacheWrite indicates the fetched resource could not be persisted locally
	ErrorTypeCacheWrite ErrorType = "cache_write"
)

// FetchError represents a structured error from opening a fetcher or fetching a resource
type FetchError struct {
	Type       ErrorType
	Retryable  bool
	StatusCode int
	// Status is the literal status line reported by the server, e.g. "403 Forbidden".
	Status  string
	Path    string
	Message string
	Cause   error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	switch {
	case e.Status != "":
		return fmt.Sprintf("%s error (status %s): %s", e.Type, e.Status, e.Message)
	case e.Path != "":
		return fmt.Sprintf("%s error (path %s): %s", e.Type, e.Path, e.withCause())
	default:
		return fmt.Sprintf("%s error: %s", e.Type, e.withCause())
	}
}

func (e *FetchError) withCause() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(message string, cause error) *FetchError {
	return &FetchError{
		Type:    ErrorTypeConfiguration,
		Message: message,
		Cause:   cause,
	}
}

// NewURLParseError creates an error for a base endpoint that is not an absolute URL
func NewURLParseError(raw string, cause error) *FetchError {
	return &FetchError{
		Type:    ErrorTypeURLParse,
		Message: fmt.Sprintf("invalid base url %q", raw),
		Cause:   cause,
	}
}

// NewHTTPError creates a transport error
func NewHTTPError(cause error) *FetchError {
	return &FetchError{
		Type:      ErrorTypeHTTP,
		Retryable: true,
		Message:   "request failed",
		Cause:     cause,
	}
}

// NewRejectedError creates an error for a non-success response
func NewRejectedError(statusCode int, status string) *FetchError {
	if status == "" {
		status = fmt.Sprintf("%d", statusCode)
	}
	return &FetchError{
		Type:       ErrorTypeRejected,
		StatusCode: statusCode,
		Status:     status,
		Message:    rejectionHint(statusCode),
	}
}

// NewCacheWriteError creates an error for a failed write-back
func NewCacheWriteError(path string, cause error) *FetchError {
	return &FetchError{
		Type:    ErrorTypeCacheWrite,
		Path:    path,
		Message: "failed to cache resource",
		Cause:   cause,
	}
}

// IsType reports whether err is, or wraps, a FetchError of the given type
func IsType(err error, t ErrorType) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Type == t
}

func rejectionHint(statusCode int) string {
	switch {
	case statusCode == 400 || statusCode == 401 || statusCode == 403:
		return "request rejected, session credential is likely missing or expired"
	case statusCode == 404:
		return "resource not available yet"
	case statusCode >= 500:
		return "server returned an error"
	default:
		return "request rejected"
	}
}

package jira

import (
	"fmt"
	"net/http"
)

// ErrorType classifies a failed Jira API call. The submitter's retry policy
// dispatches on this classification only, never on raw status codes.
type ErrorType int

const (
	// ErrorTypeAuthentication indicates rejected credentials (401/403)
	ErrorTypeAuthentication ErrorType = iota
	// ErrorTypeClientRejected indicates a non-retryable client error such as a
	// malformed payload or an unknown project (4xx other than 429)
	ErrorTypeClientRejected
	// ErrorTypeRateLimited indicates the server asked us to slow down (429)
	ErrorTypeRateLimited
	// ErrorTypeServer indicates a server-side failure (5xx)
	ErrorTypeServer
	// ErrorTypeNetwork indicates the request never produced a response
	ErrorTypeNetwork
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeAuthentication:
		return "authentication"
	case ErrorTypeClientRejected:
		return "client"
	case ErrorTypeRateLimited:
		return "rate-limited"
	case ErrorTypeServer:
		return "server"
	case ErrorTypeNetwork:
		return "network"
	}
	return "unknown"
}

// APIError represents a failed call to the Jira API with its classification.
type APIError struct {
	Type       ErrorType
	StatusCode int
	Message    string
	Cause      error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("jira %s error (status %d): %s", e.Type, e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("jira %s error: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("jira %s error: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *APIError) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific classification
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// Retryable reports whether the failure is worth another attempt. Rejected
// credentials and payload problems will not improve by retrying; rate limits,
// server errors and network failures might.
func (e *APIError) Retryable() bool {
	switch e.Type {
	case ErrorTypeRateLimited, ErrorTypeServer, ErrorTypeNetwork:
		return true
	}
	return false
}

// NewStatusError builds an APIError classified from an HTTP status code.
func NewStatusError(statusCode int, body string) *APIError {
	return &APIError{
		Type:       classifyStatus(statusCode),
		StatusCode: statusCode,
		Message:    body,
	}
}

// NewNetworkError builds an APIError for a request that never got a response.
func NewNetworkError(message string, cause error) *APIError {
	return &APIError{
		Type:    ErrorTypeNetwork,
		Message: message,
		Cause:   cause,
	}
}

func classifyStatus(code int) ErrorType {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrorTypeAuthentication
	case code == http.StatusTooManyRequests:
		return ErrorTypeRateLimited
	case code >= 400 && code < 500:
		return ErrorTypeClientRejected
	default:
		return ErrorTypeServer
	}
}

// SubmissionError is the terminal failure of a submit operation, wrapping the
// last underlying cause. Whether the submission was retried to exhaustion or
// rejected outright is visible only through the wrapped cause's
// classification, mirroring the API's own taxonomy.
type SubmissionError struct {
	Attempts int
	Cause    error
}

// Error implements the error interface
func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission failed after %d attempt(s): %v", e.Attempts, e.Cause)
}

// Unwrap returns the underlying error
func (e *SubmissionError) Unwrap() error {
	return e.Cause
}

// Package error defines domain-specific errors for the Billfold application.
package error

// RequestErrorCode defines error codes for generic request handling errors.
type RequestErrorCode string

const (
	// ErrCodeRateLimited is returned when a client exceeds the request rate limit.
	ErrCodeRateLimited RequestErrorCode = "REQ-020001"
)

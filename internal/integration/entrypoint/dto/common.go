// Package dto defines request and response payloads for the API endpoints.
package dto

// ErrorResponse represents an error response payload.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Package error defines domain-specific errors for the Billfold application.
package error

import "errors"

// Bill domain errors.
var (
	// ErrBillNotFound is returned when a bill is not found in the system.
	ErrBillNotFound = errors.New("bill not found")

	// ErrBillAlreadyScheduled is returned when a bill collides with the
	// per-rule (or per-name for one-off bills) due-date uniqueness invariant.
	ErrBillAlreadyScheduled = errors.New("bill already exists for this due date")

	// ErrInvalidBillAmount is returned when the bill amount is zero or negative.
	ErrInvalidBillAmount = errors.New("invalid bill amount")

	// ErrBillCategoryNotFound is returned when the category for a bill is not found.
	ErrBillCategoryNotFound = errors.New("category not found")

	// ErrMissingBillFields is returned when required bill fields are missing.
	ErrMissingBillFields = errors.New("missing required bill fields")
)

// BillErrorCode defines error codes for bill errors.
// Format: BIL-XXYYYY where XX is category and YYYY is specific error.
type BillErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeBillNotFound         BillErrorCode = "BIL-010001"
	ErrCodeBillAlreadyScheduled BillErrorCode = "BIL-010002"
	ErrCodeInvalidBillAmount    BillErrorCode = "BIL-010003"
	ErrCodeBillCategoryNotFound BillErrorCode = "BIL-010004"
	ErrCodeMissingBillFields    BillErrorCode = "BIL-010005"
)

// BillError represents a bill error with code and message.
type BillError struct {
	Code    BillErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BillError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BillError) Unwrap() error {
	return e.Err
}

// NewBillError creates a new BillError with the given code and message.
func NewBillError(code BillErrorCode, message string, err error) *BillError {
	return &BillError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

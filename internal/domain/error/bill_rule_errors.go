// Package error defines domain-specific errors for the Billfold application.
package error

import "errors"

// Bill rule domain errors.
var (
	// ErrBillRuleNotFound is returned when a bill rule is not found in the system.
	ErrBillRuleNotFound = errors.New("bill rule not found")

	// ErrInvalidRuleAmount is returned when the rule amount is zero or negative.
	ErrInvalidRuleAmount = errors.New("invalid rule amount")

	// ErrInvalidFrequency is returned when the frequency is not a known value.
	ErrInvalidFrequency = errors.New("invalid frequency")

	// ErrRuleCategoryNotFound is returned when the category for a rule is not found.
	ErrRuleCategoryNotFound = errors.New("category not found")

	// ErrRuleCategoryNotExpense is returned when the referenced category is not an expense category.
	ErrRuleCategoryNotExpense = errors.New("category is not an expense category")

	// ErrMissingRuleFields is returned when required rule fields are missing.
	ErrMissingRuleFields = errors.New("missing required rule fields")
)

// BillRuleErrorCode defines error codes for bill rule errors.
// Format: BRL-XXYYYY where XX is category and YYYY is specific error.
type BillRuleErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeBillRuleNotFound        BillRuleErrorCode = "BRL-010001"
	ErrCodeInvalidRuleAmount       BillRuleErrorCode = "BRL-010002"
	ErrCodeInvalidFrequency        BillRuleErrorCode = "BRL-010003"
	ErrCodeRuleCategoryNotFound    BillRuleErrorCode = "BRL-010004"
	ErrCodeRuleCategoryNotExpense  BillRuleErrorCode = "BRL-010005"
	ErrCodeMissingRuleFields       BillRuleErrorCode = "BRL-010006"
)

// BillRuleError represents a bill rule error with code and message.
type BillRuleError struct {
	Code    BillRuleErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BillRuleError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BillRuleError) Unwrap() error {
	return e.Err
}

// NewBillRuleError creates a new BillRuleError with the given code and message.
func NewBillRuleError(code BillRuleErrorCode, message string, err error) *BillRuleError {
	return &BillRuleError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction represents a payment transaction recorded when a bill is
// settled. Amounts are negative, matching the expense convention.
type Transaction struct {
	ID          uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	CategoryID  uuid.UUID
	BillID      *uuid.UUID
	CreatedAt   time.Time
}

// NewPaymentTransaction creates a transaction recording a bill payment.
func NewPaymentTransaction(date time.Time, description string, amount decimal.Decimal, categoryID uuid.UUID, billID uuid.UUID) *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		Date:        date,
		Description: description,
		Amount:      amount.Neg(),
		CategoryID:  categoryID,
		BillID:      &billID,
		CreatedAt:   time.Now().UTC(),
	}
}

// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillStatus represents the lifecycle state of a bill instance.
type BillStatus string

const (
	BillStatusPending BillStatus = "pending"
	BillStatusOverdue BillStatus = "overdue"
	BillStatusPaid    BillStatus = "paid"
)

// Bill represents one concrete payment obligation, either generated from a
// BillRule or created standalone (BillRuleID nil).
type Bill struct {
	ID            uuid.UUID
	Name          string
	Currency      string
	BillRuleID    *uuid.UUID // nil for a manually created one-off bill
	DueDate       time.Time  // date only, no time component
	Amount        decimal.Decimal
	PaidAmount    decimal.Decimal // always within [0, Amount]
	Status        BillStatus
	TransactionID *uuid.UUID // set when linked to a payment transaction
	CategoryID    uuid.UUID
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewBill creates a new pending Bill entity.
func NewBill(
	name string,
	currency string,
	billRuleID *uuid.UUID,
	dueDate time.Time,
	amount decimal.Decimal,
	categoryID uuid.UUID,
) *Bill {
	now := time.Now().UTC()

	return &Bill{
		ID:         uuid.New(),
		Name:       name,
		Currency:   currency,
		BillRuleID: billRuleID,
		DueDate:    dueDate,
		Amount:     amount,
		PaidAmount: decimal.Zero,
		Status:     BillStatusPending,
		CategoryID: categoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Remaining returns the unpaid portion of the bill.
func (b *Bill) Remaining() decimal.Decimal {
	return b.Amount.Sub(b.PaidAmount)
}

// IsPaid reports whether the bill is fully settled.
func (b *Bill) IsPaid() bool {
	return b.Status == BillStatusPaid
}

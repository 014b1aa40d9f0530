// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillFrequency represents how often a bill rule produces instances.
type BillFrequency string

const (
	FrequencyWeekly    BillFrequency = "weekly"
	FrequencyMonthly   BillFrequency = "monthly"
	FrequencyQuarterly BillFrequency = "quarterly"
	FrequencyYearly    BillFrequency = "yearly"
	FrequencyOneTime   BillFrequency = "one_time"
)

// BillRule represents a recurring (or one-time) bill template.
// A rule owns no instance state of its own; the recurrence engine
// materializes Bill instances from it.
type BillRule struct {
	ID         uuid.UUID
	Name       string
	Amount     decimal.Decimal
	Currency   string
	Frequency  BillFrequency
	CategoryID uuid.UUID
	IsActive   bool
	StartDate  time.Time // date only, no time component
	AutoNext   bool      // paying/expiring an instance materializes the next one
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewBillRule creates a new BillRule entity.
func NewBillRule(
	name string,
	amount decimal.Decimal,
	currency string,
	frequency BillFrequency,
	categoryID uuid.UUID,
	isActive bool,
	startDate time.Time,
	autoNext bool,
) *BillRule {
	now := time.Now().UTC()

	return &BillRule{
		ID:         uuid.New(),
		Name:       name,
		Amount:     amount,
		Currency:   currency,
		Frequency:  frequency,
		CategoryID: categoryID,
		IsActive:   isActive,
		StartDate:  startDate,
		AutoNext:   autoNext,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsRecurring reports whether the rule produces more than one instance.
func (r *BillRule) IsRecurring() bool {
	return r.Frequency != FrequencyOneTime
}

// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billfold/backend/internal/domain/entity"
)

// BillModel represents the bills table in the database. The composite
// unique index on (bill_rule_id, due_date) is the backstop for the
// engine's no-duplicate-due-date invariant; NULL rule ids do not collide,
// so one-off bills rely on the (name, due_date) check at the use case
// layer.
type BillModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name          string          `gorm:"type:varchar(150);not null;index:idx_bills_name_due"`
	Currency      string          `gorm:"type:varchar(3);not null"`
	BillRuleID    *uuid.UUID      `gorm:"type:uuid;index;uniqueIndex:idx_bills_rule_due"`
	DueDate       time.Time       `gorm:"type:date;not null;index;index:idx_bills_name_due;uniqueIndex:idx_bills_rule_due"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Status        string          `gorm:"type:varchar(10);not null;index"`
	TransactionID *uuid.UUID      `gorm:"type:uuid"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	PaidAt        *time.Time      `gorm:"type:timestamp"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	BillRule *BillRuleModel `gorm:"foreignKey:BillRuleID;references:ID"`
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the BillModel.
func (BillModel) TableName() string {
	return "bills"
}

// ToEntity converts a BillModel to a domain Bill entity.
func (m *BillModel) ToEntity() *entity.Bill {
	return &entity.Bill{
		ID:            m.ID,
		Name:          m.Name,
		Currency:      m.Currency,
		BillRuleID:    m.BillRuleID,
		DueDate:       m.DueDate,
		Amount:        m.Amount,
		PaidAmount:    m.PaidAmount,
		Status:        entity.BillStatus(m.Status),
		TransactionID: m.TransactionID,
		CategoryID:    m.CategoryID,
		PaidAt:        m.PaidAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// BillFromEntity creates a BillModel from a domain Bill entity.
func BillFromEntity(bill *entity.Bill) *BillModel {
	return &BillModel{
		ID:            bill.ID,
		Name:          bill.Name,
		Currency:      bill.Currency,
		BillRuleID:    bill.BillRuleID,
		DueDate:       bill.DueDate,
		Amount:        bill.Amount,
		PaidAmount:    bill.PaidAmount,
		Status:        string(bill.Status),
		TransactionID: bill.TransactionID,
		CategoryID:    bill.CategoryID,
		PaidAt:        bill.PaidAt,
		CreatedAt:     bill.CreatedAt,
		UpdatedAt:     bill.UpdatedAt,
	}
}

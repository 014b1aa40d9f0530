// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billfold/backend/internal/domain/entity"
)

// BillRuleModel represents the bill_rules table in the database.
type BillRuleModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name       string          `gorm:"type:varchar(100);not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Currency   string          `gorm:"type:varchar(3);not null"`
	Frequency  string          `gorm:"type:varchar(10);not null"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	IsActive   bool            `gorm:"not null;default:true;index"`
	StartDate  time.Time       `gorm:"type:date;not null"`
	AutoNext   bool            `gorm:"not null;default:true"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`

	// Relationship (not loaded by default, use Preload)
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the BillRuleModel.
func (BillRuleModel) TableName() string {
	return "bill_rules"
}

// ToEntity converts a BillRuleModel to a domain BillRule entity.
func (m *BillRuleModel) ToEntity() *entity.BillRule {
	return &entity.BillRule{
		ID:         m.ID,
		Name:       m.Name,
		Amount:     m.Amount,
		Currency:   m.Currency,
		Frequency:  entity.BillFrequency(m.Frequency),
		CategoryID: m.CategoryID,
		IsActive:   m.IsActive,
		StartDate:  m.StartDate,
		AutoNext:   m.AutoNext,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// BillRuleFromEntity creates a BillRuleModel from a domain BillRule entity.
func BillRuleFromEntity(rule *entity.BillRule) *BillRuleModel {
	return &BillRuleModel{
		ID:         rule.ID,
		Name:       rule.Name,
		Amount:     rule.Amount,
		Currency:   rule.Currency,
		Frequency:  string(rule.Frequency),
		CategoryID: rule.CategoryID,
		IsActive:   rule.IsActive,
		StartDate:  rule.StartDate,
		AutoNext:   rule.AutoNext,
		CreatedAt:  rule.CreatedAt,
		UpdatedAt:  rule.UpdatedAt,
	}
}

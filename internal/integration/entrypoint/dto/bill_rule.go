// Package dto defines request and response payloads for the API endpoints.
package dto

import (
	"github.com/billfold/backend/internal/domain/entity"
)

// CreateBillRuleRequest represents the request body for rule creation.
type CreateBillRuleRequest struct {
	Name       string  `json:"name" binding:"required"`
	Amount     string  `json:"amount" binding:"required"`
	Currency   string  `json:"currency"`
	Frequency  string  `json:"frequency" binding:"required"`
	CategoryID string  `json:"category_id" binding:"required"`
	IsActive   *bool   `json:"is_active"`
	StartDate  string  `json:"start_date" binding:"required"`
	AutoNext   *bool   `json:"auto_next"`
}

// UpdateBillRuleRequest represents the request body for a partial rule
// update. Omitted fields are left unchanged.
type UpdateBillRuleRequest struct {
	Name       *string `json:"name"`
	Amount     *string `json:"amount"`
	Currency   *string `json:"currency"`
	Frequency  *string `json:"frequency"`
	CategoryID *string `json:"category_id"`
	IsActive   *bool   `json:"is_active"`
	StartDate  *string `json:"start_date"`
	AutoNext   *bool   `json:"auto_next"`
}

// BillRuleResponse represents a bill rule in API responses.
type BillRuleResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	Frequency  string `json:"frequency"`
	CategoryID string `json:"category_id"`
	IsActive   bool   `json:"is_active"`
	StartDate  string `json:"start_date"`
	AutoNext   bool   `json:"auto_next"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// CreateBillRuleResponse represents the response for rule creation,
// including the first generated instance when the rule is active.
type CreateBillRuleResponse struct {
	Rule      BillRuleResponse `json:"rule"`
	FirstBill *BillResponse    `json:"first_bill,omitempty"`
}

// BillRuleListResponse represents the response for listing rules.
type BillRuleListResponse struct {
	Rules []BillRuleResponse `json:"rules"`
}

// ToBillRuleResponse converts a BillRule entity to its response payload.
func ToBillRuleResponse(rule *entity.BillRule) BillRuleResponse {
	return BillRuleResponse{
		ID:         rule.ID.String(),
		Name:       rule.Name,
		Amount:     rule.Amount.String(),
		Currency:   rule.Currency,
		Frequency:  string(rule.Frequency),
		CategoryID: rule.CategoryID.String(),
		IsActive:   rule.IsActive,
		StartDate:  rule.StartDate.Format("2006-01-02"),
		AutoNext:   rule.AutoNext,
		CreatedAt:  rule.CreatedAt.Format(timeFormat),
		UpdatedAt:  rule.UpdatedAt.Format(timeFormat),
	}
}

// ToBillRuleListResponse converts a slice of rules to a list response.
func ToBillRuleListResponse(rules []*entity.BillRule) BillRuleListResponse {
	out := BillRuleListResponse{Rules: make([]BillRuleResponse, len(rules))}
	for i, rule := range rules {
		out.Rules[i] = ToBillRuleResponse(rule)
	}
	return out
}

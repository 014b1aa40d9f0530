// Package dto defines request and response payloads for the API endpoints.
package dto

import (
	"time"

	"github.com/billfold/backend/internal/domain/entity"
)

// timeFormat is the timestamp layout used in responses.
const timeFormat = time.RFC3339

// CreateBillRequest represents the request body for creating a manual
// one-off bill.
type CreateBillRequest struct {
	Name       string `json:"name" binding:"required"`
	Amount     string `json:"amount" binding:"required"`
	Currency   string `json:"currency"`
	DueDate    string `json:"due_date" binding:"required"`
	CategoryID string `json:"category_id" binding:"required"`
}

// PayBillRequest represents the request body for marking a bill paid.
type PayBillRequest struct {
	TransactionID *string `json:"transaction_id"`
}

// RecordPaymentRequest represents the request body for recording a
// (possibly partial) payment.
type RecordPaymentRequest struct {
	Amount        string  `json:"amount" binding:"required"`
	TransactionID *string `json:"transaction_id"`
}

// BillResponse represents a bill in API responses.
type BillResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Currency      string  `json:"currency"`
	BillRuleID    *string `json:"bill_rule_id,omitempty"`
	DueDate       string  `json:"due_date"`
	Amount        string  `json:"amount"`
	PaidAmount    string  `json:"paid_amount"`
	Status        string  `json:"status"`
	TransactionID *string `json:"transaction_id,omitempty"`
	CategoryID    string  `json:"category_id"`
	PaidAt        *string `json:"paid_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// BillListResponse represents the response for listing bills.
type BillListResponse struct {
	Bills []BillResponse `json:"bills"`
}

// SweepResponse represents the outcome of a reconciliation sweep.
type SweepResponse struct {
	MarkedOverdue int `json:"marked_overdue"`
	Generated     int `json:"generated"`
}

// ToBillResponse converts a Bill entity to its response payload.
func ToBillResponse(bill *entity.Bill) BillResponse {
	resp := BillResponse{
		ID:         bill.ID.String(),
		Name:       bill.Name,
		Currency:   bill.Currency,
		DueDate:    bill.DueDate.Format("2006-01-02"),
		Amount:     bill.Amount.String(),
		PaidAmount: bill.PaidAmount.String(),
		Status:     string(bill.Status),
		CategoryID: bill.CategoryID.String(),
		CreatedAt:  bill.CreatedAt.Format(timeFormat),
	}
	if bill.BillRuleID != nil {
		id := bill.BillRuleID.String()
		resp.BillRuleID = &id
	}
	if bill.TransactionID != nil {
		id := bill.TransactionID.String()
		resp.TransactionID = &id
	}
	if bill.PaidAt != nil {
		paidAt := bill.PaidAt.Format(timeFormat)
		resp.PaidAt = &paidAt
	}
	return resp
}

// ToBillListResponse converts a slice of bills to a list response.
func ToBillListResponse(bills []*entity.Bill) BillListResponse {
	out := BillListResponse{Bills: make([]BillResponse, len(bills))}
	for i, bill := range bills {
		out.Bills[i] = ToBillResponse(bill)
	}
	return out
}

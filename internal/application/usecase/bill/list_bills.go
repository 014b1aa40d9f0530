// Package bill contains the bill recurrence engine use cases.
package bill

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/billfold/backend/internal/application/adapter"
	"github.com/billfold/backend/internal/domain/entity"
)

// ListBillsInput represents the input for listing bills.
type ListBillsInput struct {
	RuleID *uuid.UUID // Optional, restricts to one rule's instances
}

// ListBillsOutput represents the output of listing bills.
type ListBillsOutput struct {
	Bills []*entity.Bill
}

// ListBillsUseCase lists bill instances ordered by due date.
type ListBillsUseCase struct {
	billRepo adapter.BillRepository
}

// NewListBillsUseCase creates a new ListBillsUseCase instance.
func NewListBillsUseCase(billRepo adapter.BillRepository) *ListBillsUseCase {
	return &ListBillsUseCase{billRepo: billRepo}
}

// Execute lists the bills.
func (uc *ListBillsUseCase) Execute(ctx context.Context, input ListBillsInput) (*ListBillsOutput, error) {
	var (
		bills []*entity.Bill
		err   error
	)
	if input.RuleID != nil {
		bills, err = uc.billRepo.FindByRule(ctx, *input.RuleID)
	} else {
		bills, err = uc.billRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	return &ListBillsOutput{Bills: bills}, nil
}

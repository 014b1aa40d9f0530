// Package bill contains the bill recurrence engine use cases.
package bill

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/billfold/backend/internal/application/adapter"
	"github.com/billfold/backend/internal/domain/entity"
	domainerror "github.com/billfold/backend/internal/domain/error"
)

// MarkAsPaidInput represents the input for marking a bill fully paid.
type MarkAsPaidInput struct {
	BillID        uuid.UUID
	TransactionID *uuid.UUID // Optional external payment transaction to link
}

// MarkAsPaidOutput represents the output of marking a bill paid.
// Bill is nil when the bill id did not resolve to a record; reconciliation
// callers treat that as a no-op.
type MarkAsPaidOutput struct {
	Bill *entity.Bill
}

// MarkAsPaidUseCase handles full payment of a bill.
type MarkAsPaidUseCase struct {
	billRepo        adapter.BillRepository
	ruleRepo        adapter.BillRuleRepository
	transactionRepo adapter.TransactionRepository
	generator       *Generator
	notifier        adapter.ChangeNotifier
	clock           adapter.Clock
}

// NewMarkAsPaidUseCase creates a new MarkAsPaidUseCase instance.
func NewMarkAsPaidUseCase(
	billRepo adapter.BillRepository,
	ruleRepo adapter.BillRuleRepository,
	transactionRepo adapter.TransactionRepository,
	generator *Generator,
	notifier adapter.ChangeNotifier,
	clock adapter.Clock,
) *MarkAsPaidUseCase {
	return &MarkAsPaidUseCase{
		billRepo:        billRepo,
		ruleRepo:        ruleRepo,
		transactionRepo: transactionRepo,
		generator:       generator,
		notifier:        notifier,
		clock:           clock,
	}
}

// Execute marks the bill fully paid and, when the owning rule is active
// with auto-generation enabled, materializes the next instance.
func (uc *MarkAsPaidUseCase) Execute(ctx context.Context, input MarkAsPaidInput) (*MarkAsPaidOutput, error) {
	bill, err := uc.billRepo.FindByID(ctx, input.BillID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBillNotFound) {
			return &MarkAsPaidOutput{}, nil
		}
		return nil, fmt.Errorf("failed to find bill: %w", err)
	}

	now := uc.clock.Now().UTC()
	applyPaidState(bill, now)

	if err := linkPaymentTransaction(ctx, uc.transactionRepo, bill, input.TransactionID, now); err != nil {
		return nil, fmt.Errorf("failed to record payment transaction: %w", err)
	}

	if err := uc.billRepo.Update(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to update bill: %w", err)
	}
	uc.notifier.NotifyChanged(ctx, adapter.AggregateBill, bill.ID)

	generateFollowUp(ctx, bill, uc.ruleRepo, uc.generator, uc.notifier)

	return &MarkAsPaidOutput{Bill: bill}, nil
}

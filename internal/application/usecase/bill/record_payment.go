// Package bill contains the bill recurrence engine use cases.
package bill

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billfold/backend/internal/application/adapter"
	"github.com/billfold/backend/internal/domain/entity"
	domainerror "github.com/billfold/backend/internal/domain/error"
)

// RecordPaymentInput represents the input for recording a (possibly
// partial) payment against a bill. Amount may be negative for corrections;
// the accumulated total is clamped to [0, bill amount].
type RecordPaymentInput struct {
	BillID        uuid.UUID
	Amount        decimal.Decimal
	TransactionID *uuid.UUID // Optional external payment transaction to link
}

// RecordPaymentOutput represents the output of recording a payment.
// Bill is nil when the bill id did not resolve to a record.
type RecordPaymentOutput struct {
	Bill *entity.Bill
}

// RecordPaymentUseCase accumulates payments on a bill and transitions it
// to paid once the total reaches the bill amount.
type RecordPaymentUseCase struct {
	billRepo        adapter.BillRepository
	ruleRepo        adapter.BillRuleRepository
	transactionRepo adapter.TransactionRepository
	generator       *Generator
	notifier        adapter.ChangeNotifier
	clock           adapter.Clock
}

// NewRecordPaymentUseCase creates a new RecordPaymentUseCase instance.
func NewRecordPaymentUseCase(
	billRepo adapter.BillRepository,
	ruleRepo adapter.BillRuleRepository,
	transactionRepo adapter.TransactionRepository,
	generator *Generator,
	notifier adapter.ChangeNotifier,
	clock adapter.Clock,
) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{
		billRepo:        billRepo,
		ruleRepo:        ruleRepo,
		transactionRepo: transactionRepo,
		generator:       generator,
		notifier:        notifier,
		clock:           clock,
	}
}

// Execute applies the payment. A clamped total equal to the bill amount
// yields the same post-state as MarkAsPaid, including follow-up
// generation; anything below keeps (or reverts) the bill to pending and
// clears paid_at.
func (uc *RecordPaymentUseCase) Execute(ctx context.Context, input RecordPaymentInput) (*RecordPaymentOutput, error) {
	bill, err := uc.billRepo.FindByID(ctx, input.BillID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBillNotFound) {
			return &RecordPaymentOutput{}, nil
		}
		return nil, fmt.Errorf("failed to find bill: %w", err)
	}

	total := bill.PaidAmount.Add(input.Amount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	if total.GreaterThan(bill.Amount) {
		total = bill.Amount
	}

	now := uc.clock.Now().UTC()
	becamePaid := total.Equal(bill.Amount)

	if becamePaid {
		applyPaidState(bill, now)
		if err := linkPaymentTransaction(ctx, uc.transactionRepo, bill, input.TransactionID, now); err != nil {
			return nil, fmt.Errorf("failed to record payment transaction: %w", err)
		}
	} else {
		// A partial total never leaves a bill in paid state, even if it
		// was paid before this call reduced the total. An overdue bill
		// stays overdue; only full payment moves it forward.
		bill.PaidAmount = total
		if bill.Status != entity.BillStatusOverdue {
			bill.Status = entity.BillStatusPending
		}
		bill.PaidAt = nil
		bill.UpdatedAt = now
		if input.TransactionID != nil {
			bill.TransactionID = input.TransactionID
		}
	}

	if err := uc.billRepo.Update(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to update bill: %w", err)
	}
	uc.notifier.NotifyChanged(ctx, adapter.AggregateBill, bill.ID)

	if becamePaid {
		generateFollowUp(ctx, bill, uc.ruleRepo, uc.generator, uc.notifier)
	}

	return &RecordPaymentOutput{Bill: bill}, nil
}

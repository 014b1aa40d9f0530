// Package bill contains the bill recurrence engine use cases.
package bill

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/billfold/backend/internal/application/adapter"
	"github.com/billfold/backend/internal/domain/entity"
	domainerror "github.com/billfold/backend/internal/domain/error"
)

// applyPaidState moves the bill to the paid post-state in memory.
func applyPaidState(bill *entity.Bill, now time.Time) {
	bill.PaidAmount = bill.Amount
	bill.Status = entity.BillStatusPaid
	paidAt := now
	bill.PaidAt = &paidAt
	bill.UpdatedAt = now
}

// linkPaymentTransaction attaches the caller-supplied transaction id, or
// records a new payment transaction for the bill and links that.
func linkPaymentTransaction(
	ctx context.Context,
	transactionRepo adapter.TransactionRepository,
	bill *entity.Bill,
	transactionID *uuid.UUID,
	now time.Time,
) error {
	if transactionID != nil {
		bill.TransactionID = transactionID
		return nil
	}

	txn := entity.NewPaymentTransaction(now, bill.Name, bill.Amount, bill.CategoryID, bill.ID)
	if err := transactionRepo.Create(ctx, txn); err != nil {
		return err
	}
	bill.TransactionID = &txn.ID
	return nil
}

// generateFollowUp materializes the next instance of the bill's rule when
// the rule is active, recurring and set to auto-generate. Generation
// failures are logged rather than propagated: the payment itself has
// already committed and the ensure-generated sweep will catch up.
func generateFollowUp(
	ctx context.Context,
	bill *entity.Bill,
	ruleRepo adapter.BillRuleRepository,
	generator *Generator,
	notifier adapter.ChangeNotifier,
) {
	if bill.BillRuleID == nil {
		return
	}

	rule, err := ruleRepo.FindByID(ctx, *bill.BillRuleID)
	if err != nil {
		if !errors.Is(err, domainerror.ErrBillRuleNotFound) {
			slog.Error("Failed to load rule for follow-up generation",
				"bill_id", bill.ID, "rule_id", *bill.BillRuleID, "error", err)
		}
		return
	}

	if !rule.IsActive || !rule.AutoNext || !rule.IsRecurring() {
		return
	}

	next, err := generator.GenerateNext(ctx, rule)
	if err != nil {
		slog.Error("Failed to generate next bill instance",
			"rule_id", rule.ID, "error", err)
		return
	}
	if next != nil {
		notifier.NotifyChanged(ctx, adapter.AggregateBill, next.ID)
	}
}

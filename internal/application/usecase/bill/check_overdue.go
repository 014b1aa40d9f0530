// Package bill contains the bill recurrence engine use cases.
package bill

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/billfold/backend/internal/application/adapter"
	"github.com/billfold/backend/internal/domain/entity"
	"github.com/billfold/backend/internal/domain/recurrence"
)

// CheckOverdueOutput reports what the overdue sweep did.
type CheckOverdueOutput struct {
	MarkedOverdue int
	Generated     int
}

// CheckOverdueUseCase is the overdue reconciliation sweep: every unpaid
// bill past its due date is flagged overdue, and rules with auto-generation
// get their next instance scheduled so a missed bill never blocks the
// cycle. The sweep is idempotent and is the only writer of the overdue
// status.
type CheckOverdueUseCase struct {
	billRepo  adapter.BillRepository
	ruleRepo  adapter.BillRuleRepository
	generator *Generator
	notifier  adapter.ChangeNotifier
	clock     adapter.Clock
}

// NewCheckOverdueUseCase creates a new CheckOverdueUseCase instance.
func NewCheckOverdueUseCase(
	billRepo adapter.BillRepository,
	ruleRepo adapter.BillRuleRepository,
	generator *Generator,
	notifier adapter.ChangeNotifier,
	clock adapter.Clock,
) *CheckOverdueUseCase {
	return &CheckOverdueUseCase{
		billRepo:  billRepo,
		ruleRepo:  ruleRepo,
		generator: generator,
		notifier:  notifier,
		clock:     clock,
	}
}

// Execute runs the sweep. Individual record failures are logged and
// skipped; the sweep iterates user data that is not mutually dependent,
// so one bad record must not abort the batch.
func (uc *CheckOverdueUseCase) Execute(ctx context.Context) (*CheckOverdueOutput, error) {
	today := recurrence.DateOnly(uc.clock.Now())

	candidates, err := uc.billRepo.FindOverdueCandidates(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue candidates: %w", err)
	}

	out := &CheckOverdueOutput{}
	for _, bill := range candidates {
		if bill.Status != entity.BillStatusOverdue {
			bill.Status = entity.BillStatusOverdue
			bill.UpdatedAt = uc.clock.Now().UTC()
			if err := uc.billRepo.Update(ctx, bill); err != nil {
				slog.Error("Failed to flag bill overdue",
					"bill_id", bill.ID, "due_date", bill.DueDate.Format("2006-01-02"), "error", err)
				continue
			}
			out.MarkedOverdue++
			uc.notifier.NotifyChanged(ctx, adapter.AggregateBill, bill.ID)
		}

		if generated := uc.generateForOverdue(ctx, bill); generated {
			out.Generated++
		}
	}

	slog.Info("Overdue sweep complete",
		"candidates", len(candidates),
		"marked_overdue", out.MarkedOverdue,
		"generated", out.Generated)

	return out, nil
}

// generateForOverdue schedules the next instance of the overdue bill's
// rule when the rule is active, recurring and set to auto-generate.
func (uc *CheckOverdueUseCase) generateForOverdue(ctx context.Context, bill *entity.Bill) bool {
	if bill.BillRuleID == nil {
		return false
	}

	rule, err := uc.ruleRepo.FindByID(ctx, *bill.BillRuleID)
	if err != nil {
		slog.Error("Failed to load rule during overdue sweep",
			"bill_id", bill.ID, "rule_id", *bill.BillRuleID, "error", err)
		return false
	}

	if !rule.IsActive || !rule.AutoNext || !rule.IsRecurring() {
		return false
	}

	next, err := uc.generator.GenerateNext(ctx, rule)
	if err != nil {
		slog.Error("Failed to generate next bill during overdue sweep",
			"rule_id", rule.ID, "error", err)
		return false
	}
	if next == nil {
		return false
	}

	uc.notifier.NotifyChanged(ctx, adapter.AggregateBill, next.ID)
	return true
}

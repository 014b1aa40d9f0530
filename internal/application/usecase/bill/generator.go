// Package bill contains the bill recurrence engine use cases.
package bill

import (
	"context"
	"errors"
	"fmt"

	"github.com/billfold/backend/internal/application/adapter"
	"github.com/billfold/backend/internal/domain/entity"
	domainerror "github.com/billfold/backend/internal/domain/error"
	"github.com/billfold/backend/internal/domain/recurrence"
)

// Generator materializes the next bill instance of a rule. It is the single
// code path that creates rule-owned bills, shared by rule creation, payment
// post-conditions and the reconciliation sweeps.
type Generator struct {
	billRepo adapter.BillRepository
	clock    adapter.Clock
}

// NewGenerator creates a new Generator instance.
func NewGenerator(billRepo adapter.BillRepository, clock adapter.Clock) *Generator {
	return &Generator{
		billRepo: billRepo,
		clock:    clock,
	}
}

// GenerateNext creates the next bill instance for the rule and returns it.
// It returns (nil, nil) whenever no instance is owed: the rule is inactive,
// an un-expired instance is already scheduled, the rule is one-time and has
// already produced its instance, or a concurrent call inserted the same due
// date first. Re-invoking it any number of times never double-schedules.
func (g *Generator) GenerateNext(ctx context.Context, rule *entity.BillRule) (*entity.Bill, error) {
	if rule == nil || !rule.IsActive {
		return nil, nil
	}

	today := recurrence.DateOnly(g.clock.Now())

	// Never schedule a second instance while one is still current.
	scheduled, err := g.billRepo.ExistsScheduledOnOrAfter(ctx, rule.ID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to check scheduled instances: %w", err)
	}
	if scheduled {
		return nil, nil
	}

	latest, err := g.billRepo.FindLatestByRule(ctx, rule.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find latest bill: %w", err)
	}

	var dueDate = recurrence.DateOnly(rule.StartDate)
	if latest != nil {
		// A one-time rule never produces more than one instance.
		if !rule.IsRecurring() {
			return nil, nil
		}
		dueDate = recurrence.NextDueDate(latest.DueDate, rule.Frequency)
	}

	// Idempotence guard against duplicate calls racing past the checks above.
	existing, err := g.billRepo.FindByRuleAndDueDate(ctx, rule.ID, dueDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check duplicate due date: %w", err)
	}
	if existing != nil {
		return nil, nil
	}

	ruleID := rule.ID
	created := entity.NewBill(
		recurrence.InstanceName(dueDate, rule.Name, rule.Frequency),
		rule.Currency,
		&ruleID,
		dueDate,
		rule.Amount,
		rule.CategoryID,
	)

	if err := g.billRepo.Create(ctx, created); err != nil {
		// The unique index is the backstop for concurrent callers; losing
		// that race means the instance exists, which is not an error here.
		if errors.Is(err, domainerror.ErrBillAlreadyScheduled) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	return created, nil
}

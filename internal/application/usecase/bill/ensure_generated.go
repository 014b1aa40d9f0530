// Package bill contains the bill recurrence engine use cases.
package bill

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/billfold/backend/internal/application/adapter"
)

// EnsureGeneratedOutput reports what the ensure-generated sweep did.
type EnsureGeneratedOutput struct {
	Generated int
}

// EnsureGeneratedUseCase is the companion sweep: it asks the generator for
// every active rule, relying on the generator's own guards to make the
// call a no-op when an instance is already scheduled. It catches rules
// left without a pending instance after bulk edits or reactivation.
type EnsureGeneratedUseCase struct {
	ruleRepo  adapter.BillRuleRepository
	generator *Generator
	notifier  adapter.ChangeNotifier
}

// NewEnsureGeneratedUseCase creates a new EnsureGeneratedUseCase instance.
func NewEnsureGeneratedUseCase(
	ruleRepo adapter.BillRuleRepository,
	generator *Generator,
	notifier adapter.ChangeNotifier,
) *EnsureGeneratedUseCase {
	return &EnsureGeneratedUseCase{
		ruleRepo:  ruleRepo,
		generator: generator,
		notifier:  notifier,
	}
}

// Execute runs the sweep, skipping rules that fail individually.
func (uc *EnsureGeneratedUseCase) Execute(ctx context.Context) (*EnsureGeneratedOutput, error) {
	rules, err := uc.ruleRepo.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active rules: %w", err)
	}

	out := &EnsureGeneratedOutput{}
	for _, rule := range rules {
		created, err := uc.generator.GenerateNext(ctx, rule)
		if err != nil {
			slog.Error("Failed to ensure bill instance for rule",
				"rule_id", rule.ID, "rule_name", rule.Name, "error", err)
			continue
		}
		if created != nil {
			out.Generated++
			uc.notifier.NotifyChanged(ctx, adapter.AggregateBill, created.ID)
		}
	}

	slog.Info("Ensure-generated sweep complete",
		"active_rules", len(rules),
		"generated", out.Generated)

	return out, nil
}

// Package billrule contains bill rule template use cases.
package billrule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billfold/backend/internal/application/adapter"
	"github.com/billfold/backend/internal/application/usecase/bill"
	"github.com/billfold/backend/internal/domain/entity"
	domainerror "github.com/billfold/backend/internal/domain/error"
	"github.com/billfold/backend/internal/domain/recurrence"
)

// UpdateRuleInput represents the input for rule update. Nil fields are
// left unchanged.
type UpdateRuleInput struct {
	RuleID     uuid.UUID
	Name       *string
	Amount     *decimal.Decimal
	Currency   *string
	Frequency  *entity.BillFrequency
	CategoryID *uuid.UUID
	IsActive   *bool
	StartDate  *string // "2006-01-02"
	AutoNext   *bool
}

// UpdateRuleOutput represents the output of rule update. Rule is nil when
// the rule id did not resolve to a record; reconciliation callers treat
// that as a no-op.
type UpdateRuleOutput struct {
	Rule *entity.BillRule
}

// UpdateRuleUseCase handles partial rule updates and the activation
// transition.
type UpdateRuleUseCase struct {
	ruleRepo     adapter.BillRuleRepository
	categoryRepo adapter.CategoryRepository
	generator    *bill.Generator
	notifier     adapter.ChangeNotifier
}

// NewUpdateRuleUseCase creates a new UpdateRuleUseCase instance.
func NewUpdateRuleUseCase(
	ruleRepo adapter.BillRuleRepository,
	categoryRepo adapter.CategoryRepository,
	generator *bill.Generator,
	notifier adapter.ChangeNotifier,
) *UpdateRuleUseCase {
	return &UpdateRuleUseCase{
		ruleRepo:     ruleRepo,
		categoryRepo: categoryRepo,
		generator:    generator,
		notifier:     notifier,
	}
}

// Execute performs the rule update. Deactivation halts future generation
// without touching existing instances; reactivation immediately schedules
// the next instance.
func (uc *UpdateRuleUseCase) Execute(ctx context.Context, input UpdateRuleInput) (*UpdateRuleOutput, error) {
	rule, err := uc.ruleRepo.FindByID(ctx, input.RuleID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBillRuleNotFound) {
			return &UpdateRuleOutput{}, nil
		}
		return nil, fmt.Errorf("failed to find rule: %w", err)
	}

	if input.Name != nil {
		rule.Name = *input.Name
	}

	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, domainerror.NewBillRuleError(
				domainerror.ErrCodeInvalidRuleAmount,
				"amount must be greater than zero",
				domainerror.ErrInvalidRuleAmount,
			)
		}
		rule.Amount = *input.Amount
	}

	if input.Currency != nil {
		rule.Currency = *input.Currency
	}

	if input.Frequency != nil {
		if !recurrence.ValidFrequency(*input.Frequency) {
			return nil, domainerror.NewBillRuleError(
				domainerror.ErrCodeInvalidFrequency,
				"frequency must be weekly, monthly, quarterly, yearly or one_time",
				domainerror.ErrInvalidFrequency,
			)
		}
		rule.Frequency = *input.Frequency
	}

	if input.CategoryID != nil {
		category, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, domainerror.NewBillRuleError(
				domainerror.ErrCodeRuleCategoryNotFound,
				"category not found",
				domainerror.ErrRuleCategoryNotFound,
			)
		}
		if category.Type != entity.CategoryTypeExpense {
			return nil, domainerror.NewBillRuleError(
				domainerror.ErrCodeRuleCategoryNotExpense,
				"bill rules must reference an expense category",
				domainerror.ErrRuleCategoryNotExpense,
			)
		}
		rule.CategoryID = *input.CategoryID
	}

	if input.StartDate != nil {
		startDate, err := time.Parse("2006-01-02", *input.StartDate)
		if err != nil {
			return nil, domainerror.NewBillRuleError(
				domainerror.ErrCodeMissingRuleFields,
				"start date must be in YYYY-MM-DD format",
				err,
			)
		}
		rule.StartDate = recurrence.DateOnly(startDate)
	}

	if input.AutoNext != nil {
		rule.AutoNext = *input.AutoNext
	}

	wasActive := rule.IsActive
	if input.IsActive != nil {
		rule.IsActive = *input.IsActive
	}

	rule.UpdatedAt = time.Now().UTC()

	if err := uc.ruleRepo.Update(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to update rule: %w", err)
	}
	uc.notifier.NotifyChanged(ctx, adapter.AggregateBillRule, rule.ID)

	// Reactivating a rule schedules its next instance right away.
	if !wasActive && rule.IsActive {
		created, err := uc.generator.GenerateNext(ctx, rule)
		if err != nil {
			slog.Error("Failed to generate bill after rule reactivation",
				"rule_id", rule.ID, "error", err)
		} else if created != nil {
			uc.notifier.NotifyChanged(ctx, adapter.AggregateBill, created.ID)
		}
	}

	return &UpdateRuleOutput{Rule: rule}, nil
}

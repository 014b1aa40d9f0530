// Package billrule contains bill rule template use cases.
package billrule

import (
	"context"
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

// DefaultCurrency is used when a rule is created without a currency.
const DefaultCurrency = "USD"

// CreateRuleInput represents the input for rule creation.
type CreateRuleInput struct {
	Name       string
	Amount     decimal.Decimal
	Currency   string // Optional, defaults to DefaultCurrency
	Frequency  entity.BillFrequency
	CategoryID uuid.UUID
	IsActive   *bool  // Optional, defaults to true
	StartDate  string // "2006-01-02"
	AutoNext   *bool  // Optional, defaults to true
}

// CreateRuleOutput represents the output of rule creation.
// FirstBill is the instance generated for an active rule, nil otherwise.
type CreateRuleOutput struct {
	Rule      *entity.BillRule
	FirstBill *entity.Bill
}

// CreateRuleUseCase handles rule creation and first-instance generation.
type CreateRuleUseCase struct {
	ruleRepo     adapter.BillRuleRepository
	categoryRepo adapter.CategoryRepository
	generator    *bill.Generator
	notifier     adapter.ChangeNotifier
}

// NewCreateRuleUseCase creates a new CreateRuleUseCase instance.
func NewCreateRuleUseCase(
	ruleRepo adapter.BillRuleRepository,
	categoryRepo adapter.CategoryRepository,
	generator *bill.Generator,
	notifier adapter.ChangeNotifier,
) *CreateRuleUseCase {
	return &CreateRuleUseCase{
		ruleRepo:     ruleRepo,
		categoryRepo: categoryRepo,
		generator:    generator,
		notifier:     notifier,
	}
}

// Execute validates and persists the rule, then generates its first
// instance when active, so every active rule always has exactly one
// scheduled instance.
func (uc *CreateRuleUseCase) Execute(ctx context.Context, input CreateRuleInput) (*CreateRuleOutput, error) {
	if input.Name == "" || input.StartDate == "" {
		return nil, domainerror.NewBillRuleError(
			domainerror.ErrCodeMissingRuleFields,
			"name and start date are required",
			domainerror.ErrMissingRuleFields,
		)
	}

	if !input.Amount.IsPositive() {
		return nil, domainerror.NewBillRuleError(
			domainerror.ErrCodeInvalidRuleAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidRuleAmount,
		)
	}

	if !recurrence.ValidFrequency(input.Frequency) {
		return nil, domainerror.NewBillRuleError(
			domainerror.ErrCodeInvalidFrequency,
			"frequency must be weekly, monthly, quarterly, yearly or one_time",
			domainerror.ErrInvalidFrequency,
		)
	}

	startDate, err := time.Parse("2006-01-02", input.StartDate)
	if err != nil {
		return nil, domainerror.NewBillRuleError(
			domainerror.ErrCodeMissingRuleFields,
			"start date must be in YYYY-MM-DD format",
			err,
		)
	}

	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
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

	currency := input.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	autoNext := true
	if input.AutoNext != nil {
		autoNext = *input.AutoNext
	}

	rule := entity.NewBillRule(
		input.Name,
		input.Amount,
		currency,
		input.Frequency,
		input.CategoryID,
		isActive,
		recurrence.DateOnly(startDate),
		autoNext,
	)

	if err := uc.ruleRepo.Create(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to create rule: %w", err)
	}
	uc.notifier.NotifyChanged(ctx, adapter.AggregateBillRule, rule.ID)

	output := &CreateRuleOutput{Rule: rule}

	if rule.IsActive {
		first, err := uc.generator.GenerateNext(ctx, rule)
		if err != nil {
			// The rule itself committed; the ensure-generated sweep will
			// schedule the missing instance.
			slog.Error("Failed to generate first bill instance",
				"rule_id", rule.ID, "error", err)
			return output, nil
		}
		if first != nil {
			uc.notifier.NotifyChanged(ctx, adapter.AggregateBill, first.ID)
			output.FirstBill = first
		}
	}

	return output, nil
}

// Package billrule contains bill rule template use cases.
package billrule

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/billfold/backend/internal/application/adapter"
	"github.com/billfold/backend/internal/domain/entity"
	domainerror "github.com/billfold/backend/internal/domain/error"
)

// GetRuleInput represents the input for retrieving a single rule.
type GetRuleInput struct {
	RuleID uuid.UUID
}

// GetRuleOutput represents the output of retrieving a rule.
type GetRuleOutput struct {
	Rule *entity.BillRule
}

// GetRuleUseCase retrieves a single rule by id.
type GetRuleUseCase struct {
	ruleRepo adapter.BillRuleRepository
}

// NewGetRuleUseCase creates a new GetRuleUseCase instance.
func NewGetRuleUseCase(ruleRepo adapter.BillRuleRepository) *GetRuleUseCase {
	return &GetRuleUseCase{ruleRepo: ruleRepo}
}

// Execute retrieves the rule.
func (uc *GetRuleUseCase) Execute(ctx context.Context, input GetRuleInput) (*GetRuleOutput, error) {
	rule, err := uc.ruleRepo.FindByID(ctx, input.RuleID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBillRuleNotFound) {
			return nil, domainerror.NewBillRuleError(
				domainerror.ErrCodeBillRuleNotFound,
				"bill rule not found",
				domainerror.ErrBillRuleNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find rule: %w", err)
	}

	return &GetRuleOutput{Rule: rule}, nil
}

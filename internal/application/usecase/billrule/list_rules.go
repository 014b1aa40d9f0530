// Package billrule contains bill rule template use cases.
package billrule

import (
	"context"
	"fmt"

	"github.com/billfold/backend/internal/application/adapter"
	"github.com/billfold/backend/internal/domain/entity"
)

// ListRulesInput represents the input for listing rules.
type ListRulesInput struct {
	ActiveOnly bool
}

// ListRulesOutput represents the output of listing rules.
type ListRulesOutput struct {
	Rules []*entity.BillRule
}

// ListRulesUseCase lists bill rules.
type ListRulesUseCase struct {
	ruleRepo adapter.BillRuleRepository
}

// NewListRulesUseCase creates a new ListRulesUseCase instance.
func NewListRulesUseCase(ruleRepo adapter.BillRuleRepository) *ListRulesUseCase {
	return &ListRulesUseCase{ruleRepo: ruleRepo}
}

// Execute lists the rules.
func (uc *ListRulesUseCase) Execute(ctx context.Context, input ListRulesInput) (*ListRulesOutput, error) {
	var (
		rules []*entity.BillRule
		err   error
	)
	if input.ActiveOnly {
		rules, err = uc.ruleRepo.FindActive(ctx)
	} else {
		rules, err = uc.ruleRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}

	return &ListRulesOutput{Rules: rules}, nil
}

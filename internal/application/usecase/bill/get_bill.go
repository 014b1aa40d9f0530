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

// GetBillInput represents the input for retrieving a single bill.
type GetBillInput struct {
	BillID uuid.UUID
}

// GetBillOutput represents the output of retrieving a bill.
type GetBillOutput struct {
	Bill *entity.Bill
}

// GetBillUseCase retrieves a single bill by id.
type GetBillUseCase struct {
	billRepo adapter.BillRepository
}

// NewGetBillUseCase creates a new GetBillUseCase instance.
func NewGetBillUseCase(billRepo adapter.BillRepository) *GetBillUseCase {
	return &GetBillUseCase{billRepo: billRepo}
}

// Execute retrieves the bill.
func (uc *GetBillUseCase) Execute(ctx context.Context, input GetBillInput) (*GetBillOutput, error) {
	bill, err := uc.billRepo.FindByID(ctx, input.BillID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBillNotFound) {
			return nil, domainerror.NewBillError(
				domainerror.ErrCodeBillNotFound,
				"bill not found",
				domainerror.ErrBillNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find bill: %w", err)
	}

	return &GetBillOutput{Bill: bill}, nil
}

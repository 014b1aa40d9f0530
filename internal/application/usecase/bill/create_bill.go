// Package bill contains the bill recurrence engine use cases.
package bill

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billfold/backend/internal/application/adapter"
	"github.com/billfold/backend/internal/domain/entity"
	domainerror "github.com/billfold/backend/internal/domain/error"
	"github.com/billfold/backend/internal/domain/recurrence"
)

// CreateBillInput represents the input for creating a manual one-off bill
// not tied to any rule.
type CreateBillInput struct {
	Name       string
	Amount     decimal.Decimal
	Currency   string
	DueDate    string // "2006-01-02"
	CategoryID uuid.UUID
}

// CreateBillOutput represents the output of bill creation.
type CreateBillOutput struct {
	Bill *entity.Bill
}

// CreateBillUseCase handles creation of manual one-off bills.
type CreateBillUseCase struct {
	billRepo     adapter.BillRepository
	categoryRepo adapter.CategoryRepository
	notifier     adapter.ChangeNotifier
}

// NewCreateBillUseCase creates a new CreateBillUseCase instance.
func NewCreateBillUseCase(
	billRepo adapter.BillRepository,
	categoryRepo adapter.CategoryRepository,
	notifier adapter.ChangeNotifier,
) *CreateBillUseCase {
	return &CreateBillUseCase{
		billRepo:     billRepo,
		categoryRepo: categoryRepo,
		notifier:     notifier,
	}
}

// Execute performs the bill creation. Unlike the engine's own generation,
// a uniqueness collision here is a caller-visible error.
func (uc *CreateBillUseCase) Execute(ctx context.Context, input CreateBillInput) (*CreateBillOutput, error) {
	if input.Name == "" || input.DueDate == "" {
		return nil, domainerror.NewBillError(
			domainerror.ErrCodeMissingBillFields,
			"name and due date are required",
			domainerror.ErrMissingBillFields,
		)
	}

	if !input.Amount.IsPositive() {
		return nil, domainerror.NewBillError(
			domainerror.ErrCodeInvalidBillAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidBillAmount,
		)
	}

	dueDate, err := parseDate(input.DueDate)
	if err != nil {
		return nil, domainerror.NewBillError(
			domainerror.ErrCodeMissingBillFields,
			"due date must be in YYYY-MM-DD format",
			err,
		)
	}

	if _, err := uc.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
		return nil, domainerror.NewBillError(
			domainerror.ErrCodeBillCategoryNotFound,
			"category not found",
			domainerror.ErrBillCategoryNotFound,
		)
	}

	// One-off bills are unique on (name, due date).
	existing, err := uc.billRepo.FindByNameAndDueDate(ctx, input.Name, dueDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check bill uniqueness: %w", err)
	}
	if existing != nil {
		return nil, domainerror.NewBillError(
			domainerror.ErrCodeBillAlreadyScheduled,
			"bill already exists for this due date",
			domainerror.ErrBillAlreadyScheduled,
		)
	}

	bill := entity.NewBill(input.Name, input.Currency, nil, dueDate, input.Amount, input.CategoryID)
	if err := uc.billRepo.Create(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}
	uc.notifier.NotifyChanged(ctx, adapter.AggregateBill, bill.ID)

	return &CreateBillOutput{Bill: bill}, nil
}

// parseDate parses a YYYY-MM-DD string into a UTC date.
func parseDate(s string) (t time.Time, err error) {
	t, err = time.Parse("2006-01-02", s)
	if err != nil {
		return t, err
	}
	return recurrence.DateOnly(t), nil
}

// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/billfold/backend/internal/domain/entity"
)

// BillRuleRepository defines the interface for bill rule persistence operations.
type BillRuleRepository interface {
	// Create creates a new bill rule in the database.
	Create(ctx context.Context, rule *entity.BillRule) error

	// FindByID retrieves a bill rule by its ID.
	// Returns domainerror.ErrBillRuleNotFound when no rule exists.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BillRule, error)

	// FindAll retrieves all bill rules ordered by creation time.
	FindAll(ctx context.Context) ([]*entity.BillRule, error)

	// FindActive retrieves all active bill rules.
	FindActive(ctx context.Context) ([]*entity.BillRule, error)

	// Update updates an existing bill rule in the database.
	Update(ctx context.Context, rule *entity.BillRule) error
}

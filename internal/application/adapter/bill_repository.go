// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/billfold/backend/internal/domain/entity"
)

// BillRepository defines the interface for bill instance persistence operations.
type BillRepository interface {
	// Create inserts a new bill. The implementation enforces the per-rule
	// due-date uniqueness invariant and returns
	// domainerror.ErrBillAlreadyScheduled on a collision.
	Create(ctx context.Context, bill *entity.Bill) error

	// FindByID retrieves a bill by its ID.
	// Returns domainerror.ErrBillNotFound when no bill exists.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)

	// FindByRule retrieves all bills generated from a rule, ordered by due date.
	FindByRule(ctx context.Context, ruleID uuid.UUID) ([]*entity.Bill, error)

	// FindLatestByRule retrieves the bill with the greatest due date for a
	// rule, or nil when the rule has no instances yet.
	FindLatestByRule(ctx context.Context, ruleID uuid.UUID) (*entity.Bill, error)

	// FindByRuleAndDueDate retrieves the bill of a rule due on the given
	// date, or nil when none exists.
	FindByRuleAndDueDate(ctx context.Context, ruleID uuid.UUID, dueDate time.Time) (*entity.Bill, error)

	// FindByNameAndDueDate retrieves a rule-less bill by name and due date,
	// or nil when none exists. Used for one-off bill uniqueness.
	FindByNameAndDueDate(ctx context.Context, name string, dueDate time.Time) (*entity.Bill, error)

	// ExistsScheduledOnOrAfter reports whether the rule has an instance with
	// due date on or after the given date.
	ExistsScheduledOnOrAfter(ctx context.Context, ruleID uuid.UUID, date time.Time) (bool, error)

	// FindAll retrieves all bills ordered by due date.
	FindAll(ctx context.Context) ([]*entity.Bill, error)

	// FindOverdueCandidates retrieves all bills with status != paid and
	// due date strictly before the given date.
	FindOverdueCandidates(ctx context.Context, today time.Time) ([]*entity.Bill, error)

	// Update updates an existing bill in the database.
	Update(ctx context.Context, bill *entity.Bill) error
}

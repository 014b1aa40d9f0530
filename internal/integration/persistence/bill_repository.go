// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/billfold/backend/internal/application/adapter"
	"github.com/billfold/backend/internal/domain/entity"
	domainerror "github.com/billfold/backend/internal/domain/error"
	"github.com/billfold/backend/internal/integration/persistence/model"
)

// billRepository implements the adapter.BillRepository interface.
type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository instance.
func NewBillRepository(db *gorm.DB) adapter.BillRepository {
	return &billRepository{
		db: db,
	}
}

// Create inserts a new bill. The unique index on (bill_rule_id, due_date)
// enforces the no-duplicate-due-date invariant for concurrent callers;
// a violation maps to domainerror.ErrBillAlreadyScheduled.
func (r *billRepository) Create(ctx context.Context, bill *entity.Bill) error {
	billModel := model.BillFromEntity(bill)
	result := r.db.WithContext(ctx).Create(billModel)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.ErrBillAlreadyScheduled
		}
		return result.Error
	}
	return nil
}

// FindByID retrieves a bill by its ID.
func (r *billRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var billModel model.BillModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&billModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBillNotFound
		}
		return nil, result.Error
	}
	return billModel.ToEntity(), nil
}

// FindByRule retrieves all bills generated from a rule, ordered by due date.
func (r *billRepository) FindByRule(ctx context.Context, ruleID uuid.UUID) ([]*entity.Bill, error) {
	var billModels []model.BillModel
	result := r.db.WithContext(ctx).
		Where("bill_rule_id = ?", ruleID).
		Order("due_date ASC").
		Find(&billModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toEntities(billModels), nil
}

// FindLatestByRule retrieves the bill with the greatest due date for a rule.
func (r *billRepository) FindLatestByRule(ctx context.Context, ruleID uuid.UUID) (*entity.Bill, error) {
	var billModel model.BillModel
	result := r.db.WithContext(ctx).
		Where("bill_rule_id = ?", ruleID).
		Order("due_date DESC").
		First(&billModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return billModel.ToEntity(), nil
}

// FindByRuleAndDueDate retrieves the bill of a rule due on the given date.
func (r *billRepository) FindByRuleAndDueDate(ctx context.Context, ruleID uuid.UUID, dueDate time.Time) (*entity.Bill, error) {
	var billModel model.BillModel
	result := r.db.WithContext(ctx).
		Where("bill_rule_id = ? AND due_date = ?", ruleID, dueDate).
		First(&billModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return billModel.ToEntity(), nil
}

// FindByNameAndDueDate retrieves a rule-less bill by name and due date.
func (r *billRepository) FindByNameAndDueDate(ctx context.Context, name string, dueDate time.Time) (*entity.Bill, error) {
	var billModel model.BillModel
	result := r.db.WithContext(ctx).
		Where("bill_rule_id IS NULL AND name = ? AND due_date = ?", name, dueDate).
		First(&billModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return billModel.ToEntity(), nil
}

// ExistsScheduledOnOrAfter reports whether the rule has an instance with
// due date on or after the given date.
func (r *billRepository) ExistsScheduledOnOrAfter(ctx context.Context, ruleID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.BillModel{}).
		Where("bill_rule_id = ? AND due_date >= ?", ruleID, date).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// FindAll retrieves all bills ordered by due date.
func (r *billRepository) FindAll(ctx context.Context) ([]*entity.Bill, error) {
	var billModels []model.BillModel
	result := r.db.WithContext(ctx).
		Order("due_date ASC").
		Find(&billModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toEntities(billModels), nil
}

// FindOverdueCandidates retrieves all bills with status != paid and due
// date strictly before the given date.
func (r *billRepository) FindOverdueCandidates(ctx context.Context, today time.Time) ([]*entity.Bill, error) {
	var billModels []model.BillModel
	result := r.db.WithContext(ctx).
		Where("status <> ? AND due_date < ?", string(entity.BillStatusPaid), today).
		Order("due_date ASC").
		Find(&billModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toEntities(billModels), nil
}

// Update updates an existing bill in the database.
func (r *billRepository) Update(ctx context.Context, bill *entity.Bill) error {
	billModel := model.BillFromEntity(bill)
	result := r.db.WithContext(ctx).Save(billModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// toEntities converts a slice of bill models to domain entities.
func toEntities(billModels []model.BillModel) []*entity.Bill {
	bills := make([]*entity.Bill, len(billModels))
	for i, bm := range billModels {
		bills[i] = bm.ToEntity()
	}
	return bills
}

// isUniqueViolation detects unique constraint violations across the
// sqlite and postgres drivers.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/billfold/backend/internal/application/adapter"
	"github.com/billfold/backend/internal/domain/entity"
	domainerror "github.com/billfold/backend/internal/domain/error"
	"github.com/billfold/backend/internal/integration/persistence/model"
)

// billRuleRepository implements the adapter.BillRuleRepository interface.
type billRuleRepository struct {
	db *gorm.DB
}

// NewBillRuleRepository creates a new bill rule repository instance.
func NewBillRuleRepository(db *gorm.DB) adapter.BillRuleRepository {
	return &billRuleRepository{
		db: db,
	}
}

// Create creates a new bill rule in the database.
func (r *billRuleRepository) Create(ctx context.Context, rule *entity.BillRule) error {
	ruleModel := model.BillRuleFromEntity(rule)
	result := r.db.WithContext(ctx).Create(ruleModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a bill rule by its ID.
func (r *billRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BillRule, error) {
	var ruleModel model.BillRuleModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&ruleModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBillRuleNotFound
		}
		return nil, result.Error
	}
	return ruleModel.ToEntity(), nil
}

// FindAll retrieves all bill rules ordered by creation time.
func (r *billRuleRepository) FindAll(ctx context.Context) ([]*entity.BillRule, error) {
	var ruleModels []model.BillRuleModel
	result := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&ruleModels)
	if result.Error != nil {
		return nil, result.Error
	}

	rules := make([]*entity.BillRule, len(ruleModels))
	for i, rm := range ruleModels {
		rules[i] = rm.ToEntity()
	}
	return rules, nil
}

// FindActive retrieves all active bill rules.
func (r *billRuleRepository) FindActive(ctx context.Context) ([]*entity.BillRule, error) {
	var ruleModels []model.BillRuleModel
	result := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&ruleModels)
	if result.Error != nil {
		return nil, result.Error
	}

	rules := make([]*entity.BillRule, len(ruleModels))
	for i, rm := range ruleModels {
		rules[i] = rm.ToEntity()
	}
	return rules, nil
}

// Update updates an existing bill rule in the database.
func (r *billRuleRepository) Update(ctx context.Context, rule *entity.BillRule) error {
	ruleModel := model.BillRuleFromEntity(rule)
	result := r.db.WithContext(ctx).Save(ruleModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

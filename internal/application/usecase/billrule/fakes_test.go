// Package billrule contains bill rule template use cases.
package billrule

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/billfold/backend/internal/domain/entity"
	domainerror "github.com/billfold/backend/internal/domain/error"
	"github.com/billfold/backend/internal/domain/recurrence"
)

// fakeClock returns a fixed instant so "today" is under test control.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

// fakeRuleRepository is an in-memory BillRuleRepository.
type fakeRuleRepository struct {
	mu    sync.Mutex
	rules map[uuid.UUID]*entity.BillRule
}

func newFakeRuleRepository() *fakeRuleRepository {
	return &fakeRuleRepository{rules: make(map[uuid.UUID]*entity.BillRule)}
}

func (r *fakeRuleRepository) Create(_ context.Context, rule *entity.BillRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *rule
	r.rules[rule.ID] = &clone
	return nil
}

func (r *fakeRuleRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.BillRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rule, ok := r.rules[id]
	if !ok {
		return nil, domainerror.NewBillRuleError(
			domainerror.ErrCodeBillRuleNotFound,
			"bill rule not found",
			domainerror.ErrBillRuleNotFound,
		)
	}
	clone := *rule
	return &clone, nil
}

func (r *fakeRuleRepository) FindAll(_ context.Context) ([]*entity.BillRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.BillRule, 0, len(r.rules))
	for _, rule := range r.rules {
		clone := *rule
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeRuleRepository) FindActive(_ context.Context) ([]*entity.BillRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.BillRule
	for _, rule := range r.rules {
		if rule.IsActive {
			clone := *rule
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeRuleRepository) Update(_ context.Context, rule *entity.BillRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rules[rule.ID]; !ok {
		return domainerror.ErrBillRuleNotFound
	}
	clone := *rule
	r.rules[rule.ID] = &clone
	return nil
}

func (r *fakeRuleRepository) get(id uuid.UUID) *entity.BillRule {
	r.mu.Lock()
	defer r.mu.Unlock()
	rule, ok := r.rules[id]
	if !ok {
		return nil
	}
	clone := *rule
	return &clone
}

// fakeCategoryRepository is an in-memory CategoryRepository.
type fakeCategoryRepository struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*entity.Category
}

func newFakeCategoryRepository() *fakeCategoryRepository {
	return &fakeCategoryRepository{categories: make(map[uuid.UUID]*entity.Category)}
}

func (r *fakeCategoryRepository) Create(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *fakeCategoryRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	category, ok := r.categories[id]
	if !ok {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}
	clone := *category
	return &clone, nil
}

func (r *fakeCategoryRepository) FindAll(_ context.Context) ([]*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Category, 0, len(r.categories))
	for _, category := range r.categories {
		clone := *category
		out = append(out, &clone)
	}
	return out, nil
}

// fakeBillRepository implements just enough of BillRepository for the
// generator: per-rule storage with a due-date uniqueness check.
type fakeBillRepository struct {
	mu    sync.Mutex
	bills map[uuid.UUID]*entity.Bill
}

func newFakeBillRepository() *fakeBillRepository {
	return &fakeBillRepository{bills: make(map[uuid.UUID]*entity.Bill)}
}

func (r *fakeBillRepository) Create(_ context.Context, bill *entity.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.bills {
		if bill.BillRuleID != nil && existing.BillRuleID != nil &&
			*existing.BillRuleID == *bill.BillRuleID && existing.DueDate.Equal(bill.DueDate) {
			return domainerror.ErrBillAlreadyScheduled
		}
	}
	clone := *bill
	r.bills[bill.ID] = &clone
	return nil
}

func (r *fakeBillRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bill, ok := r.bills[id]
	if !ok {
		return nil, domainerror.ErrBillNotFound
	}
	clone := *bill
	return &clone, nil
}

func (r *fakeBillRepository) FindByRule(_ context.Context, ruleID uuid.UUID) ([]*entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Bill
	for _, bill := range r.bills {
		if bill.BillRuleID != nil && *bill.BillRuleID == ruleID {
			clone := *bill
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeBillRepository) FindLatestByRule(_ context.Context, ruleID uuid.UUID) (*entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *entity.Bill
	for _, bill := range r.bills {
		if bill.BillRuleID == nil || *bill.BillRuleID != ruleID {
			continue
		}
		if latest == nil || bill.DueDate.After(latest.DueDate) {
			latest = bill
		}
	}
	if latest == nil {
		return nil, nil
	}
	clone := *latest
	return &clone, nil
}

func (r *fakeBillRepository) FindByRuleAndDueDate(_ context.Context, ruleID uuid.UUID, dueDate time.Time) (*entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, bill := range r.bills {
		if bill.BillRuleID != nil && *bill.BillRuleID == ruleID && bill.DueDate.Equal(dueDate) {
			clone := *bill
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeBillRepository) FindByNameAndDueDate(_ context.Context, name string, dueDate time.Time) (*entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, bill := range r.bills {
		if bill.BillRuleID == nil && bill.Name == name && bill.DueDate.Equal(dueDate) {
			clone := *bill
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeBillRepository) ExistsScheduledOnOrAfter(_ context.Context, ruleID uuid.UUID, d time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, bill := range r.bills {
		if bill.BillRuleID != nil && *bill.BillRuleID == ruleID && !bill.DueDate.Before(d) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBillRepository) FindAll(_ context.Context) ([]*entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Bill, 0, len(r.bills))
	for _, bill := range r.bills {
		clone := *bill
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeBillRepository) FindOverdueCandidates(_ context.Context, today time.Time) ([]*entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Bill
	for _, bill := range r.bills {
		if bill.Status != entity.BillStatusPaid && bill.DueDate.Before(today) {
			clone := *bill
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeBillRepository) Update(_ context.Context, bill *entity.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bills[bill.ID]; !ok {
		return domainerror.ErrBillNotFound
	}
	clone := *bill
	r.bills[bill.ID] = &clone
	return nil
}

// countingNotifier counts change notifications per aggregate.
type countingNotifier struct {
	mu     sync.Mutex
	counts map[string]int
}

func newCountingNotifier() *countingNotifier {
	return &countingNotifier{counts: make(map[string]int)}
}

func (n *countingNotifier) NotifyChanged(_ context.Context, aggregate string, _ uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.counts[aggregate]++
}

// date builds a date-only UTC time.
func date(year int, month time.Month, day int) time.Time {
	return recurrence.DateOnly(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

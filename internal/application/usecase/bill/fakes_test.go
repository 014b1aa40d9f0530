// Package bill contains the bill recurrence engine use cases.
package bill

import (
	"context"
	"sort"
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

// advanceTo moves the clock to the given date at noon UTC.
func (c *fakeClock) advanceTo(year int, month time.Month, day int) {
	c.now = time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func newFakeClock(year int, month time.Month, day int) *fakeClock {
	c := &fakeClock{}
	c.advanceTo(year, month, day)
	return c
}

// notifiedEvent records one change notification.
type notifiedEvent struct {
	aggregate string
	id        uuid.UUID
}

// recordingNotifier captures change notifications for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []notifiedEvent
}

func (n *recordingNotifier) NotifyChanged(_ context.Context, aggregate string, id uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notifiedEvent{aggregate: aggregate, id: id})
}

func (n *recordingNotifier) count(aggregate string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	total := 0
	for _, e := range n.events {
		if e.aggregate == aggregate {
			total++
		}
	}
	return total
}

// fakeBillRepository is an in-memory BillRepository. Reads return copies so
// mutations only take effect through Update, matching a real store.
type fakeBillRepository struct {
	mu    sync.Mutex
	bills map[uuid.UUID]*entity.Bill
}

func newFakeBillRepository() *fakeBillRepository {
	return &fakeBillRepository{bills: make(map[uuid.UUID]*entity.Bill)}
}

func copyBill(b *entity.Bill) *entity.Bill {
	clone := *b
	return &clone
}

func (r *fakeBillRepository) Create(_ context.Context, bill *entity.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.bills {
		if bill.BillRuleID != nil && existing.BillRuleID != nil &&
			*existing.BillRuleID == *bill.BillRuleID && existing.DueDate.Equal(bill.DueDate) {
			return domainerror.NewBillError(
				domainerror.ErrCodeBillAlreadyScheduled,
				"bill already exists for this due date",
				domainerror.ErrBillAlreadyScheduled,
			)
		}
	}
	r.bills[bill.ID] = copyBill(bill)
	return nil
}

func (r *fakeBillRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bill, ok := r.bills[id]
	if !ok {
		return nil, domainerror.NewBillError(
			domainerror.ErrCodeBillNotFound,
			"bill not found",
			domainerror.ErrBillNotFound,
		)
	}
	return copyBill(bill), nil
}

func (r *fakeBillRepository) FindByRule(_ context.Context, ruleID uuid.UUID) ([]*entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Bill
	for _, bill := range r.bills {
		if bill.BillRuleID != nil && *bill.BillRuleID == ruleID {
			out = append(out, copyBill(bill))
		}
	}
	sortBillsByDueDate(out)
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
	return copyBill(latest), nil
}

func (r *fakeBillRepository) FindByRuleAndDueDate(_ context.Context, ruleID uuid.UUID, dueDate time.Time) (*entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, bill := range r.bills {
		if bill.BillRuleID != nil && *bill.BillRuleID == ruleID && bill.DueDate.Equal(dueDate) {
			return copyBill(bill), nil
		}
	}
	return nil, nil
}

func (r *fakeBillRepository) FindByNameAndDueDate(_ context.Context, name string, dueDate time.Time) (*entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, bill := range r.bills {
		if bill.BillRuleID == nil && bill.Name == name && bill.DueDate.Equal(dueDate) {
			return copyBill(bill), nil
		}
	}
	return nil, nil
}

func (r *fakeBillRepository) ExistsScheduledOnOrAfter(_ context.Context, ruleID uuid.UUID, date time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, bill := range r.bills {
		if bill.BillRuleID != nil && *bill.BillRuleID == ruleID && !bill.DueDate.Before(date) {
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
		out = append(out, copyBill(bill))
	}
	sortBillsByDueDate(out)
	return out, nil
}

func (r *fakeBillRepository) FindOverdueCandidates(_ context.Context, today time.Time) ([]*entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Bill
	for _, bill := range r.bills {
		if bill.Status != entity.BillStatusPaid && bill.DueDate.Before(today) {
			out = append(out, copyBill(bill))
		}
	}
	sortBillsByDueDate(out)
	return out, nil
}

func (r *fakeBillRepository) Update(_ context.Context, bill *entity.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bills[bill.ID]; !ok {
		return domainerror.ErrBillNotFound
	}
	r.bills[bill.ID] = copyBill(bill)
	return nil
}

// get returns the stored bill for assertions.
func (r *fakeBillRepository) get(id uuid.UUID) *entity.Bill {
	r.mu.Lock()
	defer r.mu.Unlock()
	bill, ok := r.bills[id]
	if !ok {
		return nil
	}
	return copyBill(bill)
}

// byRule returns the stored bills of a rule ordered by due date.
func (r *fakeBillRepository) byRule(ruleID uuid.UUID) []*entity.Bill {
	out, _ := r.FindByRule(context.Background(), ruleID)
	return out
}

func sortBillsByDueDate(bills []*entity.Bill) {
	sort.Slice(bills, func(i, j int) bool {
		return bills[i].DueDate.Before(bills[j].DueDate)
	})
}

// fakeBillRuleRepository is an in-memory BillRuleRepository.
type fakeBillRuleRepository struct {
	mu    sync.Mutex
	rules map[uuid.UUID]*entity.BillRule
}

func newFakeBillRuleRepository() *fakeBillRuleRepository {
	return &fakeBillRuleRepository{rules: make(map[uuid.UUID]*entity.BillRule)}
}

func copyRule(r *entity.BillRule) *entity.BillRule {
	clone := *r
	return &clone
}

func (r *fakeBillRuleRepository) Create(_ context.Context, rule *entity.BillRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[rule.ID] = copyRule(rule)
	return nil
}

func (r *fakeBillRuleRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.BillRule, error) {
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
	return copyRule(rule), nil
}

func (r *fakeBillRuleRepository) FindAll(_ context.Context) ([]*entity.BillRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.BillRule, 0, len(r.rules))
	for _, rule := range r.rules {
		out = append(out, copyRule(rule))
	}
	return out, nil
}

func (r *fakeBillRuleRepository) FindActive(_ context.Context) ([]*entity.BillRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.BillRule
	for _, rule := range r.rules {
		if rule.IsActive {
			out = append(out, copyRule(rule))
		}
	}
	return out, nil
}

func (r *fakeBillRuleRepository) Update(_ context.Context, rule *entity.BillRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rules[rule.ID]; !ok {
		return domainerror.ErrBillRuleNotFound
	}
	r.rules[rule.ID] = copyRule(rule)
	return nil
}

// fakeTransactionRepository records created payment transactions.
type fakeTransactionRepository struct {
	mu      sync.Mutex
	created []*entity.Transaction
}

func newFakeTransactionRepository() *fakeTransactionRepository {
	return &fakeTransactionRepository{}
}

func (r *fakeTransactionRepository) Create(_ context.Context, transaction *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *transaction
	r.created = append(r.created, &clone)
	return nil
}

func (r *fakeTransactionRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.created)
}

// date builds a date-only UTC time.
func date(year int, month time.Month, day int) time.Time {
	return recurrence.DateOnly(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

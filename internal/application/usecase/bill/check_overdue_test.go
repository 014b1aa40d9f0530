// Package bill contains the bill recurrence engine use cases.
package bill

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billfold/backend/internal/domain/entity"
)

// sweepFixture wires the sweeps and the payment path against in-memory
// fakes so full lifecycle scenarios can run without a database.
type sweepFixture struct {
	*paymentFixture

	checkOverdue    *CheckOverdueUseCase
	ensureGenerated *EnsureGeneratedUseCase
}

func newSweepFixture(year int, month time.Month, day int) *sweepFixture {
	pf := newPaymentFixture(year, month, day)
	generator := NewGenerator(pf.billRepo, pf.clock)
	return &sweepFixture{
		paymentFixture:  pf,
		checkOverdue:    NewCheckOverdueUseCase(pf.billRepo, pf.ruleRepo, generator, pf.notifier, pf.clock),
		ensureGenerated: NewEnsureGeneratedUseCase(pf.ruleRepo, generator, pf.notifier),
	}
}

func TestCheckOverdueUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("flags unpaid past-due bills overdue", func(t *testing.T) {
		f := newSweepFixture(2025, time.October, 1)
		_, bill := f.seedRuleWithBill(t, date(2025, time.September, 15))

		output, err := f.checkOverdue.Execute(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.MarkedOverdue != 1 {
			t.Errorf("expected 1 bill marked overdue, got %d", output.MarkedOverdue)
		}

		stored := f.billRepo.get(bill.ID)
		if stored.Status != entity.BillStatusOverdue {
			t.Errorf("expected overdue status, got %s", stored.Status)
		}
	})

	t.Run("a bill due today is not overdue", func(t *testing.T) {
		f := newSweepFixture(2025, time.September, 15)
		_, bill := f.seedRuleWithBill(t, date(2025, time.September, 15))

		output, err := f.checkOverdue.Execute(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.MarkedOverdue != 0 {
			t.Errorf("expected no bills marked overdue, got %d", output.MarkedOverdue)
		}

		stored := f.billRepo.get(bill.ID)
		if stored.Status != entity.BillStatusPending {
			t.Errorf("expected pending status, got %s", stored.Status)
		}
	})

	t.Run("paid bills are never flagged", func(t *testing.T) {
		f := newSweepFixture(2025, time.October, 1)
		_, bill := f.seedRuleWithBill(t, date(2025, time.September, 15))

		if _, err := f.markAsPaid.Execute(ctx, MarkAsPaidInput{BillID: bill.ID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := f.checkOverdue.Execute(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		stored := f.billRepo.get(bill.ID)
		if stored.Status != entity.BillStatusPaid {
			t.Errorf("expected the paid bill untouched, got %s", stored.Status)
		}
	})

	t.Run("an expired bill schedules the next instance of its rule", func(t *testing.T) {
		f := newSweepFixture(2025, time.October, 1)
		rule, _ := f.seedRuleWithBill(t, date(2025, time.September, 15))

		output, err := f.checkOverdue.Execute(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Generated != 1 {
			t.Errorf("expected 1 generated bill, got %d", output.Generated)
		}

		bills := f.billRepo.byRule(rule.ID)
		if len(bills) != 2 {
			t.Fatalf("expected 2 bills, got %d", len(bills))
		}
		if !bills[1].DueDate.Equal(date(2025, time.October, 15)) {
			t.Errorf("expected next due date 2025-10-15, got %s", bills[1].DueDate.Format("2006-01-02"))
		}
	})

	t.Run("re-running the sweep changes nothing", func(t *testing.T) {
		f := newSweepFixture(2025, time.October, 1)
		rule, _ := f.seedRuleWithBill(t, date(2025, time.September, 15))

		if _, err := f.checkOverdue.Execute(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output, err := f.checkOverdue.Execute(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.MarkedOverdue != 0 {
			t.Errorf("expected no newly flagged bills, got %d", output.MarkedOverdue)
		}
		if output.Generated != 0 {
			t.Errorf("expected no newly generated bills, got %d", output.Generated)
		}
		if got := len(f.billRepo.byRule(rule.ID)); got != 2 {
			t.Errorf("expected 2 bills, got %d", got)
		}
	})

	t.Run("one-off bills expire without generating anything", func(t *testing.T) {
		f := newSweepFixture(2025, time.October, 1)
		oneOff := entity.NewBill("Dentist", "USD", nil, date(2025, time.September, 20), decimal.NewFromInt(90), uuid.New())
		if err := f.billRepo.Create(ctx, oneOff); err != nil {
			t.Fatalf("seed failed: %v", err)
		}

		output, err := f.checkOverdue.Execute(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.MarkedOverdue != 1 {
			t.Errorf("expected 1 bill marked overdue, got %d", output.MarkedOverdue)
		}
		if output.Generated != 0 {
			t.Errorf("expected no generated bills, got %d", output.Generated)
		}
	})

	t.Run("full lifecycle across three months", func(t *testing.T) {
		f := newSweepFixture(2025, time.January, 1)
		rule, first := f.seedRuleWithBill(t, date(2025, time.January, 1))

		// January is paid on time, which schedules February.
		if _, err := f.markAsPaid.Execute(ctx, MarkAsPaidInput{BillID: first.ID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		bills := f.billRepo.byRule(rule.ID)
		if len(bills) != 2 || !bills[1].DueDate.Equal(date(2025, time.February, 1)) {
			t.Fatalf("expected the February instance after paying January")
		}

		// February is forgotten. The sweep in mid-March flags it and
		// schedules March.
		f.clock.advanceTo(2025, time.March, 15)
		output, err := f.checkOverdue.Execute(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.MarkedOverdue != 1 {
			t.Errorf("expected 1 bill marked overdue, got %d", output.MarkedOverdue)
		}
		if output.Generated != 1 {
			t.Errorf("expected 1 generated bill, got %d", output.Generated)
		}

		bills = f.billRepo.byRule(rule.ID)
		if len(bills) != 3 {
			t.Fatalf("expected 3 bills, got %d", len(bills))
		}
		if bills[1].Status != entity.BillStatusOverdue {
			t.Errorf("expected the February bill overdue, got %s", bills[1].Status)
		}
		if !bills[2].DueDate.Equal(date(2025, time.March, 1)) {
			t.Errorf("expected the March instance, got due date %s", bills[2].DueDate.Format("2006-01-02"))
		}

		// Paying February late settles it. March is itself already past
		// due, so the follow-up generation schedules April.
		if _, err := f.recordPayment.Execute(ctx, RecordPaymentInput{
			BillID: bills[1].ID,
			Amount: bills[1].Amount,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		bills = f.billRepo.byRule(rule.ID)
		if bills[1].Status != entity.BillStatusPaid {
			t.Errorf("expected the February bill paid, got %s", bills[1].Status)
		}
		if len(bills) != 4 {
			t.Fatalf("expected 4 bills, got %d", len(bills))
		}
		if !bills[3].DueDate.Equal(date(2025, time.April, 1)) {
			t.Errorf("expected the April instance, got due date %s", bills[3].DueDate.Format("2006-01-02"))
		}
	})
}

func TestEnsureGeneratedUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("schedules the missing instance of an active rule", func(t *testing.T) {
		f := newSweepFixture(2025, time.September, 1)
		rule := newMonthlyRule("Rent", 1200, date(2025, time.September, 15))
		if err := f.ruleRepo.Create(ctx, rule); err != nil {
			t.Fatalf("seed failed: %v", err)
		}

		output, err := f.ensureGenerated.Execute(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Generated != 1 {
			t.Errorf("expected 1 generated bill, got %d", output.Generated)
		}
		if got := len(f.billRepo.byRule(rule.ID)); got != 1 {
			t.Errorf("expected 1 bill, got %d", got)
		}
	})

	t.Run("skips rules that already have a scheduled instance", func(t *testing.T) {
		f := newSweepFixture(2025, time.September, 1)
		rule := newMonthlyRule("Rent", 1200, date(2025, time.September, 15))
		if err := f.ruleRepo.Create(ctx, rule); err != nil {
			t.Fatalf("seed failed: %v", err)
		}

		if _, err := f.ensureGenerated.Execute(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		output, err := f.ensureGenerated.Execute(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Generated != 0 {
			t.Errorf("expected nothing generated on the second run, got %d", output.Generated)
		}
	})

	t.Run("ignores inactive rules", func(t *testing.T) {
		f := newSweepFixture(2025, time.September, 1)
		rule := newMonthlyRule("Rent", 1200, date(2025, time.September, 15))
		rule.IsActive = false
		if err := f.ruleRepo.Create(ctx, rule); err != nil {
			t.Fatalf("seed failed: %v", err)
		}

		output, err := f.ensureGenerated.Execute(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Generated != 0 {
			t.Errorf("expected nothing generated, got %d", output.Generated)
		}
	})
}

package recurrence

import (
	"testing"
	"time"

	"github.com/billfold/backend/internal/domain/entity"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextDueDate(t *testing.T) {
	tests := []struct {
		name      string
		current   time.Time
		frequency entity.BillFrequency
		want      time.Time
	}{
		{
			name:      "weekly adds seven days",
			current:   date(2025, time.September, 1),
			frequency: entity.FrequencyWeekly,
			want:      date(2025, time.September, 8),
		},
		{
			name:      "weekly crosses month boundary",
			current:   date(2025, time.January, 28),
			frequency: entity.FrequencyWeekly,
			want:      date(2025, time.February, 4),
		},
		{
			name:      "monthly plain advance",
			current:   date(2025, time.March, 15),
			frequency: entity.FrequencyMonthly,
			want:      date(2025, time.April, 15),
		},
		{
			name:      "monthly clamps jan 31 to feb 28",
			current:   date(2025, time.January, 31),
			frequency: entity.FrequencyMonthly,
			want:      date(2025, time.February, 28),
		},
		{
			name:      "monthly clamps jan 31 to feb 29 in leap year",
			current:   date(2024, time.January, 31),
			frequency: entity.FrequencyMonthly,
			want:      date(2024, time.February, 29),
		},
		{
			name:      "monthly clamps may 31 to jun 30",
			current:   date(2025, time.May, 31),
			frequency: entity.FrequencyMonthly,
			want:      date(2025, time.June, 30),
		},
		{
			name:      "monthly crosses year boundary",
			current:   date(2025, time.December, 10),
			frequency: entity.FrequencyMonthly,
			want:      date(2026, time.January, 10),
		},
		{
			name:      "quarterly adds three months",
			current:   date(2025, time.January, 15),
			frequency: entity.FrequencyQuarterly,
			want:      date(2025, time.April, 15),
		},
		{
			name:      "quarterly clamps aug 31 to nov 30",
			current:   date(2025, time.August, 31),
			frequency: entity.FrequencyQuarterly,
			want:      date(2025, time.November, 30),
		},
		{
			name:      "yearly advances one year",
			current:   date(2025, time.June, 1),
			frequency: entity.FrequencyYearly,
			want:      date(2026, time.June, 1),
		},
		{
			name:      "yearly clamps feb 29 to feb 28",
			current:   date(2024, time.February, 29),
			frequency: entity.FrequencyYearly,
			want:      date(2025, time.February, 28),
		},
		{
			name:      "one-time returns input unchanged",
			current:   date(2025, time.July, 4),
			frequency: entity.FrequencyOneTime,
			want:      date(2025, time.July, 4),
		},
		{
			name:      "unknown frequency returns input unchanged",
			current:   date(2025, time.July, 4),
			frequency: entity.BillFrequency("fortnightly"),
			want:      date(2025, time.July, 4),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDueDate(tt.current, tt.frequency)
			if !got.Equal(tt.want) {
				t.Errorf("NextDueDate(%v, %s) = %v, want %v",
					tt.current.Format("2006-01-02"), tt.frequency,
					got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
		})
	}
}

func TestNextDueDateStripsTimeComponent(t *testing.T) {
	current := time.Date(2025, time.March, 15, 17, 30, 12, 0, time.UTC)
	got := NextDueDate(current, entity.FrequencyMonthly)
	want := date(2025, time.April, 15)
	if !got.Equal(want) {
		t.Errorf("NextDueDate with time component = %v, want %v", got, want)
	}
}

func TestInstanceName(t *testing.T) {
	tests := []struct {
		name      string
		dueDate   time.Time
		ruleName  string
		frequency entity.BillFrequency
		want      string
	}{
		{
			name:      "monthly",
			dueDate:   date(2025, time.September, 1),
			ruleName:  "Rent",
			frequency: entity.FrequencyMonthly,
			want:      "Rent - Sep 2025",
		},
		{
			name:      "yearly",
			dueDate:   date(2025, time.June, 1),
			ruleName:  "Insurance",
			frequency: entity.FrequencyYearly,
			want:      "Insurance - 2025",
		},
		{
			name:      "weekly",
			dueDate:   date(2025, time.September, 1),
			ruleName:  "Cleaning",
			frequency: entity.FrequencyWeekly,
			want:      "Cleaning - Monday, 01 Sep",
		},
		{
			name:      "quarterly first quarter",
			dueDate:   date(2025, time.February, 10),
			ruleName:  "Taxes",
			frequency: entity.FrequencyQuarterly,
			want:      "Taxes - Q1 2025",
		},
		{
			name:      "quarterly fourth quarter",
			dueDate:   date(2025, time.December, 31),
			ruleName:  "Taxes",
			frequency: entity.FrequencyQuarterly,
			want:      "Taxes - Q4 2025",
		},
		{
			name:      "one-time keeps rule name",
			dueDate:   date(2025, time.May, 5),
			ruleName:  "Dentist",
			frequency: entity.FrequencyOneTime,
			want:      "Dentist",
		},
		{
			name:      "unrecognized frequency keeps rule name",
			dueDate:   date(2025, time.May, 5),
			ruleName:  "Dentist",
			frequency: entity.BillFrequency("daily"),
			want:      "Dentist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InstanceName(tt.dueDate, tt.ruleName, tt.frequency)
			if got != tt.want {
				t.Errorf("InstanceName() = %q, want %q", got, tt.want)
			}

			// The name is a pure function of its inputs; a second call must
			// reproduce the exact same label.
			if again := InstanceName(tt.dueDate, tt.ruleName, tt.frequency); again != got {
				t.Errorf("InstanceName() not deterministic: %q then %q", got, again)
			}
		})
	}
}

func TestValidFrequency(t *testing.T) {
	valid := []entity.BillFrequency{
		entity.FrequencyWeekly,
		entity.FrequencyMonthly,
		entity.FrequencyQuarterly,
		entity.FrequencyYearly,
		entity.FrequencyOneTime,
	}
	for _, f := range valid {
		if !ValidFrequency(f) {
			t.Errorf("ValidFrequency(%s) = false, want true", f)
		}
	}

	if ValidFrequency(entity.BillFrequency("daily")) {
		t.Error("ValidFrequency(daily) = true, want false")
	}
	if ValidFrequency(entity.BillFrequency("")) {
		t.Error("ValidFrequency(empty) = true, want false")
	}
}

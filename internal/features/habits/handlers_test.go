package habits

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"serotonyl.ru/habit-tracker/internal/common"
	"serotonyl.ru/habit-tracker/internal/features/streak"
)

func TestParseNewHabitArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    NewHabit
		wantErr bool
	}{
		{
			name: "name only",
			args: []string{"daily", "Зарядка"},
			want: NewHabit{Cadence: "daily", Name: "Зарядка"},
		},
		{
			name: "name with description",
			args: []string{"weekly", "Work", "Out", "|", "Functional", "Fitness"},
			want: NewHabit{Cadence: "weekly", Name: "Work Out", Description: "Functional Fitness"},
		},
		{
			name: "russian cadence",
			args: []string{"ежемесячно", "Навестить", "родных"},
			want: NewHabit{Cadence: "monthly", Name: "Навестить родных"},
		},
		{name: "missing name", args: []string{"daily"}, wantErr: true},
		{name: "only description", args: []string{"daily", "|", "описание"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseNewHabitArgs(tt.args)
			if tt.wantErr {
				if !errors.Is(err, common.ErrInvalidHabit) {
					t.Fatalf("expected ErrInvalidHabit, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseHabitID(t *testing.T) {
	for _, in := range []string{"5", "#5"} {
		id, err := parseHabitID([]string{in})
		if err != nil || id != 5 {
			t.Errorf("parseHabitID(%q) = %d, %v", in, id, err)
		}
	}
	for _, in := range [][]string{nil, {"abc"}, {"0"}, {"-3"}} {
		if _, err := parseHabitID(in); err == nil {
			t.Errorf("parseHabitID(%v) should fail", in)
		}
	}
}

func TestUserErrorText(t *testing.T) {
	wrapped := fmt.Errorf("привычка id=9: %w", common.ErrHabitNotFound)
	if got := userErrorText(wrapped); got != "❌ "+common.ErrHabitNotFound.Error() {
		t.Errorf("not found text = %q", got)
	}

	cadence := fmt.Errorf("%w: %w", common.ErrInvalidHabit, &streak.UnsupportedCadenceError{Value: "yearly"})
	if got := userErrorText(cadence); !strings.Contains(got, "yearly") {
		t.Errorf("cadence text = %q", got)
	}

	if got := userErrorText(errors.New("connection reset")); got != "" {
		t.Errorf("internal error leaked to user: %q", got)
	}
}

func TestFormatCheckoff(t *testing.T) {
	h := &Habit{ID: 1, Name: "Study", Cadence: "daily"}

	got := FormatCheckoff(&Report{Habit: h, Current: streak.Result{Count: 26, Status: streak.StatusCompleted}, Longest: 26})
	if !strings.Contains(got, "26 дней") {
		t.Errorf("completed text = %q", got)
	}

	got = FormatCheckoff(&Report{Habit: h, Current: streak.Result{Count: 1, Status: streak.StatusBroken}, Longest: 9})
	if !strings.Contains(got, "9 дней") {
		t.Errorf("broken text = %q", got)
	}
}

func TestFormatLongestWithoutCheckoffs(t *testing.T) {
	got := FormatLongest(streak.AggregateResult{HabitIDs: []int64{}}, nil)
	if !strings.Contains(got, "пока нет") {
		t.Errorf("got %q", got)
	}
}

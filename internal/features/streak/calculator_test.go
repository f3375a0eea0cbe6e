package streak

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

// Эталонный набор: пять привычек, декабрь 2021 — июль 2022.
var (
	studyCheckoffs = []string{
		"2021-12-02 14:56:34", "2021-12-03 15:56:34", "2021-12-04 15:56:34", "2021-12-07 15:56:34",
		"2021-12-08 16:56:34", "2021-12-08 23:56:34", "2021-12-09 14:56:34", "2021-12-10 14:56:34",
		"2021-12-11 18:56:34", "2021-12-12 20:56:34", "2021-12-13 23:56:34", "2021-12-14 00:56:34",
		"2021-12-14 16:56:34", "2021-12-15 16:56:34", "2021-12-16 14:56:34", "2021-12-17 10:40:00",
		"2021-12-18 10:40:00", "2021-12-19 16:55:00", "2021-12-20 22:55:00", "2021-12-21 00:01:00",
		"2021-12-21 13:01:00", "2021-12-22 13:01:00", "2021-12-23 15:01:00", "2021-12-24 14:01:00",
		"2021-12-25 14:01:00", "2021-12-26 12:05:00", "2021-12-27 10:05:00", "2021-12-28 00:05:00",
		"2021-12-28 06:42:17", "2021-12-29 07:42:17", "2021-12-30 05:00:17", "2021-12-30 13:00:17",
		"2021-12-30 13:00:45", "2021-12-31 12:00:17", "2022-01-01 13:00:17",
	}
	sleepCheckoffs = []string{
		"2021-12-03 13:00:45", "2021-12-04 13:00:45", "2021-12-05 13:00:45", "2021-12-08 10:00:45",
		"2021-12-12 09:00:45", "2021-12-16 11:05:45", "2021-12-17 12:05:45", "2021-12-18 12:05:45",
		"2021-12-19 10:05:45", "2021-12-20 08:05:45", "2021-12-21 07:05:45", "2021-12-22 07:05:45",
		"2021-12-23 05:05:45", "2021-12-24 05:05:45", "2021-12-30 07:05:45", "2021-12-31 12:05:45",
		"2022-01-01 05:05:45", "2022-01-02 07:05:45",
	}
	coffeeCheckoffs = []string{
		"2021-11-30 06:11:09", "2021-12-08 07:11:09", "2021-12-12 07:11:09", "2021-12-15 07:11:09",
		"2021-12-16 07:11:09", "2021-12-17 08:11:09", "2021-12-18 08:11:09", "2021-12-22 08:11:09",
		"2021-12-28 08:11:09", "2022-01-05 08:11:09", "2022-01-13 08:11:09", "2022-01-13 09:00:00",
	}
	workoutCheckoffs = []string{
		"2021-11-29 08:11:09", "2021-12-02 08:11:09", "2021-12-05 08:11:09", "2021-12-23 08:11:09",
		"2022-01-06 08:11:09", "2022-01-13 08:11:09", "2022-01-19 11:21:45", "2022-01-28 11:21:45",
		"2022-02-02 11:21:45", "2022-02-16 11:21:45", "2022-02-22 11:21:45",
	}
	familyCheckoffs = []string{
		"2021-11-30 10:11:09", "2021-12-07 03:11:09", "2021-12-23 03:11:09", "2022-01-22 11:21:45",
		"2022-02-04 03:11:09", "2022-04-10 11:21:45", "2022-05-28 11:21:45", "2022-05-30 11:21:45",
		"2022-07-01 11:21:45",
	}
)

func referenceSnapshots() []Snapshot {
	return []Snapshot{
		{HabitID: 1, Cadence: "daily", Checkoffs: studyCheckoffs},
		{HabitID: 2, Cadence: "daily", Checkoffs: sleepCheckoffs},
		{HabitID: 3, Cadence: "weekly", Checkoffs: coffeeCheckoffs},
		{HabitID: 4, Cadence: "weekly", Checkoffs: workoutCheckoffs},
		{HabitID: 5, Cadence: "monthly", Checkoffs: familyCheckoffs},
	}
}

func TestCalculateReferenceScenarios(t *testing.T) {
	calc := NewCalculator(DefaultOptions())

	tests := []struct {
		name        string
		cadence     string
		checkoffs   []string
		wantCurrent Result
		wantMax     int
	}{
		{"daily with repeats", "daily", studyCheckoffs, Result{26, StatusCompleted}, 26},
		{"daily with gaps", "daily", sleepCheckoffs, Result{4, StatusCompleted}, 9},
		{"weekly with repeats", "weekly", coffeeCheckoffs, Result{7, StatusAlreadyLogged}, 7},
		{"weekly with gaps", "weekly", workoutCheckoffs, Result{2, StatusCompleted}, 5},
		{"monthly", "monthly", familyCheckoffs, Result{1, StatusBroken}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, err := calc.Calculate(tt.cadence, tt.checkoffs, Current)
			if err != nil {
				t.Fatalf("Calculate(Current) returned error: %v", err)
			}
			if current != tt.wantCurrent {
				t.Errorf("current = %+v, want %+v", current, tt.wantCurrent)
			}

			best, err := calc.Calculate(tt.cadence, tt.checkoffs, Maximum)
			if err != nil {
				t.Fatalf("Calculate(Maximum) returned error: %v", err)
			}
			if best.Count != tt.wantMax {
				t.Errorf("max = %d, want %d", best.Count, tt.wantMax)
			}
			// статус в режиме Maximum — это статус последней отметки
			if best.Status != current.Status {
				t.Errorf("max status = %v, want current status %v", best.Status, current.Status)
			}
			if best.Count < current.Count {
				t.Errorf("max %d < current %d", best.Count, current.Count)
			}
		})
	}
}

func TestCalculateNoCheckoffs(t *testing.T) {
	calc := NewCalculator(DefaultOptions())

	for _, mode := range []Mode{Current, Maximum} {
		got, err := calc.Calculate("weekly", nil, mode)
		if err != nil {
			t.Fatalf("Calculate(%v) returned error: %v", mode, err)
		}
		if got.Count != 0 || got.Status != StatusNoData {
			t.Errorf("Calculate(%v) = %+v, want {0 no_data}", mode, got)
		}
		if got.Status.Code() != -1 {
			t.Errorf("NoData code = %d, want -1", got.Status.Code())
		}
	}
}

func TestCalculateFirstCheckoffIsNeverBroken(t *testing.T) {
	calc := NewCalculator(DefaultOptions())

	for _, cadence := range []string{"daily", "weekly", "monthly"} {
		got, err := calc.Calculate(cadence, []string{"2022-03-15 12:00:00"}, Current)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", cadence, err)
		}
		if got != (Result{1, StatusCompleted}) {
			t.Errorf("%s: got %+v, want {1 completed}", cadence, got)
		}
	}
}

func TestCalculateBoundaryCrossingIncrementsByOne(t *testing.T) {
	calc := NewCalculator(DefaultOptions())

	tests := []struct {
		cadence string
		first   string
		second  string
	}{
		{"daily", "2022-03-15 12:00:00", "2022-03-16 12:00:00"},
		{"weekly", "2022-03-15 12:00:00", "2022-03-22 12:00:00"},
		{"monthly", "2022-03-15 12:00:00", "2022-04-15 12:00:00"},
	}

	for _, tt := range tests {
		before, err := calc.Calculate(tt.cadence, []string{tt.first}, Current)
		if err != nil {
			t.Fatalf("%s: %v", tt.cadence, err)
		}
		after, err := calc.Calculate(tt.cadence, []string{tt.first, tt.second}, Current)
		if err != nil {
			t.Fatalf("%s: %v", tt.cadence, err)
		}
		if after.Count != before.Count+1 || after.Status != StatusCompleted {
			t.Errorf("%s: before %+v, after %+v", tt.cadence, before, after)
		}
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	calc := NewCalculator(DefaultOptions())

	for _, s := range referenceSnapshots() {
		c1, m1, err := calc.CalculateBoth(s.Cadence, s.Checkoffs)
		if err != nil {
			t.Fatalf("habit %d: %v", s.HabitID, err)
		}
		c2, m2, err := calc.CalculateBoth(s.Cadence, s.Checkoffs)
		if err != nil {
			t.Fatalf("habit %d: %v", s.HabitID, err)
		}
		if c1 != c2 || m1 != m2 {
			t.Errorf("habit %d: results differ between runs", s.HabitID)
		}
	}
}

func TestCalculateErrors(t *testing.T) {
	calc := NewCalculator(DefaultOptions())

	_, err := calc.Calculate("yearly", []string{"2022-01-01 10:00:00"}, Current)
	var cadenceErr *UnsupportedCadenceError
	if !errors.As(err, &cadenceErr) {
		t.Fatalf("expected UnsupportedCadenceError, got %v", err)
	}
	if cadenceErr.Value != "yearly" {
		t.Errorf("cadence value = %q", cadenceErr.Value)
	}

	_, err = calc.Calculate("daily", []string{"2022-01-01 10:00:00", "01.02.2022 10:00"}, Current)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.Index != 1 || parseErr.Value != "01.02.2022 10:00" {
		t.Errorf("unexpected parse error details: %+v", parseErr)
	}
}

func TestCalculateSortOption(t *testing.T) {
	unordered := []string{"2022-03-16 12:00:00", "2022-03-15 12:00:00", "2022-03-17 12:00:00"}

	plain := NewCalculator(DefaultOptions())
	got, err := plain.Calculate("daily", unordered, Current)
	if err != nil {
		t.Fatal(err)
	}
	// 16 → 15 (отметка из прошлого) → 17: серия прерывается и тут же продолжается с 15-го
	if got != (Result{1, StatusBroken}) {
		t.Errorf("unsorted = %+v, want {1 broken}", got)
	}

	opts := DefaultOptions()
	opts.SortCheckoffs = true
	sorted := NewCalculator(opts)
	got, err = sorted.Calculate("daily", unordered, Current)
	if err != nil {
		t.Fatal(err)
	}
	if got != (Result{3, StatusCompleted}) {
		t.Errorf("sorted = %+v, want {3 completed}", got)
	}
}

func TestAggregateReference(t *testing.T) {
	calc := NewCalculator(DefaultOptions())

	res := calc.Aggregate(referenceSnapshots())
	if res.Err() != nil {
		t.Fatalf("unexpected failures: %v", res.Err())
	}
	if res.MaxStreak != 26 {
		t.Errorf("MaxStreak = %d, want 26", res.MaxStreak)
	}
	if !reflect.DeepEqual(res.HabitIDs, []int64{1}) {
		t.Errorf("HabitIDs = %v, want [1]", res.HabitIDs)
	}
}

func TestAggregateTiesKeepStorageOrder(t *testing.T) {
	calc := NewCalculator(DefaultOptions())

	pair := []string{"2022-03-15 12:00:00", "2022-03-16 12:00:00"}
	res := calc.Aggregate([]Snapshot{
		{HabitID: 7, Cadence: "daily", Checkoffs: pair},
		{HabitID: 3, Cadence: "daily", Checkoffs: []string{"2022-03-15 12:00:00"}},
		{HabitID: 5, Cadence: "daily", Checkoffs: pair},
	})

	if res.MaxStreak != 2 {
		t.Errorf("MaxStreak = %d, want 2", res.MaxStreak)
	}
	if !reflect.DeepEqual(res.HabitIDs, []int64{7, 5}) {
		t.Errorf("HabitIDs = %v, want [7 5]", res.HabitIDs)
	}
}

func TestAggregateWithoutCheckoffs(t *testing.T) {
	calc := NewCalculator(DefaultOptions())

	res := calc.Aggregate([]Snapshot{
		{HabitID: 1, Cadence: "daily"},
		{HabitID: 2, Cadence: "monthly"},
	})
	if res.MaxStreak != 0 || len(res.HabitIDs) != 0 {
		t.Errorf("got %+v, want empty result", res)
	}
	if res.Err() != nil {
		t.Errorf("unexpected error: %v", res.Err())
	}
}

func TestAggregateIsolatesFailures(t *testing.T) {
	calc := NewCalculator(DefaultOptions())

	snapshots := referenceSnapshots()
	snapshots = append(snapshots,
		Snapshot{HabitID: 6, Cadence: "hourly", Checkoffs: []string{"2022-01-01 10:00:00"}},
		Snapshot{HabitID: 8, Cadence: "daily", Checkoffs: []string{"garbage"}},
	)

	res := calc.Aggregate(snapshots)
	if res.MaxStreak != 26 || !reflect.DeepEqual(res.HabitIDs, []int64{1}) {
		t.Errorf("partial result = %+v, want habit 1 with 26", res)
	}
	if len(res.Failures) != 2 {
		t.Fatalf("failures = %d, want 2", len(res.Failures))
	}
	if res.Failures[0].HabitID != 6 || res.Failures[1].HabitID != 8 {
		t.Errorf("failure ids = %d, %d", res.Failures[0].HabitID, res.Failures[1].HabitID)
	}

	var parseErr *ParseError
	if !errors.As(res.Err(), &parseErr) {
		t.Errorf("joined error should unwrap to ParseError: %v", res.Err())
	}
}

func TestCalculateInLocation(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	opts := DefaultOptions()
	opts.Location = loc
	calc := NewCalculator(opts)

	got, err := calc.Calculate("daily", []string{"2022-03-15 23:00:00", "2022-03-16 08:00:00"}, Current)
	if err != nil {
		t.Fatal(err)
	}
	if got != (Result{2, StatusCompleted}) {
		t.Errorf("got %+v, want {2 completed}", got)
	}
}

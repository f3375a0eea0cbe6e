package sqlite_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"serotonyl.ru/habit-tracker/internal/common"
	"serotonyl.ru/habit-tracker/internal/db/sqlite"
	"serotonyl.ru/habit-tracker/internal/features/habits"
)

func setupTestStore(t *testing.T) *sqlite.HabitStore {
	t.Helper()

	db, err := sqlite.Open(sqlite.MemoryPath)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return sqlite.NewHabitStore(db)
}

func seedHabit(t *testing.T, s *sqlite.HabitStore, userID int64, name, cadence string) int64 {
	t.Helper()
	id, err := s.CreateHabit(context.Background(), &habits.Habit{
		UserID:    userID,
		Name:      name,
		Cadence:   cadence,
		CreatedAt: time.Date(2021, time.November, 11, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("failed to seed habit: %v", err)
	}
	return id
}

func TestHabitStore_CreateAndGet(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	loc := time.FixedZone("MSK", 3*60*60)
	created := time.Date(2022, time.March, 15, 9, 30, 0, 0, loc)
	id, err := s.CreateHabit(ctx, &habits.Habit{
		UserID:      5,
		Name:        "Work Out",
		Cadence:     "weekly",
		Description: "Functional Fitness",
		CreatedAt:   created,
	})
	if err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}

	h, err := s.GetHabit(ctx, id)
	if err != nil {
		t.Fatalf("GetHabit failed: %v", err)
	}
	if h.Name != "Work Out" || h.Cadence != "weekly" || h.Description != "Functional Fitness" || h.UserID != 5 {
		t.Errorf("unexpected habit: %+v", h)
	}
	if !h.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", h.CreatedAt, created)
	}
}

func TestHabitStore_GetMissing(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetHabit(context.Background(), 404)
	if !errors.Is(err, common.ErrHabitNotFound) {
		t.Fatalf("expected ErrHabitNotFound, got %v", err)
	}
}

func TestHabitStore_RejectsUnknownCadence(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.CreateHabit(context.Background(), &habits.Habit{UserID: 1, Name: "x", Cadence: "yearly"})
	if err == nil {
		t.Fatal("expected CHECK constraint violation")
	}
}

func TestHabitStore_CheckoffsKeepInsertionOrder(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	id := seedHabit(t, s, 1, "Study", "daily")

	in := []string{"2021-12-03 15:56:34", "2021-12-02 14:56:34", "2021-12-03 15:56:34"}
	for _, ts := range in {
		if err := s.AppendCheckoff(ctx, id, ts); err != nil {
			t.Fatalf("AppendCheckoff failed: %v", err)
		}
	}

	got, err := s.ListCheckoffs(ctx, id)
	if err != nil {
		t.Fatalf("ListCheckoffs failed: %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Errorf("checkoffs = %v, want %v", got, in)
	}
}

func TestHabitStore_CheckoffForMissingHabit(t *testing.T) {
	s := setupTestStore(t)

	if err := s.AppendCheckoff(context.Background(), 999, "2021-12-02 14:56:34"); err == nil {
		t.Fatal("expected foreign key violation")
	}
}

func TestHabitStore_Lists(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	a := seedHabit(t, s, 1, "Study", "daily")
	b := seedHabit(t, s, 2, "Coffee", "weekly")
	c := seedHabit(t, s, 1, "Family", "monthly")
	d := seedHabit(t, s, 1, "Sleep", "daily")

	own, err := s.ListHabits(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if ids := habitIDs(own); !reflect.DeepEqual(ids, []int64{a, c, d}) {
		t.Errorf("ListHabits(1) = %v", ids)
	}

	all, err := s.ListAllHabits(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if ids := habitIDs(all); !reflect.DeepEqual(ids, []int64{a, b, c, d}) {
		t.Errorf("ListAllHabits = %v", ids)
	}

	daily, err := s.ListHabitsByCadence(ctx, 1, "daily")
	if err != nil {
		t.Fatal(err)
	}
	if ids := habitIDs(daily); !reflect.DeepEqual(ids, []int64{a, d}) {
		t.Errorf("ListHabitsByCadence = %v", ids)
	}

	owners, err := s.ListOwners(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(owners, []int64{1, 2}) {
		t.Errorf("ListOwners = %v", owners)
	}
}

func TestHabitStore_DeleteCascades(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	id := seedHabit(t, s, 1, "Study", "daily")

	if err := s.AppendCheckoff(ctx, id, "2021-12-02 14:56:34"); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteHabit(ctx, id); err != nil {
		t.Fatalf("DeleteHabit failed: %v", err)
	}

	got, err := s.ListCheckoffs(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("checkoffs survived delete: %v", got)
	}
	if err := s.DeleteHabit(ctx, id); !errors.Is(err, common.ErrHabitNotFound) {
		t.Errorf("expected ErrHabitNotFound, got %v", err)
	}
}

func habitIDs(list []*habits.Habit) []int64 {
	out := make([]int64, 0, len(list))
	for _, h := range list {
		out = append(out, h.ID)
	}
	return out
}

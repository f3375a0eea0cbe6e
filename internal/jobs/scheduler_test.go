package jobs

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"serotonyl.ru/habit-tracker/internal/config"
	"serotonyl.ru/habit-tracker/internal/db/sqlite"
	"serotonyl.ru/habit-tracker/internal/features/habits"
	"serotonyl.ru/habit-tracker/internal/features/streak"
)

type outbox map[int64][]string

func (o outbox) send(userID int64, text string) error {
	o[userID] = append(o[userID], text)
	return nil
}

func newTestScheduler(t *testing.T, send SendFunc) (*Scheduler, *habits.Service) {
	t.Helper()

	db, err := sqlite.Open(sqlite.MemoryPath)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := habits.NewService(sqlite.NewHabitStore(db), streak.DefaultOptions())
	cfg := &config.Config{
		JobsReminderSpec:      "0 20 * * *",
		JobsDigestSpec:        "0 10 * * 1",
		JobsReminderMinStreak: 2,
	}
	return NewScheduler(cfg, svc, send), svc
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.ParseInLocation(streak.DefaultLayout, s, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func addHabit(t *testing.T, svc *habits.Service, userID int64, name string, checkoffs ...string) {
	t.Helper()
	ctx := context.Background()

	h, err := svc.Create(ctx, habits.NewHabit{UserID: userID, Name: name, Cadence: "daily"})
	if err != nil {
		t.Fatal(err)
	}
	for _, at := range checkoffs {
		if _, err := svc.CheckoffAt(ctx, userID, h.ID, mustTime(t, at)); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRunReminders(t *testing.T) {
	box := outbox{}
	s, svc := newTestScheduler(t, box.send)

	addHabit(t, svc, 1, "Зарядка", "2022-03-15 08:00:00", "2022-03-16 08:00:00")
	addHabit(t, svc, 2, "Чтение", "2022-03-15 08:00:00", "2022-03-16 08:00:00", "2022-03-17 09:00:00")
	svc.SetClock(func() time.Time { return mustTime(t, "2022-03-17 20:00:00") })

	if err := s.RunReminders(context.Background()); err != nil {
		t.Fatalf("RunReminders returned error: %v", err)
	}

	if len(box[1]) != 1 || !strings.Contains(box[1][0], "Зарядка") {
		t.Errorf("user 1 messages = %v, want one reminder about Зарядка", box[1])
	}
	if len(box[2]) != 0 {
		t.Errorf("user 2 already checked in today, got %v", box[2])
	}
}

func TestRunDigest(t *testing.T) {
	box := outbox{}
	s, svc := newTestScheduler(t, box.send)

	addHabit(t, svc, 1, "Зарядка", "2022-03-15 08:00:00", "2022-03-16 08:00:00")
	addHabit(t, svc, 2, "Чтение")

	if err := s.RunDigest(context.Background()); err != nil {
		t.Fatalf("RunDigest returned error: %v", err)
	}

	if len(box[1]) != 1 || !strings.Contains(box[1][0], "Рекорд: 2") {
		t.Errorf("user 1 digest = %v", box[1])
	}
	if len(box[2]) != 1 || !strings.Contains(box[2][0], "Рекордов пока нет") {
		t.Errorf("user 2 digest = %v", box[2])
	}
}

func TestRunDigestContinuesAfterSendFailure(t *testing.T) {
	var delivered []int64
	send := func(userID int64, text string) error {
		if userID == 1 {
			return errors.New("bot was blocked by the user")
		}
		delivered = append(delivered, userID)
		return nil
	}
	s, svc := newTestScheduler(t, send)

	addHabit(t, svc, 1, "Зарядка", "2022-03-15 08:00:00")
	addHabit(t, svc, 2, "Чтение", "2022-03-15 08:00:00")

	if err := s.RunDigest(context.Background()); err != nil {
		t.Fatalf("RunDigest returned error: %v", err)
	}
	if len(delivered) != 1 || delivered[0] != 2 {
		t.Errorf("delivered = %v, want [2]", delivered)
	}
}

func TestStartRejectsBadSpec(t *testing.T) {
	s, _ := newTestScheduler(t, outbox{}.send)
	s.cfg.FeatureRemindersEnabled = true
	s.cfg.JobsReminderSpec = "каждый вечер"

	if err := s.Start(context.Background()); err == nil {
		s.Stop()
		t.Fatal("expected error for invalid cron spec")
	}
}

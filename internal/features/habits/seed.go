// Package habits — seed.go содержит демонстрационный набор привычек.
// Его грузят habitctl seed и кнопка «Демо-данные» в админке.
package habits

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/habit-tracker/internal/features/streak"
)

// DemoHabit — привычка из демо-набора вместе с историей отметок.
type DemoHabit struct {
	Name        string
	Cadence     string
	Description string
	Checkoffs   []string
}

// DemoCreatedAt — дата создания всех демо-привычек.
const DemoCreatedAt = "2021-11-11 00:00:00"

// DemoHabits — пять привычек с отметками за декабрь 2021 — июль 2022.
// Рекорд набора — 26 дней у «Study».
var DemoHabits = []DemoHabit{
	{
		Name:        "Study",
		Cadence:     "daily",
		Description: "Study for University",
		Checkoffs: []string{
			"2021-12-02 14:56:34", "2021-12-03 15:56:34", "2021-12-04 15:56:34", "2021-12-07 15:56:34",
			"2021-12-08 16:56:34", "2021-12-08 23:56:34", "2021-12-09 14:56:34", "2021-12-10 14:56:34",
			"2021-12-11 18:56:34", "2021-12-12 20:56:34", "2021-12-13 23:56:34", "2021-12-14 00:56:34",
			"2021-12-14 16:56:34", "2021-12-15 16:56:34", "2021-12-16 14:56:34", "2021-12-17 10:40:00",
			"2021-12-18 10:40:00", "2021-12-19 16:55:00", "2021-12-20 22:55:00", "2021-12-21 00:01:00",
			"2021-12-21 13:01:00", "2021-12-22 13:01:00", "2021-12-23 15:01:00", "2021-12-24 14:01:00",
			"2021-12-25 14:01:00", "2021-12-26 12:05:00", "2021-12-27 10:05:00", "2021-12-28 00:05:00",
			"2021-12-28 06:42:17", "2021-12-29 07:42:17", "2021-12-30 05:00:17", "2021-12-30 13:00:17",
			"2021-12-30 13:00:45", "2021-12-31 12:00:17", "2022-01-01 13:00:17",
		},
	},
	{
		Name:    "Sleep more than 8 hours",
		Cadence: "daily",
		Checkoffs: []string{
			"2021-12-03 13:00:45", "2021-12-04 13:00:45", "2021-12-05 13:00:45", "2021-12-08 10:00:45",
			"2021-12-12 09:00:45", "2021-12-16 11:05:45", "2021-12-17 12:05:45", "2021-12-18 12:05:45",
			"2021-12-19 10:05:45", "2021-12-20 08:05:45", "2021-12-21 07:05:45", "2021-12-22 07:05:45",
			"2021-12-23 05:05:45", "2021-12-24 05:05:45", "2021-12-30 07:05:45", "2021-12-31 12:05:45",
			"2022-01-01 05:05:45", "2022-01-02 07:05:45",
		},
	},
	{
		Name:    "Cleaning Coffee Machine",
		Cadence: "weekly",
		Checkoffs: []string{
			"2021-11-30 06:11:09", "2021-12-08 07:11:09", "2021-12-12 07:11:09", "2021-12-15 07:11:09",
			"2021-12-16 07:11:09", "2021-12-17 08:11:09", "2021-12-18 08:11:09", "2021-12-22 08:11:09",
			"2021-12-28 08:11:09", "2022-01-05 08:11:09", "2022-01-13 08:11:09", "2022-01-13 09:00:00",
		},
	},
	{
		Name:        "Work Out",
		Cadence:     "weekly",
		Description: "Functional Fitness",
		Checkoffs: []string{
			"2021-11-29 08:11:09", "2021-12-02 08:11:09", "2021-12-05 08:11:09", "2021-12-23 08:11:09",
			"2022-01-06 08:11:09", "2022-01-13 08:11:09", "2022-01-19 11:21:45", "2022-01-28 11:21:45",
			"2022-02-02 11:21:45", "2022-02-16 11:21:45", "2022-02-22 11:21:45",
		},
	},
	{
		Name:    "Visit Family",
		Cadence: "monthly",
		Checkoffs: []string{
			"2021-11-30 10:11:09", "2021-12-07 03:11:09", "2021-12-23 03:11:09", "2022-01-22 11:21:45",
			"2022-02-04 03:11:09", "2022-04-10 11:21:45", "2022-05-28 11:21:45", "2022-05-30 11:21:45",
			"2022-07-01 11:21:45",
		},
	},
}

// Seed создаёт демо-привычки для userID и записывает их историю отметок.
// Отметки читаются как местное время сервиса и пишутся в его формате хранения.
func (s *Service) Seed(ctx context.Context, userID int64) ([]*Habit, error) {
	createdAt, err := time.ParseInLocation(streak.DefaultLayout, DemoCreatedAt, s.loc)
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора даты демо-набора: %w", err)
	}

	created := make([]*Habit, 0, len(DemoHabits))
	for _, d := range DemoHabits {
		h := &Habit{
			UserID:      userID,
			Name:        d.Name,
			Cadence:     d.Cadence,
			Description: d.Description,
			CreatedAt:   createdAt,
		}
		id, err := s.store.CreateHabit(ctx, h)
		if err != nil {
			return created, fmt.Errorf("демо-привычка %q: %w", d.Name, err)
		}
		h.ID = id

		for _, raw := range d.Checkoffs {
			t, err := time.ParseInLocation(streak.DefaultLayout, raw, s.loc)
			if err != nil {
				return created, fmt.Errorf("демо-отметка %q: %w", raw, err)
			}
			if err := s.store.AppendCheckoff(ctx, id, t.Format(s.layout)); err != nil {
				return created, fmt.Errorf("демо-привычка %q: %w", d.Name, err)
			}
		}
		created = append(created, h)
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"habits":  len(created),
	}).Info("Демо-данные загружены")
	return created, nil
}

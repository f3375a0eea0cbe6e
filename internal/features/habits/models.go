// Package habits управляет привычками пользователей: создание, удаление,
// отметки выполнения и отчёты по сериям.
// models.go описывает структуры данных и контракт хранилища.
package habits

import (
	"context"
	"time"

	"serotonyl.ru/habit-tracker/internal/features/streak"
)

// Habit — привычка пользователя.
// Периодичность задаётся при создании и больше не меняется.
type Habit struct {
	ID          int64     `db:"id"`          // Автоинкрементный ID привычки
	UserID      int64     `db:"user_id"`     // Владелец (Telegram user ID; в habitctl — LocalUserID)
	Name        string    `db:"name"`        // Название
	Cadence     string    `db:"cadence"`     // "daily", "weekly" или "monthly"
	Description string    `db:"description"` // Описание (может быть пустым)
	CreatedAt   time.Time `db:"created_at"`  // Когда привычка создана
}

// CheckoffRecord — одна отметка выполнения.
// Timestamp хранится строкой в формате STREAK_TIME_LAYOUT ("2006-01-02 15:04:05").
type CheckoffRecord struct {
	ID        int64  `db:"id"`
	HabitID   int64  `db:"habit_id"`
	Timestamp string `db:"checked_at"`
}

// NewHabit — данные для создания привычки.
type NewHabit struct {
	UserID      int64
	Name        string
	Cadence     string
	Description string
}

// Report — отчёт по одной привычке.
type Report struct {
	Habit        *Habit
	Current      streak.Result // текущая серия и статус последней отметки
	Longest      int           // лучшая серия за всё время
	Checkoffs    int           // сколько всего отметок
	LastCheckoff string        // последняя отметка в формате хранилища, "" если отметок нет
	Err          error         // ошибка расчёта (битые данные); остальные поля тогда пустые
}

// Overview — сводка по всем привычкам пользователя.
type Overview struct {
	Reports []*Report
	Longest streak.AggregateResult
	// Names — названия привычек-рекордсменов в том же порядке, что Longest.HabitIDs
	Names []string
}

// Store — хранилище привычек и отметок.
// Реализации: Repository (PostgreSQL, бот) и sqlite.HabitStore (habitctl, тесты).
//
// Отметки возвращаются в порядке добавления: на этом порядке строится расчёт серий.
// Ненайденная привычка — ошибка, оборачивающая common.ErrHabitNotFound.
type Store interface {
	CreateHabit(ctx context.Context, h *Habit) (int64, error)
	GetHabit(ctx context.Context, id int64) (*Habit, error)
	ListHabits(ctx context.Context, userID int64) ([]*Habit, error)
	ListAllHabits(ctx context.Context) ([]*Habit, error)
	ListHabitsByCadence(ctx context.Context, userID int64, cadence string) ([]*Habit, error)
	DeleteHabit(ctx context.Context, id int64) error
	AppendCheckoff(ctx context.Context, habitID int64, timestamp string) error
	ListCheckoffs(ctx context.Context, habitID int64) ([]string, error)
	ListOwners(ctx context.Context) ([]int64, error)
}

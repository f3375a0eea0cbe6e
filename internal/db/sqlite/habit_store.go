package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"serotonyl.ru/habit-tracker/internal/common"
	"serotonyl.ru/habit-tracker/internal/features/habits"
)

// HabitStore реализует habits.Store поверх SQLite.
type HabitStore struct {
	db *sql.DB
}

// NewHabitStore создаёт хранилище привычек.
func NewHabitStore(db *sql.DB) *HabitStore {
	return &HabitStore{db: db}
}

const habitColumns = "id, user_id, name, cadence, description, created_at"

// CreateHabit сохраняет привычку и возвращает её ID.
func (s *HabitStore) CreateHabit(ctx context.Context, h *habits.Habit) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO habits (user_id, name, cadence, description, created_at) VALUES (?, ?, ?, ?, ?)",
		h.UserID, h.Name, h.Cadence, h.Description, h.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания привычки: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка получения id привычки: %w", err)
	}
	return id, nil
}

// GetHabit возвращает привычку по ID.
func (s *HabitStore) GetHabit(ctx context.Context, id int64) (*habits.Habit, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+habitColumns+" FROM habits WHERE id = ?", id)
	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("привычка id=%d: %w", id, common.ErrHabitNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения привычки (id=%d): %w", id, err)
	}
	return h, nil
}

func (s *HabitStore) ListHabits(ctx context.Context, userID int64) ([]*habits.Habit, error) {
	return s.queryHabits(ctx, "SELECT "+habitColumns+" FROM habits WHERE user_id = ? ORDER BY id", userID)
}

func (s *HabitStore) ListAllHabits(ctx context.Context) ([]*habits.Habit, error) {
	return s.queryHabits(ctx, "SELECT "+habitColumns+" FROM habits ORDER BY id")
}

func (s *HabitStore) ListHabitsByCadence(ctx context.Context, userID int64, cadence string) ([]*habits.Habit, error) {
	return s.queryHabits(ctx,
		"SELECT "+habitColumns+" FROM habits WHERE user_id = ? AND cadence = ? ORDER BY id",
		userID, cadence,
	)
}

// DeleteHabit удаляет привычку вместе с отметками.
func (s *HabitStore) DeleteHabit(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("ошибка удаления привычки: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка удаления привычки: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("привычка id=%d: %w", id, common.ErrHabitNotFound)
	}
	return nil
}

func (s *HabitStore) AppendCheckoff(ctx context.Context, habitID int64, timestamp string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO habit_checkoffs (habit_id, checked_at) VALUES (?, ?)",
		habitID, timestamp,
	)
	if err != nil {
		return fmt.Errorf("ошибка записи отметки: %w", err)
	}
	return nil
}

// ListCheckoffs возвращает отметки привычки в порядке добавления.
func (s *HabitStore) ListCheckoffs(ctx context.Context, habitID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT checked_at FROM habit_checkoffs WHERE habit_id = ? ORDER BY id", habitID)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса отметок: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var ts string
		if err := rows.Scan(&ts); err != nil {
			return nil, fmt.Errorf("ошибка сканирования отметки: %w", err)
		}
		out = append(out, ts)
	}
	return out, rows.Err()
}

func (s *HabitStore) ListOwners(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT user_id FROM habits ORDER BY user_id")
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса владельцев: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (s *HabitStore) queryHabits(ctx context.Context, query string, args ...interface{}) ([]*habits.Habit, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса привычек: %w", err)
	}
	defer rows.Close()

	var out []*habits.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanHabit(row scanner) (*habits.Habit, error) {
	var (
		h         habits.Habit
		createdAt string
	)
	if err := row.Scan(&h.ID, &h.UserID, &h.Name, &h.Cadence, &h.Description, &createdAt); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("некорректная дата создания %q: %w", createdAt, err)
	}
	h.CreatedAt = t
	return &h, nil
}

var _ habits.Store = (*HabitStore)(nil)

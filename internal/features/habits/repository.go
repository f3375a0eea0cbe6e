// Package habits — repository.go отвечает за таблицы habits и habit_checkoffs в PostgreSQL.
// Каждая функция выполняет один SQL-запрос и возвращает результат или ошибку.
package habits

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/habit-tracker/internal/common"
)

// Repository — реализация Store поверх pgxpool.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const habitColumns = `id, user_id, name, cadence, COALESCE(description, ''), created_at`

// CreateHabit добавляет привычку и возвращает её ID.
func (r *Repository) CreateHabit(ctx context.Context, h *Habit) (int64, error) {
	query := `
		INSERT INTO habits (user_id, name, cadence, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(ctx, query, h.UserID, h.Name, h.Cadence, h.Description, h.CreatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания привычки: %w", err)
	}
	return id, nil
}

// GetHabit: если не найдена — ошибка с common.ErrHabitNotFound
func (r *Repository) GetHabit(ctx context.Context, id int64) (*Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = $1`

	var h Habit
	err := r.db.QueryRow(ctx, query, id).Scan(
		&h.ID, &h.UserID, &h.Name, &h.Cadence, &h.Description, &h.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("привычка id=%d: %w", id, common.ErrHabitNotFound)
		}
		return nil, fmt.Errorf("ошибка чтения привычки (id=%d): %w", id, err)
	}
	return &h, nil
}

func (r *Repository) ListHabits(ctx context.Context, userID int64) ([]*Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE user_id = $1 ORDER BY id`
	return r.queryHabits(ctx, query, userID)
}

func (r *Repository) ListAllHabits(ctx context.Context) ([]*Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits ORDER BY id`
	return r.queryHabits(ctx, query)
}

func (r *Repository) ListHabitsByCadence(ctx context.Context, userID int64, cadence string) ([]*Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE user_id = $1 AND cadence = $2 ORDER BY id`
	return r.queryHabits(ctx, query, userID, cadence)
}

// DeleteHabit удаляет привычку; отметки уходят каскадно (ON DELETE CASCADE).
func (r *Repository) DeleteHabit(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления привычки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("привычка id=%d: %w", id, common.ErrHabitNotFound)
	}
	return nil
}

func (r *Repository) AppendCheckoff(ctx context.Context, habitID int64, timestamp string) error {
	query := `INSERT INTO habit_checkoffs (habit_id, checked_at) VALUES ($1, $2)`
	if _, err := r.db.Exec(ctx, query, habitID, timestamp); err != nil {
		return fmt.Errorf("ошибка записи отметки: %w", err)
	}
	return nil
}

// ListCheckoffs возвращает отметки в порядке добавления (по id, а не по времени).
func (r *Repository) ListCheckoffs(ctx context.Context, habitID int64) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT checked_at FROM habit_checkoffs WHERE habit_id = $1 ORDER BY id`, habitID)
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения отметок: %w", err)
	}
	return out, nil
}

// ListOwners — пользователи, у которых есть хотя бы одна привычка.
func (r *Repository) ListOwners(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT user_id FROM habits ORDER BY user_id`)
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}

func (r *Repository) queryHabits(ctx context.Context, query string, args ...interface{}) ([]*Habit, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса привычек: %w", err)
	}
	defer rows.Close()

	var out []*Habit
	for rows.Next() {
		var h Habit
		if err := rows.Scan(&h.ID, &h.UserID, &h.Name, &h.Cadence, &h.Description, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки: %w", err)
		}
		out = append(out, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}

var _ Store = (*Repository)(nil)

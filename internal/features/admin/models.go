// Package admin реализует админ-панель с парольной аутентификацией.
// models.go описывает структуры сессий, попыток входа и состояния диалога.
package admin

import (
	"time"

	"serotonyl.ru/habit-tracker/internal/features/habits"
)

// AdminSession — активная сессия администратора.
type AdminSession struct {
	ID              int64     `db:"id"`
	UserID          int64     `db:"user_id"`
	SessionToken    string    `db:"session_token"`
	AuthenticatedAt time.Time `db:"authenticated_at"`
	ExpiresAt       time.Time `db:"expires_at"`
	LastActivity    time.Time `db:"last_activity"`
	IsActive        bool      `db:"is_active"`
}

// LoginAttempt — попытка входа (для защиты от brute-force).
type LoginAttempt struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	AttemptTime time.Time `db:"attempt_time"`
	Success     bool      `db:"success"`
}

// AdminState — состояние диалога с админом (конечный автомат).
type AdminState struct {
	State     string    // Текущее состояние ("", "awaiting_password", "confirm_seed")
	ExpiresAt time.Time // Когда состояние истекает (5 минут)
}

// Возможные состояния админ-диалога
const (
	StateNone             = ""                  // Нет активного состояния
	StateAwaitingPassword = "awaiting_password" // Ждём пароль
	StateConfirmSeed      = "confirm_seed"      // Ждём подтверждение загрузки демо-данных
)

// Параметры безопасности
const (
	MaxFailedAttempts = 3              // неудачных попыток до блокировки
	LockoutPeriod     = time.Hour      // окно подсчёта неудачных попыток
	SessionTTL        = 24 * time.Hour // время жизни сессии
	StateTTL          = 5 * time.Minute
)

// RatingEntry — строка глобального рейтинга: привычка-рекордсмен и её серия.
type RatingEntry struct {
	Habit  *habits.Habit
	Streak int
}

// Package admin — service.go содержит логику аутентификации, управления сессиями,
// state-машину админ-диалога и админские действия над привычками.
package admin

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/habit-tracker/internal/common"
	"serotonyl.ru/habit-tracker/internal/config"
	"serotonyl.ru/habit-tracker/internal/features/habits"
)

// Service управляет админ-панелью.
type Service struct {
	store    Store
	cfg      *config.Config
	habits   *habits.Service
	states   map[int64]*AdminState // Состояния диалогов (in-memory)
	statesMu sync.RWMutex
	now      func() time.Time
}

// NewService создаёт сервис админ-панели.
func NewService(store Store, habitService *habits.Service, cfg *config.Config) *Service {
	return &Service{
		store:  store,
		cfg:    cfg,
		habits: habitService,
		states: make(map[int64]*AdminState),
		now:    time.Now,
	}
}

// IsAdmin — есть ли userID в ADMIN_IDS.
func (s *Service) IsAdmin(userID int64) bool {
	return s.cfg.IsAdmin(userID)
}

// Login проверяет пароль администратора и открывает сессию на 24 часа.
// 3 неудачные попытки за час — блокировка (common.ErrTooManyAttempts).
func (s *Service) Login(ctx context.Context, userID int64, password string) error {
	if !s.IsAdmin(userID) {
		return common.ErrNotAdmin
	}

	attempts, err := s.store.GetRecentAttempts(ctx, userID, LockoutPeriod)
	if err != nil {
		return fmt.Errorf("ошибка проверки попыток входа: %w", err)
	}
	if attempts >= MaxFailedAttempts {
		return common.ErrTooManyAttempts
	}

	match := CheckPassword(password, s.cfg.AdminPasswordHash)
	if err := s.store.LogAttempt(ctx, userID, match); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Не удалось записать попытку входа")
	}
	if !match {
		log.WithField("user_id", userID).Warn("Неверный пароль администратора")
		return common.ErrWrongPassword
	}

	token, err := generateSecureToken()
	if err != nil {
		return err
	}
	session := &AdminSession{
		UserID:       userID,
		SessionToken: token,
		ExpiresAt:    s.now().Add(SessionTTL),
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return err
	}

	log.WithField("user_id", userID).Info("Администратор вошёл в панель")
	return nil
}

// Logout закрывает сессию.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	s.ClearState(userID)
	return s.store.DeactivateSession(ctx, userID)
}

// HasActiveSession проверяет, есть ли у пользователя активная сессия.
func (s *Service) HasActiveSession(ctx context.Context, userID int64) bool {
	session, err := s.store.GetActiveSession(ctx, userID)
	return err == nil && session != nil
}

// Touch обновляет время последней активности сессии.
func (s *Service) Touch(ctx context.Context, userID int64) {
	if err := s.store.UpdateActivity(ctx, userID); err != nil {
		log.WithError(err).WithField("user_id", userID).Debug("Не удалось обновить активность сессии")
	}
}

// GetState возвращает текущее состояние диалога или nil, если оно истекло.
func (s *Service) GetState(userID int64) *AdminState {
	s.statesMu.RLock()
	defer s.statesMu.RUnlock()

	state, ok := s.states[userID]
	if !ok || s.now().After(state.ExpiresAt) {
		return nil
	}
	return state
}

// SetState устанавливает состояние диалога с 5-минутным таймаутом.
func (s *Service) SetState(userID int64, stateName string) {
	s.statesMu.Lock()
	defer s.statesMu.Unlock()

	s.states[userID] = &AdminState{
		State:     stateName,
		ExpiresAt: s.now().Add(StateTTL),
	}
}

// ClearState сбрасывает состояние диалога.
func (s *Service) ClearState(userID int64) {
	s.statesMu.Lock()
	defer s.statesMu.Unlock()
	delete(s.states, userID)
}

// SeedDemo загружает демо-привычки в аккаунт администратора.
func (s *Service) SeedDemo(ctx context.Context, userID int64) ([]*habits.Habit, error) {
	return s.habits.Seed(ctx, userID)
}

// Rating — привычки с самой длинной серией среди всех пользователей.
// Привычки с битыми данными пропускаются (их видно в логах).
func (s *Service) Rating(ctx context.Context) ([]RatingEntry, error) {
	res, err := s.habits.AggregateLongestStreak(ctx, habits.AllUsers)
	if err != nil {
		return nil, err
	}

	out := make([]RatingEntry, 0, len(res.HabitIDs))
	for _, id := range res.HabitIDs {
		h, err := s.habits.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, RatingEntry{Habit: h, Streak: res.MaxStreak})
	}
	return out, nil
}

// Package habits — service.go содержит бизнес-логику привычек.
// Сервис берёт снимок отметок из хранилища (один запрос на привычку)
// и отдаёт его движку серий из пакета streak.
package habits

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/habit-tracker/internal/common"
	"serotonyl.ru/habit-tracker/internal/features/streak"
)

// AllUsers — userID для операций по всем привычкам всех пользователей (рейтинг, CLI).
const AllUsers int64 = 0

// Service управляет привычками и считает серии.
type Service struct {
	store  Store
	calc   *streak.Calculator
	layout string
	loc    *time.Location
	now    func() time.Time
}

// NewService создаёт сервис привычек.
//
// Параметры:
//   - store: хранилище (PostgreSQL в боте, SQLite в habitctl)
//   - opts: настройки расчёта серий; Layout и Location используются и для записи отметок
func NewService(store Store, opts streak.Options) *Service {
	if opts.Layout == "" {
		opts.Layout = streak.DefaultLayout
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	s := &Service{
		store:  store,
		calc:   streak.NewCalculator(opts),
		layout: opts.Layout,
		loc:    opts.Location,
	}
	s.now = func() time.Time { return time.Now().In(s.loc) }
	return s
}

// SetClock подменяет источник текущего времени (для тестов и habitctl --at).
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Create создаёт привычку.
// Пустое название или неизвестная периодичность — common.ErrInvalidHabit.
func (s *Service) Create(ctx context.Context, in NewHabit) (*Habit, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("пустое название: %w", common.ErrInvalidHabit)
	}
	cadence, err := streak.ParseCadence(in.Cadence)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidHabit, err)
	}

	h := &Habit{
		UserID:      in.UserID,
		Name:        name,
		Cadence:     cadence.String(),
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   s.now(),
	}
	id, err := s.store.CreateHabit(ctx, h)
	if err != nil {
		return nil, err
	}
	h.ID = id

	log.WithFields(log.Fields{
		"user_id":  h.UserID,
		"habit_id": h.ID,
		"cadence":  h.Cadence,
	}).Info("Привычка создана")
	return h, nil
}

// Get возвращает привычку по ID.
func (s *Service) Get(ctx context.Context, habitID int64) (*Habit, error) {
	return s.store.GetHabit(ctx, habitID)
}

// Delete удаляет привычку вместе со всеми отметками. Удалить можно только свою.
func (s *Service) Delete(ctx context.Context, userID, habitID int64) error {
	if _, err := s.owned(ctx, userID, habitID); err != nil {
		return err
	}
	if err := s.store.DeleteHabit(ctx, habitID); err != nil {
		return err
	}
	log.WithFields(log.Fields{"user_id": userID, "habit_id": habitID}).Info("Привычка удалена")
	return nil
}

// List возвращает привычки пользователя в порядке создания.
func (s *Service) List(ctx context.Context, userID int64) ([]*Habit, error) {
	if userID == AllUsers {
		return s.store.ListAllHabits(ctx)
	}
	return s.store.ListHabits(ctx, userID)
}

// ListByCadence возвращает привычки пользователя одной периодичности.
func (s *Service) ListByCadence(ctx context.Context, userID int64, cadence string) ([]*Habit, error) {
	c, err := streak.ParseCadence(cadence)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidHabit, err)
	}
	return s.store.ListHabitsByCadence(ctx, userID, c.String())
}

// Checkoff отмечает выполнение привычки сейчас и возвращает обновлённый отчёт.
func (s *Service) Checkoff(ctx context.Context, userID, habitID int64) (*Report, error) {
	return s.CheckoffAt(ctx, userID, habitID, s.now())
}

// CheckoffAt отмечает выполнение в момент at (переводится в часовой пояс сервиса).
func (s *Service) CheckoffAt(ctx context.Context, userID, habitID int64, at time.Time) (*Report, error) {
	if _, err := s.owned(ctx, userID, habitID); err != nil {
		return nil, err
	}

	ts := at.In(s.loc).Format(s.layout)
	if err := s.store.AppendCheckoff(ctx, habitID, ts); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id":  userID,
		"habit_id": habitID,
		"at":       ts,
	}).Debug("Отметка записана")

	return s.Report(ctx, habitID)
}

// CalculateStreak возвращает текущую (Current) или лучшую (Maximum) серию привычки.
// Статус в обоих режимах описывает последнюю отметку.
func (s *Service) CalculateStreak(ctx context.Context, habitID int64, mode streak.Mode) (streak.Result, error) {
	h, err := s.store.GetHabit(ctx, habitID)
	if err != nil {
		return streak.Result{}, err
	}
	raw, err := s.store.ListCheckoffs(ctx, habitID)
	if err != nil {
		return streak.Result{}, err
	}

	res, err := s.calc.Calculate(h.Cadence, raw, mode)
	if err != nil {
		return streak.Result{}, fmt.Errorf("расчёт серии привычки %d: %w", habitID, err)
	}
	return res, nil
}

// Report собирает отчёт по одной привычке.
func (s *Service) Report(ctx context.Context, habitID int64) (*Report, error) {
	h, err := s.store.GetHabit(ctx, habitID)
	if err != nil {
		return nil, err
	}
	raw, err := s.store.ListCheckoffs(ctx, habitID)
	if err != nil {
		return nil, err
	}

	r := s.buildReport(h, raw)
	if r.Err != nil {
		return nil, fmt.Errorf("расчёт серии привычки %d: %w", habitID, r.Err)
	}
	return r, nil
}

// AggregateLongestStreak ищет рекорд среди привычек пользователя (AllUsers — среди всех).
// Привычки с битыми данными пропускаются и попадают в Failures; ошибка — только от хранилища.
func (s *Service) AggregateLongestStreak(ctx context.Context, userID int64) (streak.AggregateResult, error) {
	list, err := s.List(ctx, userID)
	if err != nil {
		return streak.AggregateResult{}, err
	}

	snaps := make([]streak.Snapshot, 0, len(list))
	for _, h := range list {
		raw, err := s.store.ListCheckoffs(ctx, h.ID)
		if err != nil {
			return streak.AggregateResult{}, err
		}
		snaps = append(snaps, streak.Snapshot{HabitID: h.ID, Cadence: h.Cadence, Checkoffs: raw})
	}

	res := s.calc.Aggregate(snaps)
	logFailures(userID, res)
	return res, nil
}

// Overview — отчёты по всем привычкам пользователя плюс общий рекорд.
// Отметки каждой привычки читаются один раз и используются и для отчёта, и для рекорда.
func (s *Service) Overview(ctx context.Context, userID int64) (*Overview, error) {
	list, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	ov := &Overview{Reports: make([]*Report, 0, len(list))}
	snaps := make([]streak.Snapshot, 0, len(list))
	byID := make(map[int64]*Habit, len(list))

	for _, h := range list {
		raw, err := s.store.ListCheckoffs(ctx, h.ID)
		if err != nil {
			return nil, err
		}
		ov.Reports = append(ov.Reports, s.buildReport(h, raw))
		snaps = append(snaps, streak.Snapshot{HabitID: h.ID, Cadence: h.Cadence, Checkoffs: raw})
		byID[h.ID] = h
	}

	ov.Longest = s.calc.Aggregate(snaps)
	logFailures(userID, ov.Longest)

	for _, id := range ov.Longest.HabitIDs {
		ov.Names = append(ov.Names, byID[id].Name)
	}
	return ov, nil
}

// DueReminders — ежедневные привычки, у которых серия не меньше minStreak,
// последняя отметка была вчера, а сегодня отметки ещё нет. Серию ещё можно спасти.
func (s *Service) DueReminders(ctx context.Context, userID int64, minStreak int) ([]*Report, error) {
	list, err := s.store.ListHabitsByCadence(ctx, userID, streak.Daily.String())
	if err != nil {
		return nil, err
	}

	today := common.StartOfDay(s.now().In(s.loc))
	yesterday := today.AddDate(0, 0, -1)

	var due []*Report
	for _, h := range list {
		raw, err := s.store.ListCheckoffs(ctx, h.ID)
		if err != nil {
			return nil, err
		}
		r := s.buildReport(h, raw)
		if r.Err != nil || r.LastCheckoff == "" || r.Current.Count < minStreak {
			continue
		}

		last, err := time.ParseInLocation(s.layout, r.LastCheckoff, s.loc)
		if err != nil {
			continue
		}
		if common.StartOfDay(last).Equal(yesterday) {
			due = append(due, r)
		}
	}
	return due, nil
}

// ListOwners — пользователи, у которых есть привычки (для рассылок).
func (s *Service) ListOwners(ctx context.Context) ([]int64, error) {
	return s.store.ListOwners(ctx)
}

// owned возвращает привычку, если она принадлежит userID.
func (s *Service) owned(ctx context.Context, userID, habitID int64) (*Habit, error) {
	h, err := s.store.GetHabit(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if h.UserID != userID {
		return nil, fmt.Errorf("привычка %d: %w", habitID, common.ErrNotHabitOwner)
	}
	return h, nil
}

func (s *Service) buildReport(h *Habit, raw []string) *Report {
	r := &Report{Habit: h, Checkoffs: len(raw)}
	if len(raw) > 0 {
		r.LastCheckoff = raw[len(raw)-1]
	}

	current, best, err := s.calc.CalculateBoth(h.Cadence, raw)
	if err != nil {
		r.Err = err
		return r
	}
	r.Current = current
	r.Longest = best.Count
	return r
}

func logFailures(userID int64, res streak.AggregateResult) {
	for _, f := range res.Failures {
		log.WithFields(log.Fields{
			"user_id":  userID,
			"habit_id": f.HabitID,
		}).WithError(f.Err).Warn("Привычка пропущена при поиске рекорда")
	}
}

// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: вечерние напоминания о сериях
// и еженедельный дайджест по привычкам.
package jobs

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/habit-tracker/internal/bot/middleware"
	"serotonyl.ru/habit-tracker/internal/common"
	"serotonyl.ru/habit-tracker/internal/config"
	"serotonyl.ru/habit-tracker/internal/features/habits"
)

// SendFunc отправляет текст пользователю в личку.
type SendFunc func(userID int64, text string) error

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron         *cron.Cron
	cfg          *config.Config
	habitService *habits.Service
	sendFunc     SendFunc
}

// NewScheduler создаёт планировщик задач в часовом поясе приложения.
func NewScheduler(cfg *config.Config, habitService *habits.Service, sendFunc SendFunc) *Scheduler {
	return &Scheduler{
		cron:         cron.New(cron.WithLocation(common.Location())),
		cfg:          cfg,
		habitService: habitService,
		sendFunc:     sendFunc,
	}
}

// Start регистрирует включённые задачи и запускает cron.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.cfg.FeatureRemindersEnabled {
		if _, err := s.cron.AddFunc(s.cfg.JobsReminderSpec, func() {
			defer middleware.RecoverFromPanic("jobs.reminders")
			log.Info("[CRON] Напоминания о сериях")
			if err := s.RunReminders(ctx); err != nil {
				log.WithError(err).Error("[CRON] Ошибка напоминаний")
			}
		}); err != nil {
			return fmt.Errorf("расписание напоминаний %q: %w", s.cfg.JobsReminderSpec, err)
		}
	}

	if s.cfg.FeatureDigestEnabled {
		if _, err := s.cron.AddFunc(s.cfg.JobsDigestSpec, func() {
			defer middleware.RecoverFromPanic("jobs.digest")
			log.Info("[CRON] Еженедельный дайджест")
			if err := s.RunDigest(ctx); err != nil {
				log.WithError(err).Error("[CRON] Ошибка дайджеста")
			}
		}); err != nil {
			return fmt.Errorf("расписание дайджеста %q: %w", s.cfg.JobsDigestSpec, err)
		}
	}

	s.cron.Start()
	log.WithFields(log.Fields{
		"location":  common.Location().String(),
		"reminders": s.cfg.FeatureRemindersEnabled,
		"digest":    s.cfg.FeatureDigestEnabled,
	}).Info("Планировщик задач запущен")
	return nil
}

// Stop останавливает планировщик и ждёт завершения запущенных задач.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}

// RunReminders напоминает владельцам ежедневных привычек о сериях,
// которые прервутся без сегодняшней отметки.
func (s *Scheduler) RunReminders(ctx context.Context) error {
	owners, err := s.habitService.ListOwners(ctx)
	if err != nil {
		return fmt.Errorf("список владельцев: %w", err)
	}

	sent := 0
	for _, userID := range owners {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		due, err := s.habitService.DueReminders(ctx, userID, s.cfg.JobsReminderMinStreak)
		if err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("Не удалось собрать напоминания")
			continue
		}
		if len(due) == 0 {
			continue
		}

		if err := s.sendFunc(userID, habits.FormatReminder(due)); err != nil {
			log.WithError(err).WithField("user_id", userID).Debug("Напоминание не доставлено")
			continue
		}
		sent++
	}

	log.WithFields(log.Fields{"owners": len(owners), "sent": sent}).Info("[CRON] Напоминания отправлены")
	return nil
}

// RunDigest рассылает каждому владельцу сводку по его привычкам.
func (s *Scheduler) RunDigest(ctx context.Context) error {
	owners, err := s.habitService.ListOwners(ctx)
	if err != nil {
		return fmt.Errorf("список владельцев: %w", err)
	}

	sent := 0
	for _, userID := range owners {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		ov, err := s.habitService.Overview(ctx, userID)
		if err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("Не удалось собрать дайджест")
			continue
		}
		if len(ov.Reports) == 0 {
			continue
		}

		if err := s.sendFunc(userID, habits.FormatOverview(ov)); err != nil {
			log.WithError(err).WithField("user_id", userID).Debug("Дайджест не доставлен")
			continue
		}
		sent++
	}

	log.WithFields(log.Fields{"owners": len(owners), "sent": sent}).Info("[CRON] Дайджест отправлен")
	return nil
}

// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, репозитории, сервисы, обработчики,
// фильтры и собирает всё в один объект Bot.
package app

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/habit-tracker/internal/bot"
	"serotonyl.ru/habit-tracker/internal/bot/filters"
	"serotonyl.ru/habit-tracker/internal/common"
	"serotonyl.ru/habit-tracker/internal/config"
	"serotonyl.ru/habit-tracker/internal/db/postgres"
	"serotonyl.ru/habit-tracker/internal/features/admin"
	"serotonyl.ru/habit-tracker/internal/features/habits"
	"serotonyl.ru/habit-tracker/internal/features/members"
	"serotonyl.ru/habit-tracker/internal/jobs"
)

// App содержит все компоненты приложения.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
	BotAPI    *tgbotapi.BotAPI
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 0. Часовой пояс ===
	loc, err := common.LoadLocation(cfg.AppTimezone)
	if err != nil {
		return nil, fmt.Errorf("часовой пояс: %w", err)
	}
	common.SetLocation(loc)

	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if err := postgres.RunMigrations(ctx, pool, Migrations); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Telegram Bot API ===
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка создания Telegram API: %w", err)
	}
	botAPI.Debug = cfg.AppEnv == "development"
	log.Infof("Авторизован как @%s", botAPI.Self.UserName)

	// === 3. Репозитории ===
	memberRepo := members.NewRepository(pool)
	habitRepo := habits.NewRepository(pool)
	adminRepo := admin.NewRepository(pool)

	// === 4. Сервисы ===
	memberService := members.NewService(memberRepo)
	habitService := habits.NewService(habitRepo, cfg.StreakConfig.Options(loc))
	adminService := admin.NewService(adminRepo, habitService, cfg)

	// === 5. Обработчики ===
	memberHandler := members.NewHandler(memberService)
	habitHandler := habits.NewHandler(habitService, botAPI)
	adminHandler := admin.NewHandler(adminService, memberService, botAPI)

	// === 6. Фильтры ===
	chatFilter := filters.NewChatFilter(cfg.AllowedChatIDs, memberService)

	// === 7. Собираем бота ===
	b := bot.New(
		botAPI, cfg,
		memberService, memberHandler,
		habitHandler,
		adminHandler,
		chatFilter,
	)

	// === 8. Планировщик задач ===
	scheduler := jobs.NewScheduler(cfg, habitService, b.SendMessageToUser)

	log.WithFields(log.Fields{
		"timezone":       loc.String(),
		"streak_min_gap": cfg.StreakMinGap,
		"allowed_chats":  len(cfg.AllowedChatIDs),
	}).Info("Приложение собрано")

	return &App{
		Bot:       b,
		Scheduler: scheduler,
		DB:        pool,
		BotAPI:    botAPI,
	}, nil
}

// Package bot содержит главный модуль бота — polling, фильтрацию и маршрутизацию команд.
// bot.go получает готовые сервисы и обработчики из app и раздаёт им апдейты.
package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/habit-tracker/internal/bot/filters"
	"serotonyl.ru/habit-tracker/internal/bot/middleware"
	"serotonyl.ru/habit-tracker/internal/config"
	"serotonyl.ru/habit-tracker/internal/features/admin"
	"serotonyl.ru/habit-tracker/internal/features/habits"
	"serotonyl.ru/habit-tracker/internal/features/members"
)

const helpText = `📋 Трекер привычек

!привычки — список ваших привычек с сериями
!новая <daily|weekly|monthly> <название> [| описание] — новая привычка
!отметить <id> — отметить выполнение
!серия <id> — текущая и лучшая серия
!рекорд — самая длинная серия среди ваших привычек
!период <daily|weekly|monthly> — привычки одной периодичности
!удалить <id> — удалить привычку

Команды работают и с /: /done 3, /streak 3.`

// Bot — главная структура бота, объединяющая все компоненты.
type Bot struct {
	api *tgbotapi.BotAPI
	cfg *config.Config

	chatFilter  *filters.ChatFilter
	rateLimiter *middleware.RateLimiter

	memberHandler *members.Handler
	habitHandler  *habits.Handler
	adminHandler  *admin.Handler

	memberService *members.Service

	parser *CommandParser

	// ограничитель параллелизма обработки апдейтов
	inflight chan struct{}
}

// New создаёт новый экземпляр бота со всеми зависимостями.
func New(
	api *tgbotapi.BotAPI,
	cfg *config.Config,
	memberService *members.Service,
	memberHandler *members.Handler,
	habitHandler *habits.Handler,
	adminHandler *admin.Handler,
	chatFilter *filters.ChatFilter,
) *Bot {
	maxInFlight := cfg.BotMaxInflight
	if maxInFlight <= 0 {
		maxInFlight = 64
	}

	return &Bot{
		api:           api,
		cfg:           cfg,
		chatFilter:    chatFilter,
		rateLimiter:   middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		memberHandler: memberHandler,
		habitHandler:  habitHandler,
		adminHandler:  adminHandler,
		memberService: memberService,
		parser:        NewCommandParser(),
		inflight:      make(chan struct{}, maxInFlight),
	}
}

// Start запускает polling обновлений от Telegram. Блокируется до отмены ctx.
func (b *Bot) Start(ctx context.Context) {
	defer b.rateLimiter.Close()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.BotUpdateTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)

	log.WithFields(log.Fields{
		"max_inflight": cap(b.inflight),
		"timeout_sec":  b.cfg.BotUpdateTimeoutSeconds,
	}).Info("Бот запущен и ожидает сообщения...")

	for {
		select {
		case <-ctx.Done():
			log.Info("Бот останавливается (ctx done)...")
			b.api.StopReceivingUpdates()
			return

		case update, ok := <-updates:
			if !ok {
				log.Info("Канал updates закрыт, бот остановлен")
				return
			}

			// лимит параллелизма
			b.inflight <- struct{}{}
			go func(upd tgbotapi.Update) {
				defer func() { <-b.inflight }()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

// handleUpdate обрабатывает одно обновление от Telegram.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer middleware.RecoverFromPanic("bot")

	message := update.Message
	if message == nil || message.Chat == nil {
		return
	}

	// Вступление в разрешённую группу
	if len(message.NewChatMembers) > 0 {
		if b.chatFilter.IsAllowedGroup(message.Chat.ID) {
			b.memberHandler.HandleNewChatMembers(ctx, message.NewChatMembers)
		}
		return
	}

	if message.Text == "" || message.From == nil {
		return
	}

	middleware.LogMessage(message)

	if !b.chatFilter.CheckAccess(ctx, message) {
		return
	}

	if !b.rateLimiter.Allow(message.From.ID) {
		log.WithField("user_id", message.From.ID).Debug("rate limited")
		return
	}

	chatID := message.Chat.ID
	userID := message.From.ID

	if err := b.memberService.EnsureMember(ctx, userID,
		message.From.UserName, message.From.FirstName, message.From.LastName,
	); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("EnsureMember failed")
	}

	// В DM сначала админ-панель: она ждёт пароль и ответы на подтверждения
	if message.Chat.IsPrivate() {
		if b.adminHandler.HandleAdminMessage(ctx, chatID, userID, message.Text) {
			return
		}
	}

	cmd, args, isCommand := b.parser.ParseCommand(message.Text)
	if !isCommand {
		return
	}
	b.routeCommand(ctx, message.Chat.IsPrivate(), chatID, userID, cmd, args)
}

// routeCommand маршрутизирует команду к нужному обработчику.
func (b *Bot) routeCommand(ctx context.Context, private bool, chatID, userID int64, cmd string, args []string) {
	log.WithFields(log.Fields{
		"cmd":  cmd,
		"args": args,
	}).Debug("routing command")

	switch cmd {
	case "start", "help", "помощь":
		b.sendMessage(chatID, helpText)

	case "login":
		// пароль в группе светить нельзя
		if private {
			b.adminHandler.HandleLogin(ctx, chatID, userID, args)
		}

	case "привычки", "habits":
		b.habitHandler.HandleList(ctx, chatID, userID)

	case "новая", "new":
		b.habitHandler.HandleNew(ctx, chatID, userID, args)

	case "отметить", "done":
		b.habitHandler.HandleDone(ctx, chatID, userID, args)

	case "серия", "streak":
		b.habitHandler.HandleStreak(ctx, chatID, userID, args)

	case "рекорд", "best":
		b.habitHandler.HandleBest(ctx, chatID, userID)

	case "период", "period":
		b.habitHandler.HandlePeriod(ctx, chatID, userID, args)

	case "удалить", "delete":
		b.habitHandler.HandleDelete(ctx, chatID, userID, args)
	}
}

// sendMessage — утилита для отправки сообщений.
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}

// SendMessageToUser отправляет сообщение пользователю в личку (напоминания и дайджест).
func (b *Bot) SendMessageToUser(userID int64, text string) error {
	msg := tgbotapi.NewMessage(userID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("user_id", userID).Debug("Не удалось отправить сообщение")
		return err
	}
	log.WithField("user_id", userID).Debug("message sent")
	return nil
}

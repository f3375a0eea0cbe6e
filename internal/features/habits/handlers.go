// Package habits — handlers.go обрабатывает команды привычек в Telegram.
// Разбор аргументов вынесен в отдельные функции, отправка — в sendMessage.
package habits

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/habit-tracker/internal/common"
	"serotonyl.ru/habit-tracker/internal/features/streak"
)

// Handler обрабатывает команды привычек.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик команд привычек.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleList — !привычки: все привычки с текущими сериями и рекордом.
func (h *Handler) HandleList(ctx context.Context, chatID, userID int64) {
	ov, err := h.service.Overview(ctx, userID)
	if err != nil {
		h.replyError(chatID, userID, err)
		return
	}
	h.sendMessage(chatID, FormatOverview(ov))
}

// HandleNew — !новая <daily|weekly|monthly> <название> [| описание]
func (h *Handler) HandleNew(ctx context.Context, chatID, userID int64, args []string) {
	in, err := parseNewHabitArgs(args)
	if err != nil {
		h.sendMessage(chatID, "❌ Формат: !новая <daily|weekly|monthly> <название> [| описание]")
		return
	}
	in.UserID = userID

	habit, err := h.service.Create(ctx, in)
	if err != nil {
		h.replyError(chatID, userID, err)
		return
	}
	h.sendMessage(chatID, fmt.Sprintf("🆕 Привычка создана: %s\nОтмечайте: !отметить %d", FormatHabitLine(habit), habit.ID))
}

// HandleDone — !отметить <id>
func (h *Handler) HandleDone(ctx context.Context, chatID, userID int64, args []string) {
	id, err := parseHabitID(args)
	if err != nil {
		h.sendMessage(chatID, "❌ Укажите номер привычки: !отметить <id>")
		return
	}

	report, err := h.service.Checkoff(ctx, userID, id)
	if err != nil {
		h.replyError(chatID, userID, err)
		return
	}
	h.sendMessage(chatID, FormatCheckoff(report))
}

// HandleStreak — !серия <id>
func (h *Handler) HandleStreak(ctx context.Context, chatID, userID int64, args []string) {
	id, err := parseHabitID(args)
	if err != nil {
		h.sendMessage(chatID, "❌ Укажите номер привычки: !серия <id>")
		return
	}

	habit, err := h.service.Get(ctx, id)
	if err != nil {
		h.replyError(chatID, userID, err)
		return
	}
	if habit.UserID != userID {
		h.replyError(chatID, userID, common.ErrNotHabitOwner)
		return
	}

	report, err := h.service.Report(ctx, id)
	if err != nil {
		h.replyError(chatID, userID, err)
		return
	}
	h.sendMessage(chatID, FormatReport(report))
}

// HandleBest — !рекорд: самая длинная серия среди своих привычек.
func (h *Handler) HandleBest(ctx context.Context, chatID, userID int64) {
	ov, err := h.service.Overview(ctx, userID)
	if err != nil {
		h.replyError(chatID, userID, err)
		return
	}
	h.sendMessage(chatID, FormatLongest(ov.Longest, ov.Names))
}

// HandlePeriod — !период <daily|weekly|monthly>
func (h *Handler) HandlePeriod(ctx context.Context, chatID, userID int64, args []string) {
	if len(args) == 0 {
		h.sendMessage(chatID, "❌ Укажите периодичность: !период daily")
		return
	}

	list, err := h.service.ListByCadence(ctx, userID, normalizeCadence(args[0]))
	if err != nil {
		h.replyError(chatID, userID, err)
		return
	}
	h.sendMessage(chatID, FormatHabitList(list))
}

// HandleDelete — !удалить <id>
func (h *Handler) HandleDelete(ctx context.Context, chatID, userID int64, args []string) {
	id, err := parseHabitID(args)
	if err != nil {
		h.sendMessage(chatID, "❌ Укажите номер привычки: !удалить <id>")
		return
	}

	if err := h.service.Delete(ctx, userID, id); err != nil {
		h.replyError(chatID, userID, err)
		return
	}
	h.sendMessage(chatID, fmt.Sprintf("🗑 Привычка #%d удалена вместе с отметками", id))
}

// replyError отправляет понятное сообщение для известных ошибок и логирует остальные.
func (h *Handler) replyError(chatID, userID int64, err error) {
	text := userErrorText(err)
	if text == "" {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка команды привычек")
		text = "❌ Что-то пошло не так, попробуйте позже"
	}
	h.sendMessage(chatID, text)
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}

// userErrorText возвращает текст для пользователя или "" для внутренних ошибок.
func userErrorText(err error) string {
	var cadenceErr *streak.UnsupportedCadenceError
	switch {
	case errors.As(err, &cadenceErr):
		return fmt.Sprintf("❌ Неизвестная периодичность %q. Доступно: daily, weekly, monthly", cadenceErr.Value)
	case errors.Is(err, common.ErrHabitNotFound),
		errors.Is(err, common.ErrNotHabitOwner),
		errors.Is(err, common.ErrInvalidHabit):
		return "❌ " + rootMessage(err)
	}
	return ""
}

// rootMessage — текст известной ошибки без технических префиксов.
func rootMessage(err error) string {
	for _, known := range []error{common.ErrHabitNotFound, common.ErrNotHabitOwner, common.ErrInvalidHabit} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return err.Error()
}

// parseNewHabitArgs разбирает "daily Зарядка по утрам | 10 минут".
func parseNewHabitArgs(args []string) (NewHabit, error) {
	if len(args) < 2 {
		return NewHabit{}, fmt.Errorf("мало аргументов: %w", common.ErrInvalidHabit)
	}

	rest := strings.Join(args[1:], " ")
	name, desc, _ := strings.Cut(rest, "|")

	in := NewHabit{
		Cadence:     normalizeCadence(args[0]),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(desc),
	}
	if in.Name == "" {
		return NewHabit{}, fmt.Errorf("пустое название: %w", common.ErrInvalidHabit)
	}
	return in, nil
}

// parseHabitID достаёт ID привычки из первого аргумента ("5" или "#5").
func parseHabitID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("не указан id привычки")
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(args[0], "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("некорректный id привычки %q", args[0])
	}
	return id, nil
}

// normalizeCadence понимает русские названия периодичности.
func normalizeCadence(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ежедневно", "день", "каждый_день":
		return "daily"
	case "еженедельно", "неделя":
		return "weekly"
	case "ежемесячно", "месяц":
		return "monthly"
	}
	return s
}

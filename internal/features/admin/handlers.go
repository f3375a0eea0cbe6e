// Package admin — handlers.go обрабатывает взаимодействие с админ-панелью.
// Панель работает через Reply Keyboard в личных сообщениях.
// Поток: /login → пароль → клавиатура → действие (с подтверждением, если оно меняет данные).
package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/habit-tracker/internal/common"
	"serotonyl.ru/habit-tracker/internal/features/habits"
	"serotonyl.ru/habit-tracker/internal/features/members"
)

// Кнопки клавиатуры
const (
	buttonSeed   = "Демо-данные"
	buttonRating = "Рейтинг"
	buttonLogout = "Выйти"
)

// Handler обрабатывает админ-команды.
type Handler struct {
	service       *Service
	memberService *members.Service
	bot           *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик админ-панели.
func NewHandler(service *Service, memberService *members.Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{
		service:       service,
		memberService: memberService,
		bot:           bot,
	}
}

// HandleLogin — /login [пароль] в личке.
func (h *Handler) HandleLogin(ctx context.Context, chatID, userID int64, args []string) {
	if !h.service.IsAdmin(userID) {
		h.sendMessage(chatID, "❌ "+common.ErrNotAdmin.Error())
		return
	}
	if len(args) == 0 {
		h.service.SetState(userID, StateAwaitingPassword)
		h.sendMessage(chatID, "🔐 Введите пароль для доступа к админ-панели:")
		return
	}
	h.handlePasswordInput(ctx, chatID, userID, strings.Join(args, " "))
}

// HandleAdminMessage обрабатывает сообщение администратора в DM.
// Возвращает true, если сообщение относилось к админ-панели.
func (h *Handler) HandleAdminMessage(ctx context.Context, chatID, userID int64, text string) bool {
	if !h.service.IsAdmin(userID) {
		return false
	}
	text = strings.TrimSpace(text)

	state := h.service.GetState(userID)
	if state != nil && state.State == StateAwaitingPassword {
		h.handlePasswordInput(ctx, chatID, userID, text)
		return true
	}

	if !isPanelText(text) && (state == nil || state.State == StateNone) {
		return false
	}

	if !h.service.HasActiveSession(ctx, userID) {
		h.service.SetState(userID, StateAwaitingPassword)
		h.sendMessage(chatID, "🔐 Введите пароль для доступа к админ-панели:")
		return true
	}
	h.service.Touch(ctx, userID)

	if state != nil && state.State == StateConfirmSeed {
		h.handleSeedConfirm(ctx, chatID, userID, text)
		return true
	}

	switch text {
	case buttonSeed:
		h.service.SetState(userID, StateConfirmSeed)
		h.sendMessage(chatID, fmt.Sprintf(
			"Загрузить в ваш аккаунт %d демо-привычек с историей отметок? Ответьте «да» или «нет».",
			len(habits.DemoHabits)))
	case buttonRating:
		h.handleRating(ctx, chatID)
	case buttonLogout:
		if err := h.service.Logout(ctx, userID); err != nil {
			log.WithError(err).WithField("user_id", userID).Error("Ошибка выхода из админки")
		}
		msg := tgbotapi.NewMessage(chatID, "👋 Сессия завершена")
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
		h.send(msg)
	default:
		h.showKeyboard(chatID)
	}
	return true
}

// handlePasswordInput обрабатывает ввод пароля.
func (h *Handler) handlePasswordInput(ctx context.Context, chatID, userID int64, password string) {
	h.service.ClearState(userID)

	if err := h.service.Login(ctx, userID, password); err != nil {
		switch {
		case errors.Is(err, common.ErrWrongPassword),
			errors.Is(err, common.ErrTooManyAttempts),
			errors.Is(err, common.ErrNotAdmin):
			h.sendMessage(chatID, "❌ "+err.Error())
		default:
			log.WithError(err).WithField("user_id", userID).Error("Ошибка входа в админку")
			h.sendMessage(chatID, "❌ Не удалось войти, попробуйте позже")
		}
		return
	}

	h.sendMessage(chatID, "✅ Аутентификация успешна!")
	h.showKeyboard(chatID)
}

func (h *Handler) handleSeedConfirm(ctx context.Context, chatID, userID int64, text string) {
	h.service.ClearState(userID)

	if strings.ToLower(text) != "да" {
		h.sendMessage(chatID, "Отменено")
		return
	}

	created, err := h.service.SeedDemo(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка загрузки демо-данных")
		h.sendMessage(chatID, fmt.Sprintf("❌ Загружено %d из %d привычек, дальше ошибка",
			len(created), len(habits.DemoHabits)))
		return
	}
	h.sendMessage(chatID, fmt.Sprintf("✅ Загружено %d %s. Посмотреть: !привычки",
		len(created), common.PluralizeHabits(len(created))))
}

func (h *Handler) handleRating(ctx context.Context, chatID int64) {
	rating, err := h.service.Rating(ctx)
	if err != nil {
		log.WithError(err).Error("Ошибка построения рейтинга")
		h.sendMessage(chatID, "❌ Не удалось построить рейтинг")
		return
	}
	if len(rating) == 0 {
		h.sendMessage(chatID, "🏆 Рейтинг пуст: отметок ещё нет")
		return
	}

	var sb strings.Builder
	sb.WriteString("🏆 Самые длинные серии:\n\n")
	for _, e := range rating {
		sb.WriteString(fmt.Sprintf("%s — «%s», %s\n",
			h.memberService.DisplayName(ctx, e.Habit.UserID),
			e.Habit.Name,
			common.FormatPeriods(e.Streak, e.Habit.Cadence)))
	}
	h.sendMessage(chatID, sb.String())
}

// showKeyboard отображает клавиатуру админ-панели.
func (h *Handler) showKeyboard(chatID int64) {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonSeed),
			tgbotapi.NewKeyboardButton(buttonRating),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonLogout),
		),
	)

	msg := tgbotapi.NewMessage(chatID, "✅ Админ-панель открыта")
	msg.ReplyMarkup = keyboard
	h.send(msg)
}

func (h *Handler) sendMessage(chatID int64, text string) {
	h.send(tgbotapi.NewMessage(chatID, text))
}

func (h *Handler) send(msg tgbotapi.MessageConfig) {
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", msg.ChatID).Error("Ошибка отправки сообщения")
	}
}

// isPanelText — текст кнопки или слово, открывающее панель.
func isPanelText(text string) bool {
	switch strings.ToLower(text) {
	case strings.ToLower(buttonSeed), strings.ToLower(buttonRating), strings.ToLower(buttonLogout),
		"админ", "панель":
		return true
	}
	return false
}

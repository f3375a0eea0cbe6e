// Package habits — format.go превращает отчёты в текст для Telegram.
package habits

import (
	"fmt"
	"strings"

	"serotonyl.ru/habit-tracker/internal/common"
	"serotonyl.ru/habit-tracker/internal/features/streak"
)

// CadenceText — периодичность по-русски.
func CadenceText(cadence string) string {
	switch cadence {
	case "daily":
		return "ежедневно"
	case "weekly":
		return "еженедельно"
	case "monthly":
		return "ежемесячно"
	}
	return cadence
}

// StatusText — статус последней отметки по-русски.
func StatusText(st streak.Status) string {
	switch st {
	case streak.StatusCompleted:
		return "✅ серия продолжается"
	case streak.StatusAlreadyLogged:
		return "☑️ в этом периоде уже отмечено"
	case streak.StatusBroken:
		return "💔 серия прерывалась"
	case streak.StatusNoData:
		return "⏳ отметок пока нет"
	}
	return st.String()
}

// FormatHabitLine — "#3 Work Out (еженедельно) — Functional Fitness".
func FormatHabitLine(h *Habit) string {
	line := fmt.Sprintf("#%d %s (%s)", h.ID, h.Name, CadenceText(h.Cadence))
	if h.Description != "" {
		line += " — " + h.Description
	}
	return line
}

// FormatHabitList — список привычек, по одной на строку.
func FormatHabitList(list []*Habit) string {
	if len(list) == 0 {
		return "У вас пока нет привычек. Создайте первую: !новая daily Зарядка"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 %d %s:\n\n", len(list), common.PluralizeHabits(len(list))))
	for _, h := range list {
		sb.WriteString(FormatHabitLine(h))
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatReport — подробный отчёт по одной привычке.
func FormatReport(r *Report) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🔥 %s\n", FormatHabitLine(r.Habit)))

	if r.Err != nil {
		sb.WriteString("⚠️ Не удалось посчитать серию: в истории есть некорректные отметки")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("Текущая серия: %s\n", common.FormatPeriods(r.Current.Count, r.Habit.Cadence)))
	sb.WriteString(fmt.Sprintf("Лучшая серия: %s\n", common.FormatPeriods(r.Longest, r.Habit.Cadence)))
	sb.WriteString(fmt.Sprintf("Статус: %s\n", StatusText(r.Current.Status)))
	sb.WriteString(fmt.Sprintf("Всего отметок: %d", r.Checkoffs))
	if r.LastCheckoff != "" {
		sb.WriteString(fmt.Sprintf("\nПоследняя: %s", r.LastCheckoff))
	}
	return sb.String()
}

// FormatCheckoff — ответ на отметку выполнения.
func FormatCheckoff(r *Report) string {
	switch r.Current.Status {
	case streak.StatusAlreadyLogged:
		return fmt.Sprintf("☑️ «%s»: в этом периоде уже отмечено. Серия: %s",
			r.Habit.Name, common.FormatPeriods(r.Current.Count, r.Habit.Cadence))
	case streak.StatusBroken:
		return fmt.Sprintf("🌱 «%s»: серия прервалась, начинаем заново. Лучшая была %s",
			r.Habit.Name, common.FormatPeriods(r.Longest, r.Habit.Cadence))
	}
	return fmt.Sprintf("✅ «%s» отмечено! Серия: %s",
		r.Habit.Name, common.FormatPeriods(r.Current.Count, r.Habit.Cadence))
}

// FormatLongest — рекорд среди привычек.
func FormatLongest(res streak.AggregateResult, names []string) string {
	if len(res.HabitIDs) == 0 {
		return "🏆 Рекордов пока нет: ни одной отметки"
	}
	return fmt.Sprintf("🏆 Рекорд: %d (%s)", res.MaxStreak, strings.Join(names, ", "))
}

// FormatOverview — сводка по всем привычкам с рекордом в конце.
func FormatOverview(ov *Overview) string {
	if len(ov.Reports) == 0 {
		return FormatHabitList(nil)
	}

	var sb strings.Builder
	sb.WriteString("📊 Ваши привычки:\n\n")
	for _, r := range ov.Reports {
		if r.Err != nil {
			sb.WriteString(fmt.Sprintf("#%d %s — ⚠️ ошибка в данных\n", r.Habit.ID, r.Habit.Name))
			continue
		}
		sb.WriteString(fmt.Sprintf("#%d %s — %s (лучшая %d)\n",
			r.Habit.ID, r.Habit.Name,
			common.FormatPeriods(r.Current.Count, r.Habit.Cadence), r.Longest))
	}
	sb.WriteString("\n")
	sb.WriteString(FormatLongest(ov.Longest, ov.Names))
	return sb.String()
}

// FormatReminder — напоминание о сериях, которые сгорят без отметки сегодня.
func FormatReminder(due []*Report) string {
	var sb strings.Builder
	sb.WriteString("⏰ Не забудьте отметиться сегодня, иначе серия прервётся:\n\n")
	for _, r := range due {
		sb.WriteString(fmt.Sprintf("#%d %s — %s подряд\n",
			r.Habit.ID, r.Habit.Name, common.FormatPeriods(r.Current.Count, r.Habit.Cadence)))
	}
	sb.WriteString("\nОтметить: !отметить <id>")
	return sb.String()
}

// Package common — pluralize.go содержит функции
// для правильного склонения русских числительных.
package common

import "fmt"

// Pluralize выбирает форму слова для числа n.
//
// Правила русского языка:
//   - n%10==1 И n%100!=11 → one (1, 21, 31, 101, ...)
//   - n%10 в [2,3,4] И n%100 НЕ в [12,13,14] → few (2, 3, 4, 22, 23, ...)
//   - Остальные случаи → many (0, 5-20, 25-30, 100, ...)
//
// Пример:
//
//	Pluralize(21, "день", "дня", "дней") → "день"
func Pluralize(n int, one, few, many string) string {
	if n < 0 {
		n = -n
	}
	lastDigit := n % 10
	lastTwoDigits := n % 100

	// Единственное число: 1, 21, 31, 101 (но НЕ 11, 111)
	if lastDigit == 1 && lastTwoDigits != 11 {
		return one
	}
	// Малое множественное: 2-4, 22-24, 32-34 (но НЕ 12-14)
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return few
	}
	return many
}

// PluralizeDays возвращает правильную форму слова «день» для числа n.
func PluralizeDays(n int) string {
	return Pluralize(n, "день", "дня", "дней")
}

// PluralizeWeeks возвращает правильную форму слова «неделя» для числа n.
func PluralizeWeeks(n int) string {
	return Pluralize(n, "неделя", "недели", "недель")
}

// PluralizeMonths возвращает правильную форму слова «месяц» для числа n.
func PluralizeMonths(n int) string {
	return Pluralize(n, "месяц", "месяца", "месяцев")
}

// PluralizeHabits возвращает правильную форму слова «привычка» для числа n.
func PluralizeHabits(n int) string {
	return Pluralize(n, "привычка", "привычки", "привычек")
}

// FormatPeriods создаёт строку вида "5 дней" / "3 недели" / "1 месяц"
// в зависимости от периодичности привычки ("daily", "weekly", "monthly").
// Для неизвестной периодичности — просто число.
//
// Примеры:
//
//	FormatPeriods(26, "daily")   → "26 дней"
//	FormatPeriods(7, "weekly")   → "7 недель"
//	FormatPeriods(1, "monthly")  → "1 месяц"
func FormatPeriods(n int, cadence string) string {
	switch cadence {
	case "daily":
		return fmt.Sprintf("%d %s", n, PluralizeDays(n))
	case "weekly":
		return fmt.Sprintf("%d %s", n, PluralizeWeeks(n))
	case "monthly":
		return fmt.Sprintf("%d %s", n, PluralizeMonths(n))
	}
	return fmt.Sprintf("%d", n)
}

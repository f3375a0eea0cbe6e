// Package common содержит общие утилиты, используемые во всём проекте.
// Сюда входят: русская плюрализация, работа с часовым поясом приложения.
package common

import (
	"time"
)

// appLocation — часовой пояс приложения (APP_TIMEZONE).
// Пока SetLocation не вызван, используется Москва.
var appLocation = moscow()

func moscow() *time.Location {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		// Если не удалось загрузить — используем UTC+3 вручную
		loc = time.FixedZone("MSK", 3*60*60)
	}
	return loc
}

// LoadLocation загружает часовой пояс по имени из tzdata.
// Пустое имя — Москва. Ошибка возвращается как есть, чтобы конфиг мог её показать.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return moscow(), nil
	}
	return time.LoadLocation(name)
}

// SetLocation задаёт часовой пояс приложения. Вызывается один раз при старте.
func SetLocation(loc *time.Location) {
	if loc != nil {
		appLocation = loc
	}
}

// Location возвращает часовой пояс приложения.
func Location() *time.Location {
	return appLocation
}

// Now возвращает текущее время в часовом поясе приложения.
// Все отметки привычек пишутся именно в нём.
func Now() time.Time {
	return time.Now().In(appLocation)
}

// Today возвращает только дату (без времени) в часовом поясе приложения.
func Today() time.Time {
	return StartOfDay(Now())
}

// StartOfDay обрезает время до полуночи в том же часовом поясе.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay — true, если a и b приходятся на один календарный день в часовом поясе приложения.
func SameDay(a, b time.Time) bool {
	a, b = a.In(appLocation), b.In(appLocation)
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// FormatDateTime форматирует время в формат "02.01.2006 15:04" (день.месяц.год часы:минуты).
// Используется для отображения отметок пользователю.
func FormatDateTime(t time.Time) string {
	return t.In(appLocation).Format("02.01.2006 15:04")
}

// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях бота и CLI.
// Эти ошибки позволяют обработчикам различать типы проблем
// и отправлять пользователю понятные сообщения.
package common

import "errors"

// Ошибки привычек
var (
	// ErrHabitNotFound — привычки с таким ID нет
	ErrHabitNotFound = errors.New("привычка не найдена")
	// ErrInvalidHabit — пустое название или неизвестная периодичность
	ErrInvalidHabit = errors.New("некорректные данные привычки")
	// ErrNotHabitOwner — попытка изменить чужую привычку
	ErrNotHabitOwner = errors.New("это не ваша привычка")
	// ErrUserNotFound — пользователь не найден в базе
	ErrUserNotFound = errors.New("пользователь не найден")
)

// Ошибки админки
var (
	// ErrNotAdmin — пользователь не является администратором
	ErrNotAdmin = errors.New("у вас нет прав администратора")
	// ErrWrongPassword — неверный пароль
	ErrWrongPassword = errors.New("неверный пароль")
	// ErrTooManyAttempts — слишком много неудачных попыток входа
	ErrTooManyAttempts = errors.New("слишком много попыток, подождите 1 час")
	// ErrSessionExpired — сессия истекла
	ErrSessionExpired = errors.New("сессия истекла, авторизуйтесь заново")
)

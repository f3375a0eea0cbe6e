// Package streak вычисляет серии (стрики) выполнения привычек по журналу отметок.
// models.go описывает периодичность, переходы, статусы и результаты расчёта.
//
// Пакет не ходит в БД и не пишет логи: на вход он получает снимок отметок
// одной привычки, на выходе отдаёт текущую серию, статус и рекорд.
package streak

import (
	"fmt"
	"strings"
)

// Cadence — периодичность привычки. Задаётся при создании и больше не меняется.
type Cadence int

const (
	Daily   Cadence = iota + 1 // каждый день
	Weekly                     // каждую ISO-неделю
	Monthly                    // каждый календарный месяц
)

// ParseCadence разбирает строковое значение периодичности из хранилища.
// Регистр и пробелы по краям не важны.
//
// Примеры:
//
//	ParseCadence("daily")   → Daily
//	ParseCadence(" Weekly") → Weekly
//	ParseCadence("yearly")  → *UnsupportedCadenceError
func ParseCadence(s string) (Cadence, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily":
		return Daily, nil
	case "weekly":
		return Weekly, nil
	case "monthly":
		return Monthly, nil
	}
	return 0, &UnsupportedCadenceError{Value: s}
}

// String возвращает значение в том виде, в каком оно хранится в БД.
func (c Cadence) String() string {
	switch c {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	}
	return fmt.Sprintf("cadence(%d)", int(c))
}

// Transition — классификация очередной отметки относительно якоря.
type Transition int

const (
	InTime        Transition = iota + 1 // отметка в следующем периоде, серия растёт
	AlreadyLogged                       // период уже закрыт, отметка лишняя
	Broken                              // пропущен период, серия начинается заново
)

func (t Transition) String() string {
	switch t {
	case InTime:
		return "in_time"
	case AlreadyLogged:
		return "already_logged"
	case Broken:
		return "broken"
	}
	return fmt.Sprintf("transition(%d)", int(t))
}

// Status — статус последней отметки, который видят вызывающие.
// Числовые коды совпадают с теми, что ждут слои отображения.
type Status int

const (
	StatusNoData        Status = -1 // отметок нет совсем
	StatusCompleted     Status = 1  // последняя отметка продлила серию
	StatusAlreadyLogged Status = 2  // последняя отметка попала в уже закрытый период
	StatusBroken        Status = 3  // серия была прервана
)

// Code возвращает числовой код статуса для слоёв отображения.
func (s Status) Code() int { return int(s) }

func (s Status) String() string {
	switch s {
	case StatusNoData:
		return "no_data"
	case StatusCompleted:
		return "completed"
	case StatusAlreadyLogged:
		return "already_logged"
	case StatusBroken:
		return "broken"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Mode — какую серию вернуть: текущую или максимальную.
type Mode int

const (
	Current Mode = iota
	Maximum
)

func (m Mode) String() string {
	if m == Maximum {
		return "maximum"
	}
	return "current"
}

// Result — результат расчёта одной привычки.
// В режиме Maximum Status всё равно описывает последнюю отметку (как и в режиме Current).
type Result struct {
	Count  int
	Status Status
}

// Snapshot — снимок одной привычки для агрегатора: id, периодичность
// в виде строки из БД и отметки в порядке хранения.
type Snapshot struct {
	HabitID   int64
	Cadence   string
	Checkoffs []string
}

// AggregateResult — рекорд среди всех привычек.
// HabitIDs идут в порядке хранения привычек; Failures — привычки, которые не удалось посчитать.
type AggregateResult struct {
	HabitIDs  []int64
	MaxStreak int
	Failures  []*HabitFailure
}

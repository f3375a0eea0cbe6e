// Package streak — errors.go описывает ошибки расчёта серий.
// Все ошибки типизированы, чтобы вызывающие могли различать их через errors.As.
package streak

import (
	"errors"
	"fmt"
)

// ParseError — отметка не разбирается по формату времени.
// Прерывает расчёт только этой привычки.
type ParseError struct {
	Index int    // позиция в исходном журнале (с нуля, без сторожевой даты)
	Value string // исходная строка
	Err   error  // ошибка time.Parse
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("некорректная отметка #%d %q: %v", e.Index, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UnsupportedCadenceError — периодичность привычки не daily/weekly/monthly.
type UnsupportedCadenceError struct {
	Value string
}

func (e *UnsupportedCadenceError) Error() string {
	return fmt.Sprintf("неподдерживаемая периодичность %q", e.Value)
}

// HabitFailure — ошибка расчёта одной привычки внутри агрегации.
type HabitFailure struct {
	HabitID int64
	Err     error
}

func (e *HabitFailure) Error() string {
	return fmt.Sprintf("привычка %d: %v", e.HabitID, e.Err)
}

func (e *HabitFailure) Unwrap() error { return e.Err }

// Err объединяет все ошибки агрегации в одну; nil, если все привычки посчитались.
func (r AggregateResult) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}

// Package streak — normalizer.go превращает сырые строки отметок в моменты времени.
package streak

import (
	"sort"
	"time"
)

// DefaultLayout — формат отметки в хранилище: "YYYY-MM-DD HH:MM:SS".
const DefaultLayout = "2006-01-02 15:04:05"

// Sentinel возвращает сторожевую дату далеко в прошлом (03.04.1990 00:00:01).
// Она стоит первой в каждой нормализованной последовательности, чтобы
// первая настоящая отметка проходила через те же правила, что и остальные.
func Sentinel(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(1990, time.April, 3, 0, 0, 1, 0, loc)
}

// Normalizer разбирает отметки одной привычки.
type Normalizer struct {
	Layout   string         // формат времени; пустой = DefaultLayout
	Location *time.Location // часовой пояс, в котором записаны отметки; nil = UTC
	// Sort включает сортировку по времени. По умолчанию выключено:
	// порядок гарантирует хранилище, а сортировка меняет результат на неупорядоченных данных.
	Sort bool
}

// Normalize возвращает [sentinel, t1, t2, ..., tn].
// Без Sort порядок и дубликаты сохраняются как есть.
func (n Normalizer) Normalize(raw []string) ([]time.Time, error) {
	layout := n.Layout
	if layout == "" {
		layout = DefaultLayout
	}
	loc := n.Location
	if loc == nil {
		loc = time.UTC
	}

	out := make([]time.Time, 0, len(raw)+1)
	out = append(out, Sentinel(loc))
	for i, s := range raw {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			return nil, &ParseError{Index: i, Value: s, Err: err}
		}
		out = append(out, t)
	}

	if n.Sort {
		// сторожевая дата всегда остаётся первой
		tail := out[1:]
		sort.SliceStable(tail, func(i, j int) bool { return tail[i].Before(tail[j]) })
	}
	return out, nil
}

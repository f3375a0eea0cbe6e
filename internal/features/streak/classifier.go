// Package streak — classifier.go содержит правила перехода между периодами
// для каждой периодичности: день, ISO-неделя, календарный месяц.
package streak

import "time"

// DefaultMinGap — минимальный интервал между отметками, чтобы переход
// через границу периода засчитался (две отметки в 23:50 и 00:10 — это одна).
const DefaultMinGap = 4 * time.Hour

// Rules — общие параметры классификаторов.
type Rules struct {
	MinGap   time.Duration // защитный интервал, одинаковый для всех периодичностей
	Sentinel time.Time     // сторожевая дата нормализатора
}

// Classifier сравнивает якорь и очередную отметку.
type Classifier interface {
	Classify(anchor, candidate time.Time) Transition
}

// NewClassifier возвращает классификатор для периодичности c.
func NewClassifier(c Cadence, r Rules) (Classifier, error) {
	switch c {
	case Daily:
		return DailyClassifier{Rules: r}, nil
	case Weekly:
		return WeeklyClassifier{Rules: r}, nil
	case Monthly:
		return MonthlyClassifier{Rules: r}, nil
	}
	return nil, &UnsupportedCadenceError{Value: c.String()}
}

// DailyClassifier — ежедневные привычки.
//
//   - тот же календарный день → AlreadyLogged
//   - день раньше якоря → Broken
//   - ровно следующий день и прошло ≥ MinGap → InTime
//   - прошло < MinGap → AlreadyLogged
//   - иначе (пропущен день и больше) → Broken
type DailyClassifier struct {
	Rules
}

func (c DailyClassifier) Classify(anchor, candidate time.Time) Transition {
	days := calendarDays(anchor, candidate)
	elapsed := candidate.Sub(anchor)

	switch {
	case days == 0:
		return AlreadyLogged
	case days < 0:
		return Broken
	case days == 1 && elapsed >= c.MinGap:
		return InTime
	case elapsed < c.MinGap:
		return AlreadyLogged
	default:
		return Broken
	}
}

// WeeklyClassifier — еженедельные привычки по ISO-неделям.
// Переход через год проверяется отдельно: неделя 1 засчитывается, только если
// якорь + 7 дней попадает именно в неё (в годах бывает 52 или 53 недели).
type WeeklyClassifier struct {
	Rules
}

func (c WeeklyClassifier) Classify(anchor, candidate time.Time) Transition {
	ay, aw := anchor.ISOWeek()
	cy, cw := candidate.ISOWeek()
	elapsed := candidate.Sub(anchor)

	switch {
	case cy == ay:
		switch {
		case cw == aw:
			return AlreadyLogged
		case cw == aw+1 && elapsed >= c.MinGap:
			return InTime
		case cw == aw+1:
			return AlreadyLogged
		default:
			// неделя ушла вперёд больше чем на одну или отметка из прошлого
			return Broken
		}

	case cy == ay+1:
		if cw == aw {
			return AlreadyLogged
		}
		ny, nw := anchor.AddDate(0, 0, 7).ISOWeek()
		if cw == 1 && elapsed >= c.MinGap && ny == cy && nw == cw {
			return InTime
		}
		return Broken
	}
	return Broken
}

// MonthlyClassifier — ежемесячные привычки.
// На переходе декабрь → январь MinGap не проверяется (так исторически считали серии).
// TODO: согласовать MinGap на переходе декабрь → январь с остальными ветками, когда появятся реальные данные.
type MonthlyClassifier struct {
	Rules
}

func (c MonthlyClassifier) Classify(anchor, candidate time.Time) Transition {
	if anchor.Equal(c.Sentinel) {
		// самая первая отметка: серия начинается с 1
		return InTime
	}

	am, cm := anchor.Month(), candidate.Month()
	elapsed := candidate.Sub(anchor)

	switch {
	case candidate.Year() == anchor.Year():
		switch {
		case cm == am:
			return AlreadyLogged
		case cm == am+1 && elapsed >= c.MinGap:
			return InTime
		case cm == am+1:
			return AlreadyLogged
		default:
			return Broken
		}

	case candidate.Year() == anchor.Year()+1:
		if cm == time.January {
			return InTime
		}
		return Broken
	}
	return Broken
}

// calendarDays — разница в календарных днях между датами a и b.
// Считается по UTC-полуночи, чтобы переход на летнее время не давал 23-часовых суток.
func calendarDays(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

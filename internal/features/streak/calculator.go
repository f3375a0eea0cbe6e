// Package streak — calculator.go собирает нормализатор, классификатор и автомат
// в один вызов на привычку, плюс агрегацию рекорда по всем привычкам.
package streak

import "time"

// Options — настройки расчёта. Приходят из конфигурации приложения.
type Options struct {
	MinGap        time.Duration  // защитный интервал между отметками
	Layout        string         // формат отметок в хранилище
	Location      *time.Location // часовой пояс отметок
	SortCheckoffs bool           // сортировать ли отметки перед расчётом
}

// DefaultOptions — 4 часа, "YYYY-MM-DD HH:MM:SS", UTC, без сортировки.
func DefaultOptions() Options {
	return Options{
		MinGap:   DefaultMinGap,
		Layout:   DefaultLayout,
		Location: time.UTC,
	}
}

// Calculator считает серии привычек. Безопасен для параллельного использования:
// состояния между вызовами нет.
type Calculator struct {
	normalizer Normalizer
	minGap     time.Duration
}

// NewCalculator создаёт калькулятор с явно переданными настройками.
func NewCalculator(opts Options) *Calculator {
	return &Calculator{
		normalizer: Normalizer{
			Layout:   opts.Layout,
			Location: opts.Location,
			Sort:     opts.SortCheckoffs,
		},
		minGap: opts.MinGap,
	}
}

// MinGap возвращает защитный интервал, с которым работает калькулятор.
func (c *Calculator) MinGap() time.Duration { return c.minGap }

// Calculate возвращает текущую или максимальную серию привычки.
//
// Параметры:
//   - cadence: периодичность как в БД ("daily", "weekly", "monthly")
//   - raw: отметки в порядке хранения
//   - mode: Current или Maximum
//
// Возвращает:
//   - Result{0, StatusNoData}, если отметок нет
//   - *UnsupportedCadenceError или *ParseError при некорректных данных
func (c *Calculator) Calculate(cadence string, raw []string, mode Mode) (Result, error) {
	current, maximum, err := c.CalculateBoth(cadence, raw)
	if err != nil {
		return Result{}, err
	}
	if mode == Maximum {
		return maximum, nil
	}
	return current, nil
}

// CalculateBoth за один проход возвращает и текущую, и максимальную серии.
func (c *Calculator) CalculateBoth(cadence string, raw []string) (current, maximum Result, err error) {
	cad, err := ParseCadence(cadence)
	if err != nil {
		return Result{}, Result{}, err
	}

	if len(raw) == 0 {
		none := Result{Count: 0, Status: StatusNoData}
		return none, none, nil
	}

	seq, err := c.normalizer.Normalize(raw)
	if err != nil {
		return Result{}, Result{}, err
	}

	sentinel := seq[0]
	classifier, err := NewClassifier(cad, Rules{MinGap: c.minGap, Sentinel: sentinel})
	if err != nil {
		return Result{}, Result{}, err
	}

	acc := NewAccumulator(classifier, sentinel)
	acc.Walk(seq)
	return acc.Current(), acc.Max(), nil
}

// Aggregate ищет рекорд среди всех привычек.
// Больший рекорд сбрасывает список, равный — дописывается в конец, меньший игнорируется.
// Ошибка одной привычки не прерывает агрегацию: она попадает в Failures, остальные считаются.
func (c *Calculator) Aggregate(snapshots []Snapshot) AggregateResult {
	res := AggregateResult{HabitIDs: []int64{}}

	for _, s := range snapshots {
		best, err := c.Calculate(s.Cadence, s.Checkoffs, Maximum)
		if err != nil {
			res.Failures = append(res.Failures, &HabitFailure{HabitID: s.HabitID, Err: err})
			continue
		}

		switch {
		case best.Count > res.MaxStreak:
			res.MaxStreak = best.Count
			res.HabitIDs = []int64{s.HabitID}
		case best.Count == res.MaxStreak && best.Count > 0:
			res.HabitIDs = append(res.HabitIDs, s.HabitID)
		}
	}
	return res
}

// Package streak — accumulator.go проходит по отметкам и считает серию.
package streak

import "time"

// Accumulator — конечный автомат подсчёта серии.
// Состояние: якорь, текущая серия, рекорд и статус последней отметки.
// Автомат не хранит ничего между вызовами: каждый запрос прогоняет всю историю заново.
type Accumulator struct {
	classifier Classifier
	sentinel   time.Time

	anchor   time.Time
	count    int
	maxCount int
	status   Status
}

// NewAccumulator создаёт автомат в начальном состоянии {sentinel, 0, 0, NoData}.
func NewAccumulator(classifier Classifier, sentinel time.Time) *Accumulator {
	return &Accumulator{
		classifier: classifier,
		sentinel:   sentinel,
		anchor:     sentinel,
		status:     StatusNoData,
	}
}

// Step обрабатывает одну отметку.
//
//   - InTime: серия +1, статус Completed, якорь сдвигается
//   - AlreadyLogged: меняется только статус
//   - Broken: серия = 1, якорь сдвигается; самая первая отметка не считается прерыванием
func (a *Accumulator) Step(t time.Time) Transition {
	tr := a.classifier.Classify(a.anchor, t)

	switch tr {
	case InTime:
		a.count++
		a.status = StatusCompleted
		a.anchor = t
	case AlreadyLogged:
		a.status = StatusAlreadyLogged
	case Broken:
		if a.anchor.Equal(a.sentinel) {
			a.status = StatusCompleted
		} else {
			a.status = StatusBroken
		}
		a.count = 1
		a.anchor = t
	}

	if a.count > a.maxCount {
		a.maxCount = a.count
	}
	return tr
}

// Walk прогоняет нормализованную последовательность. Первый элемент — сторожевая дата, он пропускается.
func (a *Accumulator) Walk(seq []time.Time) {
	if len(seq) == 0 {
		return
	}
	for _, t := range seq[1:] {
		a.Step(t)
	}
}

// Current — текущая серия и статус последней отметки.
func (a *Accumulator) Current() Result {
	return Result{Count: a.count, Status: a.status}
}

// Max — лучшая серия; статус тот же, что у текущей.
func (a *Accumulator) Max() Result {
	return Result{Count: a.maxCount, Status: a.status}
}

package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// blockedIntervals строит и склеивает буферизованные интервалы занятости
// Кандидаты приходят отсортированными по началу, буфер сохраняет порядок
func blockedIntervals(appointments []domain.AppointmentSummary, bufferMinutes int) []domain.Interval {
	intervals := make([]domain.Interval, 0, len(appointments))
	for _, apt := range appointments {
		intervals = append(intervals, apt.BufferedInterval(bufferMinutes))
	}
	return domain.MergeSorted(intervals)
}

// generateSlots обходит рабочий день с шагом stepMinutes и отбирает начала,
// для которых буферизованный интервал слота не задевает занятое время
// Слот проверяется той же интервальной арифметикой, что и создание записи,
// поэтому каждый выданный слот гарантированно проходит проверку при брони
//
// dayStart и dayEnd в таймзоне бизнеса; notBefore отсекает слоты, начинающиеся
// строго раньше указанного момента (floor "сейчас" для сегодняшней даты)
func generateSlots(
	dayStart, dayEnd time.Time,
	stepMinutes, durationMinutes, bufferMinutes int,
	blocked []domain.Interval,
	notBefore *time.Time,
) []time.Time {
	step := time.Duration(stepMinutes) * time.Minute
	duration := time.Duration(durationMinutes) * time.Minute

	slots := make([]time.Time, 0)
	for cur := dayStart; !cur.Add(duration).After(dayEnd); cur = cur.Add(step) {
		if notBefore != nil && cur.Before(*notBefore) {
			continue
		}

		candidate := domain.NewInterval(cur, durationMinutes).Buffered(bufferMinutes)
		if overlapsAny(candidate, blocked) {
			continue
		}

		slots = append(slots, cur)
	}

	return slots
}

// overlapsAny возвращает true при пересечении хотя бы с одним интервалом
// blocked отсортирован и склеен, поэтому после первого интервала правее
// кандидата дальше можно не смотреть
func overlapsAny(candidate domain.Interval, blocked []domain.Interval) bool {
	for _, b := range blocked {
		if !b.Start.Before(candidate.End) {
			break
		}
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}

package domain

import "time"

// Interval полуоткрытый временной интервал [Start, End) в UTC
// Вся интервальная арифметика выполняется в одной опорной зоне (UTC);
// значение без явного смещения считается уже приведённым к ней
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval строит интервал из времени начала и длительности в минутах
func NewInterval(start time.Time, durationMinutes int) Interval {
	s := start.UTC()
	return Interval{
		Start: s,
		End:   s.Add(time.Duration(durationMinutes) * time.Minute),
	}
}

// Buffered возвращает интервал, расширенный симметричным буфером в минутах
func (i Interval) Buffered(bufferMinutes int) Interval {
	buf := time.Duration(bufferMinutes) * time.Minute
	return Interval{
		Start: i.Start.Add(-buf),
		End:   i.End.Add(buf),
	}
}

// Overlaps возвращает true, если интервалы действительно пересекаются
// Строгие неравенства: соприкасающиеся границы (A.End == B.Start) - не конфликт
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// MergeSorted склеивает отсортированные по Start интервалы
// Пересекающиеся и соприкасающиеся (next.Start <= current.End) объединяются
func MergeSorted(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return []Interval{}
	}

	merged := make([]Interval, 0, len(intervals))
	merged = append(merged, intervals[0])

	for _, current := range intervals[1:] {
		last := &merged[len(merged)-1]
		if !current.Start.After(last.End) {
			if current.End.After(last.End) {
				last.End = current.End
			}
		} else {
			merged = append(merged, current)
		}
	}

	return merged
}

// EffectiveWindow возвращает календарное окно, покрывающее интервал:
// windowStart - полночь UTC дня начала (inclusive),
// windowEnd - полночь UTC дня, следующего за днём конца (exclusive)
// Буфер может вытолкнуть окно через полночь, поэтому окно шире самого интервала
func (i Interval) EffectiveWindow() (windowStart, windowEnd time.Time) {
	windowStart = midnightUTC(i.Start)
	windowEnd = midnightUTC(i.End).AddDate(0, 0, 1)
	return windowStart, windowEnd
}

// Days возвращает все календарные дни окна интервала по возрастанию
// (полуночи UTC); в зависимости от буфера это 1-3 дня
func (i Interval) Days() []time.Time {
	windowStart, windowEnd := i.EffectiveWindow()

	days := make([]time.Time, 0, 3)
	for d := windowStart; d.Before(windowEnd); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func midnightUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

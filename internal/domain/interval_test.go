package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func TestNewInterval_Buffered(t *testing.T) {
	start := mustTime(t, "2025-10-15T09:00:00Z")

	interval := NewInterval(start, 30).Buffered(15)

	assert.Equal(t, mustTime(t, "2025-10-15T08:45:00Z"), interval.Start)
	assert.Equal(t, mustTime(t, "2025-10-15T09:45:00Z"), interval.End)
}

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name     string
		a        Interval
		b        Interval
		expected bool
	}{
		{
			name:     "real overlap",
			a:        NewInterval(mustTime(t, "2025-10-15T09:00:00Z"), 30).Buffered(15),
			b:        NewInterval(mustTime(t, "2025-10-15T09:45:00Z"), 30).Buffered(15),
			expected: true, // 08:45-09:45 vs 09:30-10:30
		},
		{
			name:     "buffered adjacency is legal",
			a:        NewInterval(mustTime(t, "2025-10-15T09:00:00Z"), 30).Buffered(15),
			b:        NewInterval(mustTime(t, "2025-10-15T10:00:00Z"), 30).Buffered(15),
			expected: false, // 08:45-09:45 vs 09:45-10:45, границы соприкасаются
		},
		{
			name:     "disjoint",
			a:        NewInterval(mustTime(t, "2025-10-15T09:00:00Z"), 30),
			b:        NewInterval(mustTime(t, "2025-10-15T12:00:00Z"), 30),
			expected: false,
		},
		{
			name:     "contained",
			a:        NewInterval(mustTime(t, "2025-10-15T09:00:00Z"), 120),
			b:        NewInterval(mustTime(t, "2025-10-15T09:30:00Z"), 15),
			expected: true,
		},
		{
			name:     "exact same interval",
			a:        NewInterval(mustTime(t, "2025-10-15T09:00:00Z"), 30),
			b:        NewInterval(mustTime(t, "2025-10-15T09:00:00Z"), 30),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Overlaps(tt.b))
			// Симметричность
			assert.Equal(t, tt.expected, tt.b.Overlaps(tt.a))
		})
	}
}

func TestMergeSorted(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, MergeSorted(nil))
	})

	t.Run("overlapping and touching are coalesced", func(t *testing.T) {
		intervals := []Interval{
			NewInterval(mustTime(t, "2025-10-15T09:00:00Z"), 60),
			NewInterval(mustTime(t, "2025-10-15T09:30:00Z"), 60), // overlap
			NewInterval(mustTime(t, "2025-10-15T10:30:00Z"), 30), // touching
			NewInterval(mustTime(t, "2025-10-15T12:00:00Z"), 30), // disjoint
		}

		merged := MergeSorted(intervals)

		require.Len(t, merged, 2)
		assert.Equal(t, mustTime(t, "2025-10-15T09:00:00Z"), merged[0].Start)
		assert.Equal(t, mustTime(t, "2025-10-15T11:00:00Z"), merged[0].End)
		assert.Equal(t, mustTime(t, "2025-10-15T12:00:00Z"), merged[1].Start)
	})

	t.Run("shorter interval inside merged tail keeps the longer end", func(t *testing.T) {
		intervals := []Interval{
			NewInterval(mustTime(t, "2025-10-15T09:00:00Z"), 180),
			NewInterval(mustTime(t, "2025-10-15T09:30:00Z"), 30),
		}

		merged := MergeSorted(intervals)

		require.Len(t, merged, 1)
		assert.Equal(t, mustTime(t, "2025-10-15T12:00:00Z"), merged[0].End)
	})
}

func TestInterval_EffectiveWindow(t *testing.T) {
	t.Run("single day", func(t *testing.T) {
		interval := NewInterval(mustTime(t, "2025-10-15T09:00:00Z"), 30).Buffered(15)

		windowStart, windowEnd := interval.EffectiveWindow()

		assert.Equal(t, mustTime(t, "2025-10-15T00:00:00Z"), windowStart)
		assert.Equal(t, mustTime(t, "2025-10-16T00:00:00Z"), windowEnd)
		assert.Len(t, interval.Days(), 1)
	})

	t.Run("buffer crosses midnight forward", func(t *testing.T) {
		// 23:50 + 30 минут услуги + 30 минут буфера -> окно 23:20-01:10 следующего дня
		interval := NewInterval(mustTime(t, "2025-10-15T23:50:00Z"), 30).Buffered(30)

		windowStart, windowEnd := interval.EffectiveWindow()

		assert.Equal(t, mustTime(t, "2025-10-15T00:00:00Z"), windowStart)
		assert.Equal(t, mustTime(t, "2025-10-17T00:00:00Z"), windowEnd)

		days := interval.Days()
		require.Len(t, days, 2)
		assert.Equal(t, mustTime(t, "2025-10-15T00:00:00Z"), days[0])
		assert.Equal(t, mustTime(t, "2025-10-16T00:00:00Z"), days[1])
	})

	t.Run("buffer crosses midnight backward", func(t *testing.T) {
		interval := NewInterval(mustTime(t, "2025-10-15T00:05:00Z"), 30).Buffered(15)

		days := interval.Days()

		require.Len(t, days, 2)
		assert.Equal(t, mustTime(t, "2025-10-14T00:00:00Z"), days[0])
	})

	t.Run("three day span is ascending", func(t *testing.T) {
		// Длинная услуга через двое суток
		interval := NewInterval(mustTime(t, "2025-10-15T23:00:00Z"), 26*60).Buffered(30)

		days := interval.Days()

		require.Len(t, days, 3)
		for i := 1; i < len(days); i++ {
			assert.True(t, days[i-1].Before(days[i]), "days must be ascending")
		}
	})
}

func TestInterval_MidnightConflict(t *testing.T) {
	// Запись в 23:50 с буфером 30 должна конфликтовать с кандидатом в 00:05 следующего дня
	a := NewInterval(mustTime(t, "2025-10-15T23:50:00Z"), 30).Buffered(30)
	b := NewInterval(mustTime(t, "2025-10-16T00:05:00Z"), 30).Buffered(30)

	assert.True(t, a.Overlaps(b))
}

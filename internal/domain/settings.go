package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// SchedulingSettings настройки расписания бизнеса (одна строка на бизнес)
// Создаются лениво с дефолтами при первом чтении
type SchedulingSettings struct {
	ID                 int64
	BusinessID         int64
	SlotLengthMinutes  int
	BufferTimeMinutes  int
	CancellationHours  int
	WorkingHoursStart  types.TimeString
	WorkingHoursEnd    types.TimeString
	Timezone           string // IANA name
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DefaultSchedulingSettings возвращает настройки по умолчанию для бизнеса
// defaultTimezone приходит из конфигурации процесса
func DefaultSchedulingSettings(businessID int64, defaultTimezone string) *SchedulingSettings {
	return &SchedulingSettings{
		BusinessID:        businessID,
		SlotLengthMinutes: DefaultSlotLengthMinutes,
		BufferTimeMinutes: DefaultBufferTimeMinutes,
		CancellationHours: DefaultCancellationHours,
		WorkingHoursStart: types.TimeString(DefaultWorkingHoursStart),
		WorkingHoursEnd:   types.TimeString(DefaultWorkingHoursEnd),
		Timezone:          defaultTimezone,
	}
}

// HasValidWorkingHours проверяет, что конец рабочего дня позже начала
func (s *SchedulingSettings) HasValidWorkingHours() bool {
	return s.WorkingHoursStart.IsBefore(s.WorkingHoursEnd)
}

// Location возвращает таймзону бизнеса
func (s *SchedulingSettings) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

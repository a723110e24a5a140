package update_appointment

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модель запроса на перенос записи
// nil-поля не изменяются; пустой ServiceIDs сохраняет текущий набор услуг
type Request struct {
	BusinessID    int64
	AppointmentID int64

	StartAt    *time.Time // UTC
	StaffID    *int64
	ServiceIDs []int64
	Notes      *string
}

// Conflict пересекающаяся запись в ответе об ошибке
type Conflict struct {
	AppointmentID   int64     `json:"appointmentId"`
	StartAt         time.Time `json:"startAt"` // UTC
	DurationMinutes int       `json:"durationMinutes"`
}

// ConflictError ошибка конфликта с перечнем пересечений
type ConflictError struct {
	Conflicts []Conflict
}

// Error реализует интерфейс error
func (e *ConflictError) Error() string {
	return ErrTimeSlotConflict.Error()
}

// Unwrap позволяет errors.Is находить ErrTimeSlotConflict
func (e *ConflictError) Unwrap() error {
	return ErrTimeSlotConflict
}

func toConflicts(summaries []domain.AppointmentSummary) []Conflict {
	conflicts := make([]Conflict, 0, len(summaries))
	for _, s := range summaries {
		conflicts = append(conflicts, Conflict{
			AppointmentID:   s.ID,
			StartAt:         s.StartAt,
			DurationMinutes: s.DurationMinutes,
		})
	}
	return conflicts
}

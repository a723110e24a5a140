package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модель запроса на создание записи
type Request struct {
	BusinessID int64
	CustomerID int64
	StaffID    int64
	StartAt    time.Time // UTC
	ServiceIDs []int64
	Notes      *string

	// Status начальный статус записи; пустое значение означает scheduled
	// Публичная самозапись создает записи в статусе pending
	Status domain.AppointmentStatus
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

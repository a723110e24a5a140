package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusRejected  AppointmentStatus = "rejected"
	StatusNoShow    AppointmentStatus = "no_show"
)

// ValidStatuses все допустимые статусы записи
var ValidStatuses = []AppointmentStatus{
	StatusPending,
	StatusScheduled,
	StatusCompleted,
	StatusCancelled,
	StatusRejected,
	StatusNoShow,
}

// IsValid returns true if the status is one of the known values
func (s AppointmentStatus) IsValid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Appointment represents a booked appointment in a staff member's calendar
type Appointment struct {
	ID         int64
	BusinessID int64
	CustomerID int64
	StaffID    int64
	StartAt    time.Time // UTC
	Status     AppointmentStatus

	Notes        *string
	AdminNote    *string
	StaffNote    *string
	CustomerNote *string

	// Связанные услуги (заполняются отдельным запросом)
	Services []AppointmentServiceItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking возвращает true, если запись занимает календарь
// Календарь освобождает только статус cancelled; pending/rejected и прочие блокируют
func (a *Appointment) IsBlocking() bool {
	return a.Status != StatusCancelled
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusScheduled
}

// TotalDurationMinutes суммарная длительность всех услуг записи
func (a *Appointment) TotalDurationMinutes() int {
	total := 0
	for _, s := range a.Services {
		total += s.DurationMinutes
	}
	return total
}

// AppointmentServiceItem услуга, привязанная к записи, со снапшотом цены
type AppointmentServiceItem struct {
	ServiceID       int64
	Name            string
	DurationMinutes int
	Price           float64
}

// AppointmentSummary краткая информация о записи для списка конфликтов
type AppointmentSummary struct {
	ID              int64
	StartAt         time.Time // UTC
	DurationMinutes int
}

// BufferedInterval возвращает буферизованный интервал записи
func (s AppointmentSummary) BufferedInterval(bufferMinutes int) Interval {
	return NewInterval(s.StartAt, s.DurationMinutes).Buffered(bufferMinutes)
}

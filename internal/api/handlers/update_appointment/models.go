package update_appointment

import (
	"time"

	updateAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/update_appointment"
)

// UpdateAppointmentRequest HTTP request model
// Все поля опциональны - обновляются только переданные значения
type UpdateAppointmentRequest struct {
	StartAt    *string `json:"startAt,omitempty"` // RFC3339
	StaffID    *int64  `json:"staffId,omitempty"`
	ServiceIDs []int64 `json:"serviceIds,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateAppointmentRequest) ToUseCaseRequest(businessID, appointmentID int64) (*updateAppointment.Request, error) {
	req := &updateAppointment.Request{
		BusinessID:    businessID,
		AppointmentID: appointmentID,
		StaffID:       r.StaffID,
		ServiceIDs:    r.ServiceIDs,
		Notes:         r.Notes,
	}

	if r.StartAt != nil {
		startAt, err := time.Parse(time.RFC3339, *r.StartAt)
		if err != nil {
			return nil, err
		}
		utc := startAt.UTC()
		req.StartAt = &utc
	}

	return req, nil
}

// ConflictResponse тело ответа 409 с перечнем пересечений
type ConflictResponse struct {
	Error     string                       `json:"error"`
	Conflicts []updateAppointment.Conflict `json:"conflicts"`
}

package create_appointment

import (
	"time"

	createAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	CustomerID int64   `json:"customerId"`
	StaffID    int64   `json:"staffId"`
	StartAt    string  `json:"startAt"` // RFC3339
	ServiceIDs []int64 `json:"serviceIds"`
	Notes      *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(businessID int64) (*createAppointment.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		BusinessID: businessID,
		CustomerID: r.CustomerID,
		StaffID:    r.StaffID,
		StartAt:    startAt.UTC(),
		ServiceIDs: r.ServiceIDs,
		Notes:      r.Notes,
	}, nil
}

// ConflictResponse тело ответа 409 с перечнем пересечений
type ConflictResponse struct {
	Error     string                       `json:"error"`
	Conflicts []createAppointment.Conflict `json:"conflicts"`
}

package public_booking

import (
	"time"

	publicBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/public_booking"
)

// PublicBookingRequest HTTP request model
type PublicBookingRequest struct {
	CustomerName  string  `json:"customerName"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	StaffID       int64   `json:"staffId"`
	StartAt       string  `json:"startAt"` // RFC3339
	ServiceIDs    []int64 `json:"serviceIds"`
	Note          *string `json:"note,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PublicBookingRequest) ToUseCaseRequest(token string) (*publicBooking.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	return &publicBooking.Request{
		Token:         token,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		StaffID:       r.StaffID,
		StartAt:       startAt.UTC(),
		ServiceIDs:    r.ServiceIDs,
		Note:          r.Note,
	}, nil
}

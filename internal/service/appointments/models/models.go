package models

import "time"

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	// Force пропускает проверку окна отмены (для администратора)
	Force bool `json:"force,omitempty"`

	// Reason опциональная причина отмены, сохраняется в заметку администратора
	Reason *string `json:"reason,omitempty"`
}

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// AppointmentServiceResponse услуга записи со снапшотом цены
type AppointmentServiceResponse struct {
	ServiceID       int64   `json:"serviceId"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64                        `json:"id"`
	BusinessID      int64                        `json:"businessId"`
	CustomerID      int64                        `json:"customerId"`
	StaffID         int64                        `json:"staffId"`
	StartAt         time.Time                    `json:"startAt"` // UTC
	DurationMinutes int                          `json:"durationMinutes"`
	Status          string                       `json:"status"`
	Services        []AppointmentServiceResponse `json:"services"`
	Notes           *string                      `json:"notes,omitempty"`
	AdminNote       *string                      `json:"adminNote,omitempty"`
	StaffNote       *string                      `json:"staffNote,omitempty"`
	CustomerNote    *string                      `json:"customerNote,omitempty"`
	CreatedAt       time.Time                    `json:"createdAt"`
	UpdatedAt       time.Time                    `json:"updatedAt"`
}

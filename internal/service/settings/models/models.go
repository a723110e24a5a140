package models

import "time"

// Request модели

// UpdateSettingsRequest запрос на частичное обновление настроек
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	SlotLengthMinutes *int    `json:"slotLengthMinutes,omitempty"`
	BufferTimeMinutes *int    `json:"bufferTimeMinutes,omitempty"`
	CancellationHours *int    `json:"cancellationHours,omitempty"`
	WorkingHoursStart *string `json:"workingHoursStart,omitempty"` // HH:MM
	WorkingHoursEnd   *string `json:"workingHoursEnd,omitempty"`   // HH:MM
	Timezone          *string `json:"timezone,omitempty"`          // IANA name
}

// IsEmpty возвращает true, если ни одно поле не задано
func (r *UpdateSettingsRequest) IsEmpty() bool {
	return r.SlotLengthMinutes == nil &&
		r.BufferTimeMinutes == nil &&
		r.CancellationHours == nil &&
		r.WorkingHoursStart == nil &&
		r.WorkingHoursEnd == nil &&
		r.Timezone == nil
}

// Response модели

// SettingsResponse ответ с настройками расписания бизнеса
type SettingsResponse struct {
	BusinessID        int64     `json:"businessId"`
	SlotLengthMinutes int       `json:"slotLengthMinutes"`
	BufferTimeMinutes int       `json:"bufferTimeMinutes"`
	CancellationHours int       `json:"cancellationHours"`
	WorkingHoursStart string    `json:"workingHoursStart"` // HH:MM
	WorkingHoursEnd   string    `json:"workingHoursEnd"`   // HH:MM
	Timezone          string    `json:"timezone"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

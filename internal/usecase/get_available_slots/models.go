package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	BusinessID int64
	StaffID    int64
	Date       time.Time // дата в таймзоне бизнеса (без времени)

	// ServiceIDs набор услуг для вычисления длительности слота
	// Пустой набор означает длительность по умолчанию из настроек
	ServiceIDs []int64
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            string `json:"date"` // YYYY-MM-DD
	BusinessID      int64  `json:"businessId"`
	StaffID         int64  `json:"staffId"`
	Timezone        string `json:"timezone"`
	DurationMinutes int    `json:"durationMinutes"`
	Slots           []Slot `json:"slots"`
}

// Slot модель доступного слота
// Время выдаётся в таймзоне бизнеса без смещения ("2026-03-10T09:30:00")
type Slot struct {
	StartAt string `json:"startAt"`
}

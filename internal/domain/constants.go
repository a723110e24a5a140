package domain

// Default business settings values
// Применяются при ленивом создании настроек бизнеса
const (
	DefaultSlotLengthMinutes  = 30
	DefaultBufferTimeMinutes  = 15
	DefaultCancellationHours  = 24
	DefaultWorkingHoursStart  = "09:00"
	DefaultWorkingHoursEnd    = "18:00"
)

// Business validation constants
const (
	MinSlotLengthMinutes = 5
	MaxSlotLengthMinutes = 480 // 8 hours
	MinBufferTimeMinutes = 0
	MaxBufferTimeMinutes = 240 // 4 hours
	MaxNotesLength       = 1000
)

// Time format constants
const (
	TimeFormat      = "15:04"               // HH:MM
	DateFormat      = "2006-01-02"          // YYYY-MM-DD
	LocalTimeFormat = "2006-01-02T15:04:05" // локальное время без смещения (выдача слотов)
)

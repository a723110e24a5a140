package public_booking

import "time"

// Request модель запроса на публичную самозапись
// Токен приходит из URL, остальное из тела запроса
type Request struct {
	Token string

	CustomerName  string
	CustomerEmail *string
	CustomerPhone *string

	StaffID    int64
	StartAt    time.Time // UTC
	ServiceIDs []int64
	Note       *string
}

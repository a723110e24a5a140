package domain

import "time"

// BookingLink публичная ссылка для самозаписи клиентов
// Токен уникален глобально и разрешается в бизнес без аутентификации
type BookingLink struct {
	ID         int64
	BusinessID int64
	Token      string // uuid
	Name       string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

package bookinglinks

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// BookingLinkRepository интерфейс репозитория публичных ссылок
type BookingLinkRepository interface {
	Create(ctx context.Context, link *domain.BookingLink) (*domain.BookingLink, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package public_booking

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentModels "github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
)

// BookingLinkRepository интерфейс репозитория публичных ссылок
type BookingLinkRepository interface {
	GetActiveByToken(ctx context.Context, token string) (*domain.BookingLink, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	FindByContact(ctx context.Context, businessID int64, email, phone *string) (*domain.Customer, error)
	Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
}

// AppointmentCreator интерфейс создания записи с проверкой расписания
type AppointmentCreator interface {
	Execute(ctx context.Context, req *create_appointment.Request) (*appointmentModels.AppointmentResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

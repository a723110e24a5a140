package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/scheduling"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error)
	AddServices(ctx context.Context, appointmentID int64, items []domain.AppointmentServiceItem) error
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetActive(ctx context.Context, businessID, staffID int64) (*domain.StaffMember, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByID(ctx context.Context, businessID, id int64) (*domain.Customer, error)
}

// SchedulingService интерфейс проверки расписания
type SchedulingService interface {
	EvaluateBooking(ctx context.Context, params scheduling.EvaluateParams) (*scheduling.Evaluation, error)
}

// SettingsProvider интерфейс сервиса настроек
type SettingsProvider interface {
	GetOrCreate(ctx context.Context, businessID int64) (*domain.SchedulingSettings, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

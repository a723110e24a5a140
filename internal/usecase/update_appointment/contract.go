package update_appointment

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SchedulingService/internal/service/scheduling"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByIDForUpdate(ctx context.Context, businessID, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, businessID, id int64, params appointmentRepo.UpdateParams) error
	ReplaceServices(ctx context.Context, appointmentID int64, items []domain.AppointmentServiceItem) error
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetActive(ctx context.Context, businessID, staffID int64) (*domain.StaffMember, error)
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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей (чтение без блокировок)
type AppointmentRepository interface {
	ListWithDurations(ctx context.Context, businessID, staffID int64, from, to time.Time) ([]domain.AppointmentSummary, error)
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetActive(ctx context.Context, businessID, staffID int64) (*domain.StaffMember, error)
}

// ServiceResolver интерфейс вычисления длительности по набору услуг
type ServiceResolver interface {
	ResolveServices(ctx context.Context, businessID int64, serviceIDs []int64) ([]domain.AppointmentServiceItem, int, error)
}

// SettingsProvider интерфейс сервиса настроек
type SettingsProvider interface {
	GetOrCreate(ctx context.Context, businessID int64) (*domain.SchedulingSettings, error)
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

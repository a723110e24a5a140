package scheduling

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей (блокирующие чтения)
type AppointmentRepository interface {
	ListForUpdate(ctx context.Context, businessID, staffID int64, windowStart, windowEnd time.Time, excludeID *int64) ([]domain.AppointmentSummary, error)
	TotalDurations(ctx context.Context, businessID int64, ids []int64) (map[int64]int, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetActiveByIDs(ctx context.Context, businessID int64, ids []int64) ([]*domain.Service, error)
}

// DayLockRepository интерфейс репозитория блокировок календарных дней
type DayLockRepository interface {
	Upsert(ctx context.Context, businessID, staffID int64, day time.Time) error
	Lock(ctx context.Context, businessID, staffID int64, day time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

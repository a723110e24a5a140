package get_settings

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

type SettingsService interface {
	GetOrCreate(ctx context.Context, businessID int64) (*domain.SchedulingSettings, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

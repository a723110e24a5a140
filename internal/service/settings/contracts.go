package settings

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/settings"
)

// SettingsRepository интерфейс репозитория настроек расписания
type SettingsRepository interface {
	Get(ctx context.Context, businessID int64) (*domain.SchedulingSettings, error)
	CreateDefaults(ctx context.Context, defaults *domain.SchedulingSettings) error
	Update(ctx context.Context, businessID int64, params settingsRepo.UpdateParams) (*domain.SchedulingSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

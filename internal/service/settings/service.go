package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/settings/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Service сервис настроек расписания
// Настройки создаются лениво: бизнес без строки настроек получает дефолты
type Service struct {
	settingsRepo    SettingsRepository
	defaultTimezone string
	logger          Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, defaultTimezone string, logger Logger) *Service {
	return &Service{
		settingsRepo:    settingsRepo,
		defaultTimezone: defaultTimezone,
		logger:          logger,
	}
}

// GetOrCreate возвращает настройки бизнеса, создавая дефолтные при отсутствии
// Вставка идемпотентна (ON CONFLICT DO NOTHING), поэтому конкурентное первое
// чтение безопасно: обе стороны в итоге прочитают одну и ту же строку
func (s *Service) GetOrCreate(ctx context.Context, businessID int64) (*domain.SchedulingSettings, error) {
	existing, err := s.settingsRepo.Get(ctx, businessID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		s.logger.Error("GetOrCreate: failed to get settings for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %w", ErrInternal, err)
	}

	defaults := domain.DefaultSchedulingSettings(businessID, s.defaultTimezone)
	if err := s.settingsRepo.CreateDefaults(ctx, defaults); err != nil {
		s.logger.Error("GetOrCreate: failed to create default settings for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: failed to create default settings: %w", ErrInternal, err)
	}

	s.logger.Info("GetOrCreate: created default settings for business=%d", businessID)

	created, err := s.settingsRepo.Get(ctx, businessID)
	if err != nil {
		s.logger.Error("GetOrCreate: failed to reread settings for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: failed to reread settings: %w", ErrInternal, err)
	}

	return created, nil
}

// Update частично обновляет настройки бизнеса
// Отсутствующая строка настроек сначала создается с дефолтами
func (s *Service) Update(ctx context.Context, businessID int64, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for business=%d", businessID)

	if req.IsEmpty() {
		return nil, ErrEmptyUpdate
	}

	current, err := s.GetOrCreate(ctx, businessID)
	if err != nil {
		return nil, err
	}

	params, err := s.buildUpdateParams(current, req)
	if err != nil {
		s.logger.Warn("Update: validation failed for business=%d: %v", businessID, err)
		return nil, err
	}

	updated, err := s.settingsRepo.Update(ctx, businessID, params)
	if err != nil {
		s.logger.Error("Update: failed to update settings for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: failed to update settings: %w", ErrInternal, err)
	}

	s.logger.Info("Update: settings updated for business=%d", businessID)

	return toResponse(updated), nil
}

// buildUpdateParams валидирует запрос и собирает параметры обновления
// Рабочие часы проверяются на итоговом значении: патч одной границы
// сверяется с текущим значением другой
func (s *Service) buildUpdateParams(current *domain.SchedulingSettings, req *models.UpdateSettingsRequest) (settingsRepo.UpdateParams, error) {
	var params settingsRepo.UpdateParams

	if req.SlotLengthMinutes != nil {
		if *req.SlotLengthMinutes < domain.MinSlotLengthMinutes || *req.SlotLengthMinutes > domain.MaxSlotLengthMinutes {
			return params, fmt.Errorf("%w: slot length must be between %d and %d minutes",
				ErrInvalidSlotLength, domain.MinSlotLengthMinutes, domain.MaxSlotLengthMinutes)
		}
		params.SlotLengthMinutes = req.SlotLengthMinutes
	}

	if req.BufferTimeMinutes != nil {
		if *req.BufferTimeMinutes < domain.MinBufferTimeMinutes || *req.BufferTimeMinutes > domain.MaxBufferTimeMinutes {
			return params, fmt.Errorf("%w: buffer time must be between %d and %d minutes",
				ErrInvalidBufferTime, domain.MinBufferTimeMinutes, domain.MaxBufferTimeMinutes)
		}
		params.BufferTimeMinutes = req.BufferTimeMinutes
	}

	if req.CancellationHours != nil {
		if *req.CancellationHours < 0 {
			return params, fmt.Errorf("%w: cancellation hours must not be negative", ErrInvalidCancellationHours)
		}
		params.CancellationHours = req.CancellationHours
	}

	start := current.WorkingHoursStart
	end := current.WorkingHoursEnd

	if req.WorkingHoursStart != nil {
		parsed, err := types.NewTimeStringFromString(*req.WorkingHoursStart)
		if err != nil {
			return params, fmt.Errorf("%w: start: %w", ErrInvalidWorkingHours, err)
		}
		start = parsed
		params.WorkingHoursStart = &parsed
	}

	if req.WorkingHoursEnd != nil {
		parsed, err := types.NewTimeStringFromString(*req.WorkingHoursEnd)
		if err != nil {
			return params, fmt.Errorf("%w: end: %w", ErrInvalidWorkingHours, err)
		}
		end = parsed
		params.WorkingHoursEnd = &parsed
	}

	if !start.IsBefore(end) {
		return params, fmt.Errorf("%w: start %s must be before end %s", ErrInvalidWorkingHours, start, end)
	}

	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			return params, fmt.Errorf("%w: %q", ErrInvalidTimezone, *req.Timezone)
		}
		params.Timezone = req.Timezone
	}

	return params, nil
}

func toResponse(st *domain.SchedulingSettings) *models.SettingsResponse {
	return &models.SettingsResponse{
		BusinessID:        st.BusinessID,
		SlotLengthMinutes: st.SlotLengthMinutes,
		BufferTimeMinutes: st.BufferTimeMinutes,
		CancellationHours: st.CancellationHours,
		WorkingHoursStart: st.WorkingHoursStart.String(),
		WorkingHoursEnd:   st.WorkingHoursEnd.String(),
		Timezone:          st.Timezone,
		CreatedAt:         st.CreatedAt,
		UpdatedAt:         st.UpdatedAt,
	}
}

// ToResponse конвертирует доменные настройки в ответ API
func ToResponse(st *domain.SchedulingSettings) *models.SettingsResponse {
	return toResponse(st)
}

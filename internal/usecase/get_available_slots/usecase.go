package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	staffRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-SchedulingService/internal/service/scheduling"
)

// UseCase use case для получения доступных слотов сотрудника на дату
type UseCase struct {
	appointmentRepo AppointmentRepository
	staffRepo       StaffRepository
	serviceResolver ServiceResolver
	settings        SettingsProvider
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	staffRepo StaffRepository,
	serviceResolver ServiceResolver,
	settings SettingsProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		staffRepo:       staffRepo,
		serviceResolver: serviceResolver,
		settings:        settings,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Сетка идёт с шагом длины слота из настроек в таймзоне бизнеса; длительность
// слота равна сумме длительностей выбранных услуг либо длине слота по
// умолчанию. Запись читается без блокировок: выдача слотов - это подсказка,
// финальную проверку делает создание записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%d, staff=%d, date=%s, services=%v",
		req.BusinessID, req.StaffID, req.Date.Format(domain.DateFormat), req.ServiceIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем сотрудника
	if _, err := uc.staffRepo.GetActive(ctx, req.BusinessID, req.StaffID); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("GetAvailableSlots: staff id=%d not found in business=%d", req.StaffID, req.BusinessID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %w", ErrInternal, err)
	}

	// 3. Настройки бизнеса (ленивое создание дефолтов)
	settings, err := uc.settings.GetOrCreate(ctx, req.BusinessID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get settings for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %w", ErrInternal, err)
	}

	if !settings.HasValidWorkingHours() {
		uc.logger.Warn("GetAvailableSlots: business=%d has invalid working hours %s-%s",
			req.BusinessID, settings.WorkingHoursStart, settings.WorkingHoursEnd)
		return nil, ErrInvalidWorkingHours
	}

	loc, err := settings.Location()
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load timezone %q: %v", settings.Timezone, err)
		return nil, fmt.Errorf("%w: failed to load timezone: %w", ErrInternal, err)
	}

	// 4. Длительность слота: сумма услуг или длина слота по умолчанию
	durationMinutes := settings.SlotLengthMinutes
	if len(req.ServiceIDs) > 0 {
		_, total, err := uc.serviceResolver.ResolveServices(ctx, req.BusinessID, req.ServiceIDs)
		if err != nil {
			if errors.Is(err, scheduling.ErrInvalidServiceSet) {
				uc.logger.Warn("GetAvailableSlots: services %v not found in business=%d", req.ServiceIDs, req.BusinessID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to resolve services: %v", err)
			return nil, fmt.Errorf("%w: failed to resolve services: %w", ErrInternal, err)
		}
		durationMinutes = total
	}

	// 5. Границы рабочего дня в таймзоне бизнеса
	dayStart, err := settings.WorkingHoursStart.OnDate(req.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build day start: %w", ErrInternal, err)
	}
	dayEnd, err := settings.WorkingHoursEnd.OnDate(req.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build day end: %w", ErrInternal, err)
	}

	// 6. Занятость сотрудника вокруг рабочего дня
	// Окно расширено на сутки в обе стороны: буфер и длительность соседних
	// записей могут задевать рабочий день, начавшись вне его
	from := dayStart.UTC().Add(-24 * time.Hour)
	to := dayEnd.UTC().Add(24 * time.Hour)

	appointments, err := uc.appointmentRepo.ListWithDurations(ctx, req.BusinessID, req.StaffID, from, to)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %w", ErrInternal, err)
	}

	blocked := blockedIntervals(appointments, settings.BufferTimeMinutes)

	// 7. Floor "сейчас" для сегодняшней даты: прошедшие слоты не выдаются
	// Сравнение в таймзоне бизнеса, секунды отбрасываются
	var notBefore *time.Time
	nowLocal := uc.timeProvider.Now().In(loc).Truncate(time.Minute)
	if sameLocalDay(req.Date, nowLocal) {
		notBefore = &nowLocal
	}

	starts := generateSlots(
		dayStart, dayEnd,
		settings.SlotLengthMinutes, durationMinutes, settings.BufferTimeMinutes,
		blocked,
		notBefore,
	)

	slots := make([]Slot, 0, len(starts))
	for _, start := range starts {
		slots = append(slots, Slot{StartAt: start.In(loc).Format(domain.LocalTimeFormat)})
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for business=%d, staff=%d, date=%s",
		len(slots), req.BusinessID, req.StaffID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date.Format(domain.DateFormat),
		BusinessID:      req.BusinessID,
		StaffID:         req.StaffID,
		Timezone:        settings.Timezone,
		DurationMinutes: durationMinutes,
		Slots:           slots,
	}, nil
}

// sameLocalDay проверяет, что обе даты относятся к одному календарному дню
func sameLocalDay(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

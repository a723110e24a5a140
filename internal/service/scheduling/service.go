package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
)

// Service проверяет новые и переносимые записи на пересечение с календарём
// сотрудника. Проверка выполняется под блокировками календарных дней, поэтому
// два конкурентных запроса на одного сотрудника сериализуются и двойная
// запись невозможна
type Service struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	dayLockRepo     DayLockRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса проверки расписания
func NewService(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	dayLockRepo DayLockRepository,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		dayLockRepo:     dayLockRepo,
		logger:          logger,
	}
}

// EvaluateParams параметры проверки записи
type EvaluateParams struct {
	BusinessID int64
	StaffID    int64
	StartAt    time.Time // UTC
	ServiceIDs []int64

	// BufferMinutes симметричный буфер вокруг записи из настроек бизнеса
	BufferMinutes int

	// ExcludeAppointmentID исключает запись из числа кандидатов
	// Используется при переносе, чтобы запись не конфликтовала сама с собой
	ExcludeAppointmentID *int64
}

// Evaluation результат проверки записи
type Evaluation struct {
	// Conflicts записи, чьи буферизованные интервалы пересекаются с новым
	Conflicts []domain.AppointmentSummary

	// DurationMinutes суммарная длительность выбранных услуг
	DurationMinutes int

	// Services разрешённые услуги со снапшотом цены и длительности
	Services []domain.AppointmentServiceItem
}

// HasConflicts возвращает true, если найдено хотя бы одно пересечение
func (e *Evaluation) HasConflicts() bool {
	return len(e.Conflicts) > 0
}

// EvaluateBooking проверяет, свободен ли календарь сотрудника для записи.
// Должен вызываться внутри транзакции: сначала захватываются блокировки всех
// календарных дней буферизованного интервала (по возрастанию, чтобы исключить
// дедлоки), затем кандидаты читаются с FOR UPDATE и проверяются на строгое
// пересечение. Соприкасающиеся буферизованные границы конфликтом не считаются
func (s *Service) EvaluateBooking(ctx context.Context, params EvaluateParams) (*Evaluation, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil, ErrNoTransaction
	}

	items, totalDuration, err := s.ResolveServices(ctx, params.BusinessID, params.ServiceIDs)
	if err != nil {
		return nil, err
	}

	interval := domain.NewInterval(params.StartAt, totalDuration).Buffered(params.BufferMinutes)

	// Двухфазный захват: сначала гарантируем существование строк-блокировок,
	// затем берём FOR UPDATE. Вставка и захват в одном запросе под
	// конкуренцией может увидеть невидимую строку соседней транзакции
	days := interval.Days()
	for _, day := range days {
		if err := s.dayLockRepo.Upsert(ctx, params.BusinessID, params.StaffID, day); err != nil {
			return nil, fmt.Errorf("%w: EvaluateBooking - upsert day lock: %w", ErrStorageUnavailable, err)
		}
	}
	for _, day := range days {
		if err := s.dayLockRepo.Lock(ctx, params.BusinessID, params.StaffID, day); err != nil {
			return nil, fmt.Errorf("%w: EvaluateBooking - lock day: %w", ErrStorageUnavailable, err)
		}
	}

	windowStart, windowEnd := interval.EffectiveWindow()
	candidates, err := s.appointmentRepo.ListForUpdate(
		ctx,
		params.BusinessID,
		params.StaffID,
		windowStart,
		windowEnd,
		params.ExcludeAppointmentID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: EvaluateBooking - list candidates: %w", ErrStorageUnavailable, err)
	}

	conflicts, err := s.findConflicts(ctx, params.BusinessID, params.BufferMinutes, interval, candidates)
	if err != nil {
		return nil, err
	}

	if len(conflicts) > 0 {
		s.logger.Warn("EvaluateBooking: business=%d, staff=%d, start=%s: %d conflict(s) found",
			params.BusinessID, params.StaffID, params.StartAt.Format(time.RFC3339), len(conflicts))
	}

	return &Evaluation{
		Conflicts:       conflicts,
		DurationMinutes: totalDuration,
		Services:        items,
	}, nil
}

// findConflicts дополняет кандидатов длительностями и отбирает пересечения
// Длительности читаются после захвата блокировок, поэтому итог согласован
func (s *Service) findConflicts(
	ctx context.Context,
	businessID int64,
	bufferMinutes int,
	interval domain.Interval,
	candidates []domain.AppointmentSummary,
) ([]domain.AppointmentSummary, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}

	durations, err := s.appointmentRepo.TotalDurations(ctx, businessID, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: findConflicts - get durations: %w", ErrStorageUnavailable, err)
	}

	conflicts := make([]domain.AppointmentSummary, 0)
	for _, c := range candidates {
		c.DurationMinutes = durations[c.ID]
		if interval.Overlaps(c.BufferedInterval(bufferMinutes)) {
			conflicts = append(conflicts, c)
		}
	}

	return conflicts, nil
}

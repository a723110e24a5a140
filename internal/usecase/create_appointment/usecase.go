package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	customerRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/customer"
	staffRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/staff"
	appointmentsService "github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
	appointmentModels "github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SchedulingService/internal/service/scheduling"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	staffRepo       StaffRepository
	customerRepo    CustomerRepository
	schedulingSvc   SchedulingService
	settings        SettingsProvider
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	staffRepo StaffRepository,
	customerRepo CustomerRepository,
	schedulingSvc SchedulingService,
	settings SettingsProvider,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		staffRepo:       staffRepo,
		customerRepo:    customerRepo,
		schedulingSvc:   schedulingSvc,
		settings:        settings,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Проверка расписания и вставка идут в одной сериализуемой транзакции,
// поэтому между проверкой и записью никто не успеет занять интервал
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*appointmentModels.AppointmentResponse, error) {
	uc.logger.Info("CreateAppointment: business=%d, customer=%d, staff=%d, start=%s, services=%v",
		req.BusinessID, req.CustomerID, req.StaffID, req.StartAt.Format(time.RFC3339), req.ServiceIDs)

	// 1. Валидация входных данных
	now := uc.timeProvider.Now().UTC()
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем сотрудника
	if _, err := uc.staffRepo.GetActive(ctx, req.BusinessID, req.StaffID); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("CreateAppointment: staff id=%d not found in business=%d", req.StaffID, req.BusinessID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %w", ErrInternal, err)
	}

	// 3. Проверяем клиента
	if _, err := uc.customerRepo.GetByID(ctx, req.BusinessID, req.CustomerID); err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			uc.logger.Warn("CreateAppointment: customer id=%d not found in business=%d", req.CustomerID, req.BusinessID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %w", ErrInternal, err)
	}

	// 4. Настройки бизнеса (ленивое создание дефолтов)
	settings, err := uc.settings.GetOrCreate(ctx, req.BusinessID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get settings for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %w", ErrInternal, err)
	}

	status := req.Status
	if status == "" {
		status = domain.StatusScheduled
	}

	var result *domain.Appointment

	// 5. Проверка расписания и вставка в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		eval, err := uc.schedulingSvc.EvaluateBooking(txCtx, scheduling.EvaluateParams{
			BusinessID:    req.BusinessID,
			StaffID:       req.StaffID,
			StartAt:       req.StartAt,
			ServiceIDs:    req.ServiceIDs,
			BufferMinutes: settings.BufferTimeMinutes,
		})
		if err != nil {
			if errors.Is(err, scheduling.ErrInvalidServiceSet) {
				return ErrServiceNotFound
			}
			uc.logger.Error("CreateAppointment: evaluation failed: %v", err)
			if errors.Is(err, scheduling.ErrStorageUnavailable) {
				return fmt.Errorf("%w: evaluation failed: %w", ErrStorageUnavailable, err)
			}
			return fmt.Errorf("%w: evaluation failed: %w", ErrInternal, err)
		}

		if eval.HasConflicts() {
			return &ConflictError{Conflicts: toConflicts(eval.Conflicts)}
		}

		apt := &domain.Appointment{
			BusinessID: req.BusinessID,
			CustomerID: req.CustomerID,
			StaffID:    req.StaffID,
			StartAt:    req.StartAt.UTC(),
			Status:     status,
			Notes:      req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, apt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		if err := uc.appointmentRepo.AddServices(txCtx, created.ID, eval.Services); err != nil {
			uc.logger.Error("CreateAppointment: failed to attach services: %v", err)
			return fmt.Errorf("%w: failed to attach services: %w", ErrInternal, err)
		}

		created.Services = eval.Services
		result = created
		return nil
	})

	if err != nil {
		var conflictErr *ConflictError
		if errors.As(err, &conflictErr) {
			uc.logger.Warn("CreateAppointment: %d conflict(s) for staff=%d at %s",
				len(conflictErr.Conflicts), req.StaffID, req.StartAt.Format(time.RFC3339))
		}
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return appointmentsService.ToResponse(result), nil
}

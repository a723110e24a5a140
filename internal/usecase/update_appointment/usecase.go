package update_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	staffRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/staff"
	appointmentsService "github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
	appointmentModels "github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SchedulingService/internal/service/scheduling"
)

// UseCase use case для переноса записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	staffRepo       StaffRepository
	schedulingSvc   SchedulingService
	settings        SettingsProvider
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	staffRepo StaffRepository,
	schedulingSvc SchedulingService,
	settings SettingsProvider,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		staffRepo:       staffRepo,
		schedulingSvc:   schedulingSvc,
		settings:        settings,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case переноса записи
// Проверка нового интервала исключает саму переносимую запись, иначе запись
// конфликтовала бы сама с собой при сдвиге в пределах своего же времени
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*appointmentModels.AppointmentResponse, error) {
	uc.logger.Info("UpdateAppointment: business=%d, appointment=%d", req.BusinessID, req.AppointmentID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	if req.StaffID != nil {
		if _, err := uc.staffRepo.GetActive(ctx, req.BusinessID, *req.StaffID); err != nil {
			if errors.Is(err, staffRepo.ErrStaffNotFound) {
				uc.logger.Warn("UpdateAppointment: staff id=%d not found in business=%d", *req.StaffID, req.BusinessID)
				return nil, ErrStaffNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to get staff id=%d: %v", *req.StaffID, err)
			return nil, fmt.Errorf("%w: failed to get staff: %w", ErrInternal, err)
		}
	}

	settings, err := uc.settings.GetOrCreate(ctx, req.BusinessID)
	if err != nil {
		uc.logger.Error("UpdateAppointment: failed to get settings for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %w", ErrInternal, err)
	}

	var result *domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.appointmentRepo.GetByIDForUpdate(txCtx, req.BusinessID, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		if !current.CanBeCancelled() {
			return fmt.Errorf("%w: status is %q", ErrNotReschedulable, current.Status)
		}

		targetStart := current.StartAt
		if req.StartAt != nil {
			targetStart = req.StartAt.UTC()
		}

		targetStaff := current.StaffID
		if req.StaffID != nil {
			targetStaff = *req.StaffID
		}

		targetServiceIDs := req.ServiceIDs
		if len(targetServiceIDs) == 0 {
			targetServiceIDs = make([]int64, 0, len(current.Services))
			for _, item := range current.Services {
				targetServiceIDs = append(targetServiceIDs, item.ServiceID)
			}
		}

		excludeID := current.ID
		eval, err := uc.schedulingSvc.EvaluateBooking(txCtx, scheduling.EvaluateParams{
			BusinessID:           req.BusinessID,
			StaffID:              targetStaff,
			StartAt:              targetStart,
			ServiceIDs:           targetServiceIDs,
			BufferMinutes:        settings.BufferTimeMinutes,
			ExcludeAppointmentID: &excludeID,
		})
		if err != nil {
			if errors.Is(err, scheduling.ErrInvalidServiceSet) {
				return ErrServiceNotFound
			}
			uc.logger.Error("UpdateAppointment: evaluation failed: %v", err)
			if errors.Is(err, scheduling.ErrStorageUnavailable) {
				return fmt.Errorf("%w: evaluation failed: %w", ErrStorageUnavailable, err)
			}
			return fmt.Errorf("%w: evaluation failed: %w", ErrInternal, err)
		}

		if eval.HasConflicts() {
			return &ConflictError{Conflicts: toConflicts(eval.Conflicts)}
		}

		params := appointmentRepo.UpdateParams{
			StartAt: req.StartAt,
			StaffID: req.StaffID,
			Notes:   req.Notes,
		}
		if err := uc.appointmentRepo.Update(txCtx, req.BusinessID, req.AppointmentID, params); err != nil {
			uc.logger.Error("UpdateAppointment: failed to update appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
		}

		if len(req.ServiceIDs) > 0 {
			if err := uc.appointmentRepo.ReplaceServices(txCtx, req.AppointmentID, eval.Services); err != nil {
				uc.logger.Error("UpdateAppointment: failed to replace services: %v", err)
				return fmt.Errorf("%w: failed to replace services: %w", ErrInternal, err)
			}
		}

		current.StartAt = targetStart
		current.StaffID = targetStaff
		current.Services = eval.Services
		if req.Notes != nil {
			current.Notes = req.Notes
		}
		result = current
		return nil
	})

	if err != nil {
		var conflictErr *ConflictError
		if errors.As(err, &conflictErr) {
			uc.logger.Warn("UpdateAppointment: %d conflict(s) for appointment=%d", len(conflictErr.Conflicts), req.AppointmentID)
		}
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: appointment id=%d rescheduled to %s",
		result.ID, result.StartAt.Format(time.RFC3339))

	return appointmentsService.ToResponse(result), nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.StartAt == nil && req.StaffID == nil && len(req.ServiceIDs) == 0 && req.Notes == nil {
		return fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

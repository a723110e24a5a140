package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

// Service сервис для чтения и смены статусов записей
// Создание и перенос идут через usecase с проверкой расписания
type Service struct {
	appointmentRepo AppointmentRepository
	settings        SettingsProvider
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	settings SettingsProvider,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		settings:        settings,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID возвращает запись бизнеса по ID
func (s *Service) GetByID(ctx context.Context, businessID, id int64) (*models.AppointmentResponse, error) {
	apt, err := s.appointmentRepo.GetByID(ctx, businessID, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: failed to get appointment id=%d business=%d: %v", id, businessID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
	}

	return ToResponse(apt), nil
}

// Cancel отменяет запись с учётом окна отмены из настроек бизнеса
// Окно считается от текущего момента до начала записи; Force его пропускает
// Отмена идемпотентного смысла не имеет: повторная отмена возвращает ошибку
func (s *Service) Cancel(ctx context.Context, businessID, id int64, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d business=%d force=%v", id, businessID, req.Force)

	apt, err := s.appointmentRepo.GetByID(ctx, businessID, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: failed to get appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
	}

	if !apt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d in status %q cannot be cancelled", id, apt.Status)
		return nil, fmt.Errorf("%w: status is %q", ErrNotCancellable, apt.Status)
	}

	if !req.Force {
		st, err := s.settings.GetOrCreate(ctx, businessID)
		if err != nil {
			s.logger.Error("Cancel: failed to get settings for business=%d: %v", businessID, err)
			return nil, fmt.Errorf("%w: failed to get settings: %w", ErrInternal, err)
		}

		deadline := apt.StartAt.Add(-time.Duration(st.CancellationHours) * time.Hour)
		if s.timeProvider.Now().UTC().After(deadline) {
			s.logger.Warn("Cancel: cancellation window passed for appointment id=%d (deadline %s)",
				id, deadline.Format(time.RFC3339))
			return nil, ErrCancellationWindowPassed
		}
	}

	status := domain.StatusCancelled
	params := appointmentRepo.UpdateParams{
		Status:    &status,
		AdminNote: req.Reason,
	}
	if err := s.appointmentRepo.Update(ctx, businessID, id, params); err != nil {
		s.logger.Error("Cancel: failed to update appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to cancel appointment: %w", ErrInternal, err)
	}

	s.logger.Info("Cancel: appointment id=%d cancelled", id)

	apt.Status = domain.StatusCancelled
	if req.Reason != nil {
		apt.AdminNote = req.Reason
	}
	return ToResponse(apt), nil
}

// UpdateStatus переводит запись в указанный статус
// Переход в cancelled идёт через Cancel с проверкой окна отмены
func (s *Service) UpdateStatus(ctx context.Context, businessID, id int64, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	status := domain.AppointmentStatus(req.Status)
	if !status.IsValid() || status == domain.StatusCancelled {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, businessID, id, status); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: failed to update appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: appointment id=%d moved to %q", id, status)

	return s.GetByID(ctx, businessID, id)
}

// ToResponse конвертирует доменную запись в ответ API
func ToResponse(apt *domain.Appointment) *models.AppointmentResponse {
	services := make([]models.AppointmentServiceResponse, 0, len(apt.Services))
	for _, item := range apt.Services {
		services = append(services, models.AppointmentServiceResponse{
			ServiceID:       item.ServiceID,
			Name:            item.Name,
			DurationMinutes: item.DurationMinutes,
			Price:           item.Price,
		})
	}

	return &models.AppointmentResponse{
		ID:              apt.ID,
		BusinessID:      apt.BusinessID,
		CustomerID:      apt.CustomerID,
		StaffID:         apt.StaffID,
		StartAt:         apt.StartAt,
		DurationMinutes: apt.TotalDurationMinutes(),
		Status:          string(apt.Status),
		Services:        services,
		Notes:           apt.Notes,
		AdminNote:       apt.AdminNote,
		StaffNote:       apt.StaffNote,
		CustomerNote:    apt.CustomerNote,
		CreatedAt:       apt.CreatedAt,
		UpdatedAt:       apt.UpdatedAt,
	}
}

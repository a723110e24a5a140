package public_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookinglinkRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/bookinglink"
	customerRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/customer"
	appointmentModels "github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
)

// UseCase use case для самозаписи клиента по публичной ссылке
// Токен разрешается в бизнес без аутентификации, клиент находится по
// контактам или создается, запись создается в статусе pending
type UseCase struct {
	bookingLinkRepo BookingLinkRepository
	customerRepo    CustomerRepository
	creator         AppointmentCreator
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingLinkRepo BookingLinkRepository,
	customerRepo CustomerRepository,
	creator AppointmentCreator,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingLinkRepo: bookingLinkRepo,
		customerRepo:    customerRepo,
		creator:         creator,
		logger:          logger,
	}
}

// Execute выполняет use case публичной самозаписи
// Конфликты и прочие ошибки создания записи пробрасываются как есть,
// хендлер мапит их на статусы вместе с ошибками create_appointment
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*appointmentModels.AppointmentResponse, error) {
	uc.logger.Info("PublicBooking: token=%s..., staff=%d, start=%s",
		tokenPrefix(req.Token), req.StaffID, req.StartAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("PublicBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Разрешаем токен в бизнес
	link, err := uc.bookingLinkRepo.GetActiveByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, bookinglinkRepo.ErrLinkNotFound) {
			uc.logger.Warn("PublicBooking: token %s... not found", tokenPrefix(req.Token))
			return nil, ErrLinkNotFound
		}
		uc.logger.Error("PublicBooking: failed to resolve token: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve token: %w", ErrInternal, err)
	}

	// 3. Ищем клиента по контактам, при отсутствии создаем
	customer, err := uc.findOrCreateCustomer(ctx, link.BusinessID, req)
	if err != nil {
		return nil, err
	}

	// 4. Создаем запись в статусе pending: подтверждение остаётся за бизнесом
	return uc.creator.Execute(ctx, &create_appointment.Request{
		BusinessID: link.BusinessID,
		CustomerID: customer.ID,
		StaffID:    req.StaffID,
		StartAt:    req.StartAt,
		ServiceIDs: req.ServiceIDs,
		Notes:      req.Note,
		Status:     domain.StatusPending,
	})
}

func (uc *UseCase) findOrCreateCustomer(ctx context.Context, businessID int64, req *Request) (*domain.Customer, error) {
	existing, err := uc.customerRepo.FindByContact(ctx, businessID, req.CustomerEmail, req.CustomerPhone)
	if err == nil {
		uc.logger.Info("PublicBooking: matched existing customer id=%d in business=%d", existing.ID, businessID)
		return existing, nil
	}
	if !errors.Is(err, customerRepo.ErrCustomerNotFound) {
		uc.logger.Error("PublicBooking: failed to find customer: %v", err)
		return nil, fmt.Errorf("%w: failed to find customer: %w", ErrInternal, err)
	}

	created, err := uc.customerRepo.Create(ctx, &domain.Customer{
		BusinessID: businessID,
		FullName:   req.CustomerName,
		Email:      req.CustomerEmail,
		Phone:      req.CustomerPhone,
	})
	if err != nil {
		uc.logger.Error("PublicBooking: failed to create customer: %v", err)
		return nil, fmt.Errorf("%w: failed to create customer: %w", ErrInternal, err)
	}

	uc.logger.Info("PublicBooking: created customer id=%d in business=%d", created.ID, businessID)
	return created, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.Token) == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}

	if req.CustomerEmail == nil && req.CustomerPhone == nil {
		return fmt.Errorf("%w: email or phone is required", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	return nil
}

// tokenPrefix обрезает токен для логов, чтобы не светить его целиком
func tokenPrefix(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:8]
}

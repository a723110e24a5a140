package bookinglinks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrInvalidName возвращается при пустом имени ссылки
	ErrInvalidName = errors.New("bookinglinks: link name is required")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookinglinks: internal error")
)

// Service сервис управления публичными ссылками на запись
type Service struct {
	linkRepo BookingLinkRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса ссылок
func NewService(linkRepo BookingLinkRepository, logger Logger) *Service {
	return &Service{
		linkRepo: linkRepo,
		logger:   logger,
	}
}

// CreateLinkResponse ответ с созданной ссылкой
type CreateLinkResponse struct {
	ID        int64     `json:"id"`
	Token     string    `json:"token"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// Create создает активную ссылку с новым uuid токеном
func (s *Service) Create(ctx context.Context, businessID int64, name string) (*CreateLinkResponse, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}

	link, err := s.linkRepo.Create(ctx, &domain.BookingLink{
		BusinessID: businessID,
		Token:      uuid.NewString(),
		Name:       strings.TrimSpace(name),
		IsActive:   true,
	})
	if err != nil {
		s.logger.Error("Create: failed to create booking link for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: failed to create booking link: %w", ErrInternal, err)
	}

	s.logger.Info("Create: booking link id=%d created for business=%d", link.ID, businessID)

	return &CreateLinkResponse{
		ID:        link.ID,
		Token:     link.Token,
		Name:      link.Name,
		IsActive:  link.IsActive,
		CreatedAt: link.CreatedAt,
	}, nil
}

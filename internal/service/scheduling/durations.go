package scheduling

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// ResolveServices загружает активные услуги бизнеса по набору ID и считает
// суммарную длительность. Дубликаты ID схлопываются с сохранением порядка
// первого вхождения, поэтому услуга учитывается в длительности один раз
func (s *Service) ResolveServices(ctx context.Context, businessID int64, serviceIDs []int64) ([]domain.AppointmentServiceItem, int, error) {
	if len(serviceIDs) == 0 {
		return nil, 0, ErrEmptyServiceSet
	}

	distinct := dedupeIDs(serviceIDs)

	services, err := s.serviceRepo.GetActiveByIDs(ctx, businessID, distinct)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ResolveServices - get services: %w", ErrStorageUnavailable, err)
	}

	if len(services) != len(distinct) {
		return nil, 0, ErrServiceNotFound
	}

	byID := make(map[int64]*domain.Service, len(services))
	for _, svc := range services {
		byID[svc.ID] = svc
	}

	items := make([]domain.AppointmentServiceItem, 0, len(distinct))
	total := 0
	for _, id := range distinct {
		svc := byID[id]
		items = append(items, domain.AppointmentServiceItem{
			ServiceID:       svc.ID,
			Name:            svc.Name,
			DurationMinutes: svc.DurationMinutes,
			Price:           svc.Price,
		})
		total += svc.DurationMinutes
	}

	if total <= 0 {
		return nil, 0, ErrInvalidDuration
	}

	return items, total, nil
}

// dedupeIDs убирает дубликаты, сохраняя порядок первого вхождения
func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

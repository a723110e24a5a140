package get_available_slots

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

var errInvalidServiceIDs = errors.New("get_available_slots.handler: invalid serviceIds")

// ToUseCaseRequest собирает запрос use case из параметров HTTP запроса
// serviceIDs приходит как "1,2,3"; пустая строка означает пустой набор
func ToUseCaseRequest(businessID, staffID int64, dateStr, serviceIDsStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	serviceIDs, err := parseServiceIDs(serviceIDsStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		BusinessID: businessID,
		StaffID:    staffID,
		Date:       date,
		ServiceIDs: serviceIDs,
	}, nil
}

func parseServiceIDs(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			return nil, errInvalidServiceIDs
		}
		ids = append(ids, id)
	}
	return ids, nil
}

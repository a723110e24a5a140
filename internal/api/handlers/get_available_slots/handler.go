package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidStaffID      = "некорректный ID сотрудника"
	msgInvalidServiceIDs   = "некорректный список услуг"
	msgMissingDate         = "дата обязательна"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStaffNotFound       = "сотрудник не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgInvalidWorkingHours = "в настройках бизнеса заданы некорректные рабочие часы"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/available-slots
// Query params: date (required, YYYY-MM-DD), serviceIds (optional, "1,2,3")
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "отсутствует заголовок X-Business-ID")
		return
	}

	staffID, err := strconv.ParseInt(mux.Vars(r)["staffId"], 10, 64)
	if err != nil || staffID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /staff/%d/available-slots - Missing date", staffID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(businessID, staffID, dateStr, r.URL.Query().Get("serviceIds"))
	if err != nil {
		if errors.Is(err, errInvalidServiceIDs) {
			h.logger.Warn("GET /staff/%d/available-slots - Invalid serviceIds: %v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidServiceIDs)
			return
		}
		h.logger.Warn("GET /staff/%d/available-slots - Invalid date format: %v", staffID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrStaffNotFound):
			h.logger.Warn("GET /staff/%d/available-slots - Staff not found: business_id=%d", staffID, businessID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /staff/%d/available-slots - Service not found: business_id=%d", staffID, businessID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidWorkingHours):
			h.logger.Warn("GET /staff/%d/available-slots - Invalid working hours: business_id=%d", staffID, businessID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidWorkingHours)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /staff/%d/available-slots - Invalid input: %v", staffID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /staff/%d/available-slots - Failed to get slots: business_id=%d, error=%v",
				staffID, businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/%d/available-slots - %d slots for business_id=%d, date=%s",
		staffID, len(result.Slots), businessID, result.Date)
	handlers.RespondJSON(w, http.StatusOK, result)
}

package update_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	updateAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidStartAt       = "некорректный формат времени начала, ожидается RFC3339"
	msgTimeSlotConflict     = "временной слот пересекается с существующей записью"
	msgAppointmentNotFound  = "запись не найдена"
	msgStaffNotFound        = "сотрудник не найден"
	msgServiceNotFound      = "услуга не найдена"
	msgNotReschedulable     = "запись в текущем статусе нельзя перенести"
)

type Handler struct {
	useCase UpdateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "отсутствует заголовок X-Business-ID")
		return
	}

	appointmentID, err := strconv.ParseInt(mux.Vars(r)["appointmentId"], 10, 64)
	if err != nil || appointmentID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments/%d - Invalid request body: %v", appointmentID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(businessID, appointmentID)
	if err != nil {
		h.logger.Warn("PUT /appointments/%d - Failed to parse startAt: %v", appointmentID, err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictErr *updateAppointment.ConflictError

		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("PUT /appointments/%d - Conflict: business_id=%d", appointmentID, businessID)
			handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
				Error:     msgTimeSlotConflict,
				Conflicts: conflictErr.Conflicts,
			})

		case errors.Is(err, updateAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointments/%d - Not found: business_id=%d", appointmentID, businessID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, updateAppointment.ErrStaffNotFound):
			h.logger.Warn("PUT /appointments/%d - Staff not found: business_id=%d", appointmentID, businessID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, updateAppointment.ErrServiceNotFound):
			h.logger.Warn("PUT /appointments/%d - Service not found: business_id=%d", appointmentID, businessID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, updateAppointment.ErrNotReschedulable):
			h.logger.Warn("PUT /appointments/%d - Not reschedulable: business_id=%d", appointmentID, businessID)
			handlers.RespondError(w, http.StatusConflict, msgNotReschedulable)

		case errors.Is(err, updateAppointment.ErrInvalidInput):
			h.logger.Warn("PUT /appointments/%d - Invalid input: %v", appointmentID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, updateAppointment.ErrStorageUnavailable), errors.Is(err, txmanager.ErrRetryExhausted):
			h.logger.Error("PUT /appointments/%d - Storage unavailable: business_id=%d, error=%v", appointmentID, businessID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PUT /appointments/%d - Failed to update: business_id=%d, error=%v", appointmentID, businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments/%d - Appointment updated: business_id=%d", appointmentID, businessID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

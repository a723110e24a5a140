package cancel_appointment

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	appointmentsService "github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
	appointmentModels "github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidAppointmentID  = "некорректный ID записи"
	msgAppointmentNotFound   = "запись не найдена"
	msgNotCancellable        = "запись в текущем статусе нельзя отменить"
	msgCancellationWindowOut = "время бесплатной отмены истекло"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/cancel
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

	// Тело опционально: отмена без причины допустима
	var req appointmentModels.CancelAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /appointments/%d/cancel - Invalid request body: %v", appointmentID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Cancel(r.Context(), businessID, appointmentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/%d/cancel - Not found: business_id=%d", appointmentID, businessID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointmentsService.ErrNotCancellable):
			h.logger.Warn("PATCH /appointments/%d/cancel - Not cancellable: business_id=%d", appointmentID, businessID)
			handlers.RespondError(w, http.StatusConflict, msgNotCancellable)

		case errors.Is(err, appointmentsService.ErrCancellationWindowPassed):
			h.logger.Warn("PATCH /appointments/%d/cancel - Window passed: business_id=%d", appointmentID, businessID)
			handlers.RespondError(w, http.StatusConflict, msgCancellationWindowOut)

		default:
			h.logger.Error("PATCH /appointments/%d/cancel - Failed: business_id=%d, error=%v", appointmentID, businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/%d/cancel - Appointment cancelled: business_id=%d", appointmentID, businessID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

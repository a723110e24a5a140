package public_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	createAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
	publicBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/public_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartAt     = "некорректный формат времени начала, ожидается RFC3339"
	msgLinkNotFound       = "ссылка на запись не найдена"
	msgTimeSlotConflict   = "временной слот пересекается с существующей записью"
	msgStaffNotFound      = "сотрудник не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgStartInPast        = "время начала записи уже прошло"
)

type Handler struct {
	useCase PublicBookingUseCase
	logger  Logger
}

func NewHandler(useCase PublicBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/public/bookings/{token}
// Публичный маршрут: бизнес определяется токеном, аутентификации нет
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var req PublicBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /public/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(token)
	if err != nil {
		h.logger.Warn("POST /public/bookings - Failed to parse startAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, publicBooking.ErrLinkNotFound):
			h.logger.Warn("POST /public/bookings - Link not found")
			handlers.RespondNotFound(w, msgLinkNotFound)

		case errors.Is(err, createAppointment.ErrTimeSlotConflict):
			h.logger.Warn("POST /public/bookings - Conflict: staff_id=%d", req.StaffID)
			handlers.RespondError(w, http.StatusConflict, msgTimeSlotConflict)

		case errors.Is(err, createAppointment.ErrStaffNotFound):
			h.logger.Warn("POST /public/bookings - Staff not found: staff_id=%d", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /public/bookings - Service not found: services=%v", req.ServiceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrStartInPast):
			h.logger.Warn("POST /public/bookings - Start in past")
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, publicBooking.ErrInvalidInput), errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /public/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createAppointment.ErrStorageUnavailable), errors.Is(err, txmanager.ErrRetryExhausted):
			h.logger.Error("POST /public/bookings - Storage unavailable: error=%v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /public/bookings - Failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /public/bookings - Appointment created: appointment_id=%d, business_id=%d",
		result.ID, result.BusinessID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

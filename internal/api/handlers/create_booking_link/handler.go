package create_booking_link

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookinglinks"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidName        = "имя ссылки обязательно"
)

// CreateBookingLinkRequest HTTP request model
type CreateBookingLinkRequest struct {
	Name string `json:"name"`
}

type Handler struct {
	service BookingLinksService
	logger  Logger
}

func NewHandler(service BookingLinksService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/booking-links
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "отсутствует заголовок X-Business-ID")
		return
	}

	var req CreateBookingLinkRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-links - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), businessID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, bookinglinks.ErrInvalidName):
			h.logger.Warn("POST /booking-links - Invalid name: business_id=%d", businessID)
			handlers.RespondBadRequest(w, msgInvalidName)

		default:
			h.logger.Error("POST /booking-links - Failed: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking-links - Link created: link_id=%d, business_id=%d", result.ID, businessID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

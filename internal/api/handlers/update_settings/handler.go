package update_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	settingsService "github.com/m04kA/SMC-SchedulingService/internal/service/settings"
	settingsModels "github.com/m04kA/SMC-SchedulingService/internal/service/settings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEmptyUpdate        = "не передано ни одного поля для обновления"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "отсутствует заголовок X-Business-ID")
		return
	}

	var req settingsModels.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), businessID, &req)
	if err != nil {
		switch {
		case errors.Is(err, settingsService.ErrEmptyUpdate):
			h.logger.Warn("PUT /settings - Empty update: business_id=%d", businessID)
			handlers.RespondBadRequest(w, msgEmptyUpdate)

		case errors.Is(err, settingsService.ErrInvalidSlotLength),
			errors.Is(err, settingsService.ErrInvalidBufferTime),
			errors.Is(err, settingsService.ErrInvalidCancellationHours),
			errors.Is(err, settingsService.ErrInvalidWorkingHours),
			errors.Is(err, settingsService.ErrInvalidTimezone):
			h.logger.Warn("PUT /settings - Validation failed: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /settings - Failed: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /settings - Settings updated: business_id=%d", businessID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

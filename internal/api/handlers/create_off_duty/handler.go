package create_off_duty

import (
	"errors"
	"net/http"

	"github.com/avdmnk/SVC-BookingService/internal/api/handlers"
	"github.com/avdmnk/SVC-BookingService/internal/service/settings"
	"github.com/avdmnk/SVC-BookingService/internal/service/settings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle POST /api/v1/settings/off-duty
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOffDutyPeriodRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /settings/off-duty - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.CreateOffDutyPeriod(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("POST /settings/off-duty - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /settings/off-duty - Failed to create period: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /settings/off-duty - Period created successfully: period_id=%d", resp.ID)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

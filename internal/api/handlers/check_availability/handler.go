package check_availability

import (
	"errors"
	"net/http"

	"github.com/avdmnk/SVC-BookingService/internal/api/handlers"
	"github.com/avdmnk/SVC-BookingService/internal/service/settings"
	"github.com/avdmnk/SVC-BookingService/internal/service/settings/models"
)

const (
	msgMissingDates = "параметры startDate и endDate обязательны"
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

// Handle GET /api/v1/settings/check-availability?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("startDate")
	endDate := r.URL.Query().Get("endDate")
	if startDate == "" || endDate == "" {
		h.logger.Warn("GET /settings/check-availability - Missing date parameters")
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	resp, err := h.service.CheckAvailability(r.Context(), &models.CheckAvailabilityRequest{
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("GET /settings/check-availability - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /settings/check-availability - Failed to check availability: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /settings/check-availability - Checked range %s - %s: available=%v",
		startDate, endDate, resp.Available)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

package list_off_duty

import (
	"net/http"

	"github.com/avdmnk/SVC-BookingService/internal/api/handlers"
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

// Handle GET /api/v1/settings/off-duty
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListOffDutyPeriods(r.Context())
	if err != nil {
		h.logger.Error("GET /settings/off-duty - Failed to list periods: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /settings/off-duty - Periods listed successfully: count=%d", len(resp.Periods))
	handlers.RespondJSON(w, http.StatusOK, resp)
}

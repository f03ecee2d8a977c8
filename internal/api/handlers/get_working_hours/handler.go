package get_working_hours

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

// Handle GET /api/v1/settings/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetWorkingHours(r.Context())
	if err != nil {
		h.logger.Error("GET /settings/working-hours - Failed to fetch working hours: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /settings/working-hours - Working hours fetched successfully")
	handlers.RespondJSON(w, http.StatusOK, resp)
}

package get_booking_policy

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

// Handle GET /api/v1/settings/booking
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetPolicy(r.Context())
	if err != nil {
		h.logger.Error("GET /settings/booking - Failed to fetch policy: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /settings/booking - Policy fetched successfully")
	handlers.RespondJSON(w, http.StatusOK, resp)
}

package list_services

import (
	"net/http"

	"github.com/avdmnk/SVC-BookingService/internal/api/handlers"
	"github.com/avdmnk/SVC-BookingService/internal/api/middleware"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/services
// Клиентам отдаются только активные услуги; администратор может запросить
// все услуги параметром includeInactive=true.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	onlyActive := true
	if r.URL.Query().Get("includeInactive") == "true" && middleware.IsAdmin(r.Context()) {
		onlyActive = false
	}

	resp, err := h.service.List(r.Context(), onlyActive)
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services - Services listed successfully: count=%d", len(resp.Services))
	handlers.RespondJSON(w, http.StatusOK, resp)
}

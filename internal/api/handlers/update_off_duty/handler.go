package update_off_duty

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avdmnk/SVC-BookingService/internal/api/handlers"
	"github.com/avdmnk/SVC-BookingService/internal/service/settings"
	"github.com/avdmnk/SVC-BookingService/internal/service/settings/models"
)

const (
	msgInvalidPeriodID    = "некорректный ID периода"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "нерабочий период не найден"
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

// Handle PUT /api/v1/settings/off-duty/{periodId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	periodID, err := strconv.ParseInt(vars["periodId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /settings/off-duty/{id} - Invalid period ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriodID)
		return
	}

	var req models.UpdateOffDutyPeriodRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /settings/off-duty/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.UpdateOffDutyPeriod(r.Context(), periodID, &req)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrPeriodNotFound):
			h.logger.Warn("PUT /settings/off-duty/{id} - Period not found: period_id=%d", periodID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /settings/off-duty/{id} - Validation failed: period_id=%d, error=%v", periodID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /settings/off-duty/{id} - Failed to update period: period_id=%d, error=%v",
				periodID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /settings/off-duty/{id} - Period updated successfully: period_id=%d", periodID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

package delete_off_duty

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avdmnk/SVC-BookingService/internal/api/handlers"
	"github.com/avdmnk/SVC-BookingService/internal/service/settings"
)

const (
	msgInvalidPeriodID = "некорректный ID периода"
	msgNotFound        = "нерабочий период не найден"
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

// Handle DELETE /api/v1/settings/off-duty/{periodId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	periodID, err := strconv.ParseInt(vars["periodId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /settings/off-duty/{id} - Invalid period ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriodID)
		return
	}

	if err := h.service.DeleteOffDutyPeriod(r.Context(), periodID); err != nil {
		switch {
		case errors.Is(err, settings.ErrPeriodNotFound):
			h.logger.Warn("DELETE /settings/off-duty/{id} - Period not found: period_id=%d", periodID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /settings/off-duty/{id} - Failed to delete period: period_id=%d, error=%v",
				periodID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /settings/off-duty/{id} - Period deleted successfully: period_id=%d", periodID)
	handlers.RespondNoContent(w)
}

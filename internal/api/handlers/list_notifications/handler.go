package list_notifications

import (
	"net/http"

	"github.com/avdmnk/SVC-BookingService/internal/api/handlers"
	"github.com/avdmnk/SVC-BookingService/internal/api/middleware"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
)

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/notifications?onlyUnread=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /notifications - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	onlyUnread := r.URL.Query().Get("onlyUnread") == "true"

	resp, err := h.service.List(r.Context(), customerID, onlyUnread)
	if err != nil {
		h.logger.Error("GET /notifications - Failed to list notifications: customer_id=%d, error=%v",
			customerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /notifications - Notifications listed successfully: customer_id=%d, count=%d, unread=%d",
		customerID, len(resp.Notifications), resp.UnreadCount)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

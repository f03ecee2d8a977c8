package list_notifications

import (
	"context"

	"github.com/avdmnk/SVC-BookingService/internal/service/notifications/models"
)

type NotificationService interface {
	List(ctx context.Context, customerID int64, onlyUnread bool) (*models.NotificationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

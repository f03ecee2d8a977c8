package get_booking_policy

import (
	"context"

	"github.com/avdmnk/SVC-BookingService/internal/service/settings/models"
)

type SettingsService interface {
	GetPolicy(ctx context.Context) (*models.PolicyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

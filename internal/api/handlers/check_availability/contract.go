package check_availability

import (
	"context"

	"github.com/avdmnk/SVC-BookingService/internal/service/settings/models"
)

type SettingsService interface {
	CheckAvailability(ctx context.Context, req *models.CheckAvailabilityRequest) (*models.CheckAvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

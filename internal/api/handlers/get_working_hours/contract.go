package get_working_hours

import (
	"context"

	"github.com/avdmnk/SVC-BookingService/internal/service/settings/models"
)

type SettingsService interface {
	GetWorkingHours(ctx context.Context) (*models.WorkingHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

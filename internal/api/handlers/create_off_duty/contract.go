package create_off_duty

import (
	"context"

	"github.com/avdmnk/SVC-BookingService/internal/service/settings/models"
)

type SettingsService interface {
	CreateOffDutyPeriod(ctx context.Context, req *models.CreateOffDutyPeriodRequest) (*models.OffDutyPeriodResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

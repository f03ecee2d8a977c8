package update_off_duty

import (
	"context"

	"github.com/avdmnk/SVC-BookingService/internal/service/settings/models"
)

type SettingsService interface {
	UpdateOffDutyPeriod(ctx context.Context, id int64, req *models.UpdateOffDutyPeriodRequest) (*models.OffDutyPeriodResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

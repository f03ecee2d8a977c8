package list_off_duty

import (
	"context"

	"github.com/avdmnk/SVC-BookingService/internal/service/settings/models"
)

type SettingsService interface {
	ListOffDutyPeriods(ctx context.Context) (*models.OffDutyPeriodListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

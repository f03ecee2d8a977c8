package delete_off_duty

import "context"

type SettingsService interface {
	DeleteOffDutyPeriod(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

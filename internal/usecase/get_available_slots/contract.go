package get_available_slots

import (
	"context"
	"time"

	"github.com/avdmnk/SVC-BookingService/internal/domain"
	"github.com/avdmnk/SVC-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetActiveTimesOnDate возвращает времена начала активных бронирований на дату
	GetActiveTimesOnDate(ctx context.Context, date time.Time) ([]types.TimeString, error)
}

// ScheduleRepository интерфейс репозитория настроек расписания
type ScheduleRepository interface {
	GetWorkingHours(ctx context.Context) ([]domain.WorkingHoursEntry, error)
	ListOffDutyPeriods(ctx context.Context) ([]*domain.OffDutyPeriod, error)
	GetPolicy(ctx context.Context) (*domain.BookingPolicy, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

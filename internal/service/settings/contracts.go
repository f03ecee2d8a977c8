package settings

import (
	"context"
	"time"

	"github.com/avdmnk/SVC-BookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория настроек расписания
type ScheduleRepository interface {
	GetWorkingHours(ctx context.Context) ([]domain.WorkingHoursEntry, error)
	ReplaceWorkingHours(ctx context.Context, entries []domain.WorkingHoursEntry) error
	ListOffDutyPeriods(ctx context.Context) ([]*domain.OffDutyPeriod, error)
	ListOverlappingPeriods(ctx context.Context, start, end time.Time) ([]*domain.OffDutyPeriod, error)
	GetOffDutyPeriod(ctx context.Context, id int64) (*domain.OffDutyPeriod, error)
	CreateOffDutyPeriod(ctx context.Context, period *domain.OffDutyPeriod) (*domain.OffDutyPeriod, error)
	UpdateOffDutyPeriod(ctx context.Context, id int64, period *domain.OffDutyPeriod) (*domain.OffDutyPeriod, error)
	DeleteOffDutyPeriod(ctx context.Context, id int64) error
	GetPolicy(ctx context.Context) (*domain.BookingPolicy, error)
	UpsertPolicy(ctx context.Context, policy *domain.BookingPolicy) (*domain.BookingPolicy, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

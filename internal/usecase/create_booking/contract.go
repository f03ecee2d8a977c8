package create_booking

import (
	"context"
	"time"

	"github.com/avdmnk/SVC-BookingService/internal/domain"
	"github.com/avdmnk/SVC-BookingService/internal/integrations/accounts"
	"github.com/avdmnk/SVC-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveTimesOnDate(ctx context.Context, date time.Time) ([]types.TimeString, error)
}

// ScheduleRepository интерфейс репозитория настроек расписания
type ScheduleRepository interface {
	GetWorkingHours(ctx context.Context) ([]domain.WorkingHoursEntry, error)
	ListOffDutyPeriods(ctx context.Context) ([]*domain.OffDutyPeriod, error)
	GetPolicy(ctx context.Context) (*domain.BookingPolicy, error)
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// AccountsClient интерфейс клиента сервиса аккаунтов
type AccountsClient interface {
	GetCustomerWithGracefulDegradation(ctx context.Context, customerID int64) (*accounts.Customer, error)
}

// NotificationDispatcher интерфейс для отправки уведомлений о создании бронирования
type NotificationDispatcher interface {
	DispatchStatusChange(ctx context.Context, booking *domain.Booking, status domain.BookingStatus)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

package notifications

import (
	"context"

	"github.com/avdmnk/SVC-BookingService/internal/domain"
	"github.com/avdmnk/SVC-BookingService/internal/integrations/push"
)

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	ListByCustomer(ctx context.Context, customerID int64, onlyUnread bool) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id string, customerID int64) error
	CountUnread(ctx context.Context, customerID int64) (int, error)
}

// EventPublisher интерфейс публикации событий уведомлений (Redis pub/sub)
type EventPublisher interface {
	Publish(ctx context.Context, event interface{}) error
}

// EmailSender интерфейс отправки писем
type EmailSender interface {
	Send(to, subject, body string) error
}

// PushClient интерфейс отправки push-уведомлений
type PushClient interface {
	Send(ctx context.Context, msg push.Message) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/avdmnk/SVC-BookingService/internal/domain"
	notificationRepo "github.com/avdmnk/SVC-BookingService/internal/infra/storage/notification"
	pushClient "github.com/avdmnk/SVC-BookingService/internal/integrations/push"
	"github.com/avdmnk/SVC-BookingService/internal/service/notifications/models"
)

// Service сервис уведомлений о смене статуса бронирований
// Сохраняет in-app уведомление и рассылает его по доступным каналам:
// Redis pub/sub, email и push. Доставка best-effort - сбой канала
// не влияет на операцию, вызвавшую уведомление
type Service struct {
	notificationRepo NotificationRepository
	publisher        EventPublisher
	emailSender      EmailSender
	pushClient       PushClient
	businessName     string
	logger           Logger
}

// NewService создает новый экземпляр сервиса уведомлений
// publisher, emailSender и pushClient могут быть nil, если канал выключен в конфигурации
func NewService(
	notificationRepo NotificationRepository,
	publisher EventPublisher,
	emailSender EmailSender,
	pushClient PushClient,
	businessName string,
	logger Logger,
) *Service {
	return &Service{
		notificationRepo: notificationRepo,
		publisher:        publisher,
		emailSender:      emailSender,
		pushClient:       pushClient,
		businessName:     businessName,
		logger:           logger,
	}
}

// DispatchStatusChange создает уведомление о смене статуса бронирования
// и рассылает его по всем включенным каналам
// Ошибки доставки логируются, но не прерывают вызывающую операцию
func (s *Service) DispatchStatusChange(ctx context.Context, booking *domain.Booking, status domain.BookingStatus) {
	notification := s.buildNotification(booking, status)

	created, err := s.notificationRepo.Create(ctx, notification)
	if err != nil {
		s.logger.Error("DispatchStatusChange: failed to store notification for booking id=%d: %v", booking.ID, err)
		return
	}

	s.logger.Info("DispatchStatusChange: created notification id=%s for booking id=%d, type=%s",
		created.ID, booking.ID, created.Type)

	// Redis pub/sub для websocket-шлюза
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, models.ToEvent(created)); err != nil {
			s.logger.Error("DispatchStatusChange: failed to publish notification id=%s: %v", created.ID, err)
		}
	}

	// Email, если у клиента указан адрес
	if s.emailSender != nil && booking.CustomerEmail != nil {
		if err := s.emailSender.Send(*booking.CustomerEmail, created.Title, created.Message); err != nil {
			s.logger.Error("DispatchStatusChange: failed to send email for notification id=%s: %v", created.ID, err)
		}
	}

	// Push через шлюз
	if s.pushClient != nil {
		msg := pushClient.Message{
			CustomerID: booking.CustomerID,
			Title:      created.Title,
			Body:       created.Message,
		}
		if err := s.pushClient.Send(ctx, msg); err != nil {
			s.logger.Error("DispatchStatusChange: failed to send push for notification id=%s: %v", created.ID, err)
		}
	}
}

// List возвращает уведомления клиента вместе со счетчиком непрочитанных
func (s *Service) List(ctx context.Context, customerID int64, onlyUnread bool) (*models.NotificationListResponse, error) {
	s.logger.Info("List: fetching notifications for customer=%d, onlyUnread=%v", customerID, onlyUnread)

	notifications, err := s.notificationRepo.ListByCustomer(ctx, customerID, onlyUnread)
	if err != nil {
		s.logger.Error("List: repository error for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	unreadCount, err := s.notificationRepo.CountUnread(ctx, customerID)
	if err != nil {
		s.logger.Error("List: failed to count unread for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: List - failed to count unread: %v", ErrInternal, err)
	}

	return models.FromDomainNotificationList(notifications, unreadCount), nil
}

// MarkRead помечает уведомление прочитанным
// Клиент может пометить только своё уведомление
func (s *Service) MarkRead(ctx context.Context, id string, customerID int64) error {
	s.logger.Info("MarkRead: marking notification id=%s as read for customer=%d", id, customerID)

	if err := s.notificationRepo.MarkRead(ctx, id, customerID); err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			s.logger.Warn("MarkRead: notification id=%s not found for customer=%d", id, customerID)
			return ErrNotificationNotFound
		}
		s.logger.Error("MarkRead: repository error for notification id=%s: %v", id, err)
		return fmt.Errorf("%w: MarkRead - repository error: %v", ErrInternal, err)
	}

	return nil
}

// buildNotification собирает текст уведомления для статуса бронирования
func (s *Service) buildNotification(booking *domain.Booking, status domain.BookingStatus) *domain.Notification {
	date := booking.Date.Format(domain.DateFormat)
	slot := booking.StartTime.String()

	var title, message string
	switch domain.NotificationTypeForStatus(status) {
	case domain.NotificationBookingConfirmed:
		title = fmt.Sprintf("%s: booking confirmed", s.businessName)
		message = fmt.Sprintf("Your booking for %s on %s at %s has been confirmed.",
			booking.ServiceName, date, slot)
	case domain.NotificationBookingCancelled:
		title = fmt.Sprintf("%s: booking cancelled", s.businessName)
		message = fmt.Sprintf("Your booking for %s on %s at %s has been cancelled.",
			booking.ServiceName, date, slot)
	case domain.NotificationBookingCompleted:
		title = fmt.Sprintf("%s: booking completed", s.businessName)
		message = fmt.Sprintf("Your booking for %s on %s has been completed. Thank you!",
			booking.ServiceName, date)
	case domain.NotificationBookingNoShow:
		title = fmt.Sprintf("%s: missed booking", s.businessName)
		message = fmt.Sprintf("You missed your booking for %s on %s at %s.",
			booking.ServiceName, date, slot)
	default:
		title = fmt.Sprintf("%s: booking received", s.businessName)
		message = fmt.Sprintf("Your booking for %s on %s at %s is awaiting confirmation.",
			booking.ServiceName, date, slot)
	}

	return &domain.Notification{
		ID:         uuid.NewString(),
		CustomerID: booking.CustomerID,
		BookingID:  booking.ID,
		Type:       domain.NotificationTypeForStatus(status),
		Title:      title,
		Message:    message,
	}
}

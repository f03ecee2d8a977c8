package models

import (
	"time"

	"github.com/avdmnk/SVC-BookingService/internal/domain"
)

// NotificationEvent событие для публикации в Redis канал
type NotificationEvent struct {
	ID         string    `json:"id"`
	CustomerID int64     `json:"customerId"`
	BookingID  int64     `json:"bookingId"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NotificationResponse ответ с данными уведомления
type NotificationResponse struct {
	ID        string    `json:"id"`
	BookingID int64     `json:"bookingId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationListResponse ответ со списком уведомлений клиента
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unreadCount"`
}

// Методы конвертации

// FromDomainNotification конвертирует domain модель в DTO
func FromDomainNotification(n *domain.Notification) *NotificationResponse {
	if n == nil {
		return nil
	}

	return &NotificationResponse{
		ID:        n.ID,
		BookingID: n.BookingID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

// FromDomainNotificationList конвертирует список domain моделей в DTO
func FromDomainNotificationList(notifications []*domain.Notification, unreadCount int) *NotificationListResponse {
	resp := &NotificationListResponse{
		Notifications: make([]NotificationResponse, 0, len(notifications)),
		UnreadCount:   unreadCount,
	}

	for _, n := range notifications {
		if nResp := FromDomainNotification(n); nResp != nil {
			resp.Notifications = append(resp.Notifications, *nResp)
		}
	}

	return resp
}

// ToEvent конвертирует domain модель в событие для Redis
func ToEvent(n *domain.Notification) NotificationEvent {
	return NotificationEvent{
		ID:         n.ID,
		CustomerID: n.CustomerID,
		BookingID:  n.BookingID,
		Type:       string(n.Type),
		Title:      n.Title,
		Message:    n.Message,
		CreatedAt:  n.CreatedAt,
	}
}

package domain

import "time"

// NotificationType тип уведомления о смене статуса бронирования
type NotificationType string

const (
	NotificationBookingPending   NotificationType = "booking_pending"
	NotificationBookingConfirmed NotificationType = "booking_confirmed"
	NotificationBookingCancelled NotificationType = "booking_cancelled"
	NotificationBookingCompleted NotificationType = "booking_completed"
	NotificationBookingNoShow    NotificationType = "booking_no_show"
)

// Notification in-app уведомление клиента
type Notification struct {
	ID         string // uuid
	CustomerID int64
	BookingID  int64
	Type       NotificationType
	Title      string
	Message    string
	IsRead     bool
	CreatedAt  time.Time
}

// NotificationTypeForStatus возвращает тип уведомления для статуса бронирования
func NotificationTypeForStatus(status BookingStatus) NotificationType {
	switch status {
	case StatusConfirmed:
		return NotificationBookingConfirmed
	case StatusCompleted:
		return NotificationBookingCompleted
	case StatusNoShow:
		return NotificationBookingNoShow
	case StatusCancelledByCustomer, StatusCancelledByAdmin:
		return NotificationBookingCancelled
	default:
		return NotificationBookingPending
	}
}

package domain

import (
	"time"

	"github.com/avdmnk/SVC-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending             BookingStatus = "pending"
	StatusConfirmed           BookingStatus = "confirmed"
	StatusCompleted           BookingStatus = "completed"
	StatusCancelledByCustomer BookingStatus = "cancelled_by_customer"
	StatusCancelledByAdmin    BookingStatus = "cancelled_by_admin"
	StatusNoShow              BookingStatus = "no_show"
)

// Booking represents a customer booking in the system
type Booking struct {
	ID         int64
	CustomerID int64
	ServiceID  int64
	Date       time.Time
	StartTime  types.TimeString
	Status     BookingStatus

	// Denormalized data for history and notification delivery
	ServiceName     string
	ServicePrice    float64
	DurationMinutes int
	CustomerName    string
	CustomerEmail   *string
	CustomerPhone   *string
	Notes           *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies a slot
// (cancelled and no-show bookings free their slot)
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByCustomer &&
		b.Status != StatusCancelledByAdmin &&
		b.Status != StatusNoShow
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByCustomer || b.Status == StatusCancelledByAdmin
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// BookingsFilter фильтр для выборки бронирований в админке
type BookingsFilter struct {
	CustomerID      *int64         // Фильтр по клиенту (опционально)
	ServiceID       *int64         // Фильтр по услуге (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые и no-show бронирования
}

// ValidStatusTransitions допустимые переходы статусов бронирования
// Ключ - текущий статус, значение - набор статусов, в которые можно перейти
var ValidStatusTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelledByCustomer, StatusCancelledByAdmin},
	StatusConfirmed: {StatusCompleted, StatusCancelledByCustomer, StatusCancelledByAdmin, StatusNoShow},
}

// CanTransitionTo проверяет допустимость перехода в статус target
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range ValidStatusTransitions[b.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

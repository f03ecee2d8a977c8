package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdmnk/SVC-BookingService/internal/domain"
	bookingRepo "github.com/avdmnk/SVC-BookingService/internal/infra/storage/booking"
	"github.com/avdmnk/SVC-BookingService/internal/service/bookings/models"
	"github.com/avdmnk/SVC-BookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking

	cancelledWith      domain.BookingStatus
	cancelledReason    string
	updatedWith        domain.BookingStatus
	updateStatusCalled bool
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByCustomerID(_ context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.CustomerID != customerID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.updateStatusCalled = true
	f.updatedWith = status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, status domain.BookingStatus, reason string) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.cancelledWith = status
	f.cancelledReason = reason
	return nil
}

type fakeDispatcher struct {
	dispatched []domain.BookingStatus
}

func (f *fakeDispatcher) DispatchStatusChange(_ context.Context, _ *domain.Booking, status domain.BookingStatus) {
	f.dispatched = append(f.dispatched, status)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func pendingBooking(id, customerID int64) *domain.Booking {
	return &domain.Booking{
		ID:         id,
		CustomerID: customerID,
		ServiceID:  3,
		Date:       time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:00",
		Status:     domain.StatusPending,
	}
}

func TestGetByID_OwnerCanRead(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1, 42))
	svc := NewService(repo, &fakeDispatcher{}, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1, 42, false)

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
}

func TestGetByID_ForeignBookingDenied(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1, 42))
	svc := NewService(repo, &fakeDispatcher{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 1, 99, false)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_AdminCanReadForeign(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1, 42))
	svc := NewService(repo, &fakeDispatcher{}, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1, 99, true)

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.CustomerID)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := NewService(repo, &fakeDispatcher{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 404, 42, false)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_ByOwner(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1, 42))
	dispatcher := &fakeDispatcher{}
	svc := NewService(repo, dispatcher, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		CustomerID:         42,
		CancellationReason: "changed my mind",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByCustomer, repo.cancelledWith)
	assert.Equal(t, "changed my mind", repo.cancelledReason)
	require.Len(t, dispatcher.dispatched, 1)
	assert.Equal(t, domain.StatusCancelledByCustomer, dispatcher.dispatched[0])
}

func TestCancel_ByAdmin(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1, 42))
	dispatcher := &fakeDispatcher{}
	svc := NewService(repo, dispatcher, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		CustomerID: 99,
		IsAdmin:    true,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByAdmin, repo.cancelledWith)
}

func TestCancel_ForeignBookingDenied(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1, 42))
	dispatcher := &fakeDispatcher{}
	svc := NewService(repo, dispatcher, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{CustomerID: 99})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, dispatcher.dispatched)
}

func TestCancel_CompletedBookingRejected(t *testing.T) {
	b := pendingBooking(1, 42)
	b.Status = domain.StatusCompleted
	repo := newFakeBookingRepo(b)
	svc := NewService(repo, &fakeDispatcher{}, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{CustomerID: 42})

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestUpdateStatus_ValidTransition(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1, 42))
	dispatcher := &fakeDispatcher{}
	svc := NewService(repo, dispatcher, nopLogger{})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, repo.updatedWith)
	require.Len(t, dispatcher.dispatched, 1)
	assert.Equal(t, domain.StatusConfirmed, dispatcher.dispatched[0])
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1, 42))
	svc := NewService(repo, &fakeDispatcher{}, nopLogger{})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "frozen"})

	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.False(t, repo.updateStatusCalled)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	// pending -> completed минует подтверждение
	repo := newFakeBookingRepo(pendingBooking(1, 42))
	svc := NewService(repo, &fakeDispatcher{}, nopLogger{})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "completed"})

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.False(t, repo.updateStatusCalled)
}

func TestGetCustomerBookings_FiltersByStatus(t *testing.T) {
	confirmed := pendingBooking(2, 42)
	confirmed.Status = domain.StatusConfirmed
	repo := newFakeBookingRepo(pendingBooking(1, 42), confirmed, pendingBooking(3, 99))
	svc := NewService(repo, &fakeDispatcher{}, nopLogger{})

	resp, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
		CustomerID: 42,
		Status:     ptr.Ptr("confirmed"),
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(2), resp.Bookings[0].ID)
}

func TestGetCustomerBookings_UnknownStatusRejected(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := NewService(repo, &fakeDispatcher{}, nopLogger{})

	_, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
		CustomerID: 42,
		Status:     ptr.Ptr("frozen"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

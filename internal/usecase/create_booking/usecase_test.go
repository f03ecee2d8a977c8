package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdmnk/SVC-BookingService/internal/domain"
	bookingRepo "github.com/avdmnk/SVC-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/avdmnk/SVC-BookingService/internal/infra/storage/catalog"
	scheduleRepo "github.com/avdmnk/SVC-BookingService/internal/infra/storage/schedule"
	accountsClient "github.com/avdmnk/SVC-BookingService/internal/integrations/accounts"
	"github.com/avdmnk/SVC-BookingService/pkg/ptr"
	"github.com/avdmnk/SVC-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	times     []types.TimeString
	created   []*domain.Booking
	createErr error
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	stored := *booking
	stored.ID = int64(len(f.created) + 1)
	f.created = append(f.created, &stored)
	return &stored, nil
}

func (f *fakeBookingRepo) GetActiveTimesOnDate(ctx context.Context, date time.Time) ([]types.TimeString, error) {
	return f.times, nil
}

type fakeScheduleRepo struct {
	hours   []domain.WorkingHoursEntry
	periods []*domain.OffDutyPeriod
	policy  *domain.BookingPolicy
}

func (f *fakeScheduleRepo) GetWorkingHours(ctx context.Context) ([]domain.WorkingHoursEntry, error) {
	return f.hours, nil
}

func (f *fakeScheduleRepo) ListOffDutyPeriods(ctx context.Context) ([]*domain.OffDutyPeriod, error) {
	return f.periods, nil
}

func (f *fakeScheduleRepo) GetPolicy(ctx context.Context) (*domain.BookingPolicy, error) {
	if f.policy == nil {
		return nil, scheduleRepo.ErrPolicyNotFound
	}
	return f.policy, nil
}

type fakeCatalogRepo struct {
	service *domain.Service
}

func (f *fakeCatalogRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	if f.service == nil || f.service.ID != id {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return f.service, nil
}

type fakeAccountsClient struct {
	customer *accountsClient.Customer
	err      error
}

func (f *fakeAccountsClient) GetCustomerWithGracefulDegradation(ctx context.Context, customerID int64) (*accountsClient.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.customer, nil
}

type fakeNotifier struct {
	dispatched []domain.BookingStatus
}

func (f *fakeNotifier) DispatchStatusChange(ctx context.Context, booking *domain.Booking, status domain.BookingStatus) {
	f.dispatched = append(f.dispatched, status)
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// monday 2024-06-10 - понедельник
var monday = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

// farPast "сейчас" задолго до тестовой даты
var farPast = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func allWorkingWeek() []domain.WorkingHoursEntry {
	entries := make([]domain.WorkingHoursEntry, 0, len(domain.Weekdays))
	for _, d := range domain.Weekdays {
		entries = append(entries, domain.WorkingHoursEntry{
			DayOfWeek:    d,
			StartTime:    "09:00",
			EndTime:      "17:00",
			IsWorkingDay: true,
		})
	}
	return entries
}

type deps struct {
	booking  *fakeBookingRepo
	schedule *fakeScheduleRepo
	catalog  *fakeCatalogRepo
	accounts *fakeAccountsClient
	notifier *fakeNotifier
}

func defaultDeps() *deps {
	return &deps{
		booking: &fakeBookingRepo{},
		schedule: &fakeScheduleRepo{
			hours:  allWorkingWeek(),
			policy: &domain.BookingPolicy{MaxBookingsPerDay: 10, TimeBufferMinutes: 60},
		},
		catalog: &fakeCatalogRepo{
			service: &domain.Service{ID: 3, Name: "Haircut", Price: 25.0, DurationMinutes: 30, IsActive: true},
		},
		accounts: &fakeAccountsClient{
			customer: &accountsClient.Customer{ID: 42, Name: "Jordan", Email: ptr.Ptr("jordan@example.com")},
		},
		notifier: &fakeNotifier{},
	}
}

func newTestUseCase(d *deps) *UseCase {
	uc := NewUseCase(d.booking, d.schedule, d.catalog, d.accounts, d.notifier, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: farPast}
	return uc
}

func validRequest() *Request {
	return &Request{
		CustomerID: 42,
		ServiceID:  3,
		Date:       monday,
		StartTime:  types.TimeString("10:00"),
	}
}

func TestExecute_CreatesBooking(t *testing.T) {
	d := defaultDeps()
	uc := newTestUseCase(d)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, 25.0, resp.ServicePrice)
	assert.Equal(t, "Jordan", resp.CustomerName)

	require.Len(t, d.booking.created, 1)
	assert.Equal(t, "jordan@example.com", *d.booking.created[0].CustomerEmail)

	// Уведомление о новом бронировании отправлено
	assert.Equal(t, []domain.BookingStatus{domain.StatusPending}, d.notifier.dispatched)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	d := defaultDeps()
	d.catalog.service = nil
	uc := newTestUseCase(d)

	_, err := uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ServiceInactive(t *testing.T) {
	d := defaultDeps()
	d.catalog.service.IsActive = false
	uc := newTestUseCase(d)

	_, err := uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrServiceInactive)
}

func TestExecute_CustomerNotFound(t *testing.T) {
	d := defaultDeps()
	d.accounts.err = accountsClient.ErrCustomerNotFound
	uc := newTestUseCase(d)

	_, err := uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestExecute_AccountsDegradedProceedsWithoutContacts(t *testing.T) {
	d := defaultDeps()
	d.accounts.err = accountsClient.ErrServiceDegraded
	uc := newTestUseCase(d)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "Customer #42", resp.CustomerName)
	require.Len(t, d.booking.created, 1)
	assert.Nil(t, d.booking.created[0].CustomerEmail)
}

func TestExecute_DateInPast(t *testing.T) {
	d := defaultDeps()
	uc := newTestUseCase(d)
	uc.timeProvider = &fixedTimeProvider{now: monday.AddDate(0, 1, 0)}

	_, err := uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DayBlockedByOffDuty(t *testing.T) {
	d := defaultDeps()
	d.schedule.periods = []*domain.OffDutyPeriod{
		{StartDate: monday, EndDate: monday, Reason: domain.ReasonSickLeave},
	}
	uc := newTestUseCase(d)

	_, err := uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrDayNotBookable)
	assert.Contains(t, err.Error(), string(domain.ReasonSickLeave))
	assert.Empty(t, d.booking.created)
}

func TestExecute_SlotFilteredByBuffer(t *testing.T) {
	// Существующее бронирование на 10:00 с буфером 60 минут закрывает 10:30
	d := defaultDeps()
	d.booking.times = []types.TimeString{"10:00"}
	uc := newTestUseCase(d)

	req := validRequest()
	req.StartTime = types.TimeString("10:30")

	_, err := uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, d.booking.created)
}

func TestExecute_ConcurrentSlotTaken(t *testing.T) {
	// Уникальный индекс БД сработал при вставке
	d := defaultDeps()
	d.booking.createErr = bookingRepo.ErrSlotTaken
	uc := newTestUseCase(d)

	_, err := uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, d.notifier.dispatched)
}

func TestExecute_InvalidStartTime(t *testing.T) {
	d := defaultDeps()
	uc := newTestUseCase(d)

	req := validRequest()
	req.StartTime = types.TimeString("25:99")

	_, err := uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrInvalidInput)
}

package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdmnk/SVC-BookingService/internal/domain"
	scheduleRepo "github.com/avdmnk/SVC-BookingService/internal/infra/storage/schedule"
	"github.com/avdmnk/SVC-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	times []types.TimeString
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

func allWorkingWeek() []domain.WorkingHoursEntry {
	entries := make([]domain.WorkingHoursEntry, 0, len(domain.Weekdays))
	for _, d := range domain.Weekdays {
		entries = append(entries, domain.WorkingHoursEntry{
			DayOfWeek:    d,
			StartTime:    "09:00",
			EndTime:      "11:00",
			IsWorkingDay: true,
		})
	}
	return entries
}

func newTestUseCase(booking *fakeBookingRepo, schedule *fakeScheduleRepo, now time.Time) *UseCase {
	uc := NewUseCase(booking, schedule, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_ReturnsSlots(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{
			hours:  allWorkingWeek(),
			policy: &domain.BookingPolicy{MaxBookingsPerDay: 10, TimeBufferMinutes: 0},
		},
		time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday})

	require.NoError(t, err)
	assert.True(t, resp.IsBookableDay)
	assert.Empty(t, resp.BlockingReason)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00", "10:30"}, resp.AvailableSlots)
}

func TestExecute_UsesDefaultPolicyWhenMissing(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{hours: allWorkingWeek()},
		time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday})

	require.NoError(t, err)
	assert.True(t, resp.IsBookableDay)
	assert.NotEmpty(t, resp.AvailableSlots)
}

func TestExecute_BlockedByOffDutyPeriod(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{
			hours: allWorkingWeek(),
			periods: []*domain.OffDutyPeriod{
				{StartDate: monday, EndDate: monday, Reason: domain.ReasonVacation},
			},
			policy: &domain.BookingPolicy{MaxBookingsPerDay: 10, TimeBufferMinutes: 0},
		},
		time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday})

	require.NoError(t, err)
	assert.False(t, resp.IsBookableDay)
	assert.Equal(t, string(domain.ReasonVacation), resp.BlockingReason)
	assert.Empty(t, resp.AvailableSlots)
}

func TestExecute_RejectsZeroDate(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{}, time.Now())

	_, err := uc.Execute(context.Background(), &Request{})

	require.ErrorIs(t, err, ErrInvalidInput)
}

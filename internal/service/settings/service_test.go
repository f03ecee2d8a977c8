package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdmnk/SVC-BookingService/internal/domain"
	scheduleRepo "github.com/avdmnk/SVC-BookingService/internal/infra/storage/schedule"
	"github.com/avdmnk/SVC-BookingService/internal/service/settings/models"
)

// fakeScheduleRepo in-memory реализация ScheduleRepository для тестов
type fakeScheduleRepo struct {
	hours   []domain.WorkingHoursEntry
	periods []*domain.OffDutyPeriod
	policy  *domain.BookingPolicy

	replaceCalled bool
	upsertCalled  bool
}

func (f *fakeScheduleRepo) GetWorkingHours(ctx context.Context) ([]domain.WorkingHoursEntry, error) {
	return f.hours, nil
}

func (f *fakeScheduleRepo) ReplaceWorkingHours(ctx context.Context, entries []domain.WorkingHoursEntry) error {
	f.replaceCalled = true
	f.hours = entries
	return nil
}

func (f *fakeScheduleRepo) ListOffDutyPeriods(ctx context.Context) ([]*domain.OffDutyPeriod, error) {
	return f.periods, nil
}

func (f *fakeScheduleRepo) ListOverlappingPeriods(ctx context.Context, start, end time.Time) ([]*domain.OffDutyPeriod, error) {
	var result []*domain.OffDutyPeriod
	for _, p := range f.periods {
		if p.Overlaps(start, end) {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakeScheduleRepo) GetOffDutyPeriod(ctx context.Context, id int64) (*domain.OffDutyPeriod, error) {
	for _, p := range f.periods {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, scheduleRepo.ErrPeriodNotFound
}

func (f *fakeScheduleRepo) CreateOffDutyPeriod(ctx context.Context, period *domain.OffDutyPeriod) (*domain.OffDutyPeriod, error) {
	created := *period
	created.ID = int64(len(f.periods) + 1)
	f.periods = append(f.periods, &created)
	return &created, nil
}

func (f *fakeScheduleRepo) UpdateOffDutyPeriod(ctx context.Context, id int64, period *domain.OffDutyPeriod) (*domain.OffDutyPeriod, error) {
	for i, p := range f.periods {
		if p.ID == id {
			updated := *period
			updated.ID = id
			f.periods[i] = &updated
			return &updated, nil
		}
	}
	return nil, scheduleRepo.ErrPeriodNotFound
}

func (f *fakeScheduleRepo) DeleteOffDutyPeriod(ctx context.Context, id int64) error {
	for i, p := range f.periods {
		if p.ID == id {
			f.periods = append(f.periods[:i], f.periods[i+1:]...)
			return nil
		}
	}
	return scheduleRepo.ErrPeriodNotFound
}

func (f *fakeScheduleRepo) GetPolicy(ctx context.Context) (*domain.BookingPolicy, error) {
	if f.policy == nil {
		return nil, scheduleRepo.ErrPolicyNotFound
	}
	return f.policy, nil
}

func (f *fakeScheduleRepo) UpsertPolicy(ctx context.Context, policy *domain.BookingPolicy) (*domain.BookingPolicy, error) {
	f.upsertCalled = true
	stored := *policy
	stored.ID = 1
	f.policy = &stored
	return &stored, nil
}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestService(repo *fakeScheduleRepo) *Service {
	return NewService(repo, &fakeTxManager{}, nopLogger{})
}

func weekEntries() []models.WorkingHoursEntryRequest {
	days := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	entries := make([]models.WorkingHoursEntryRequest, len(days))
	for i, d := range days {
		entries[i] = models.WorkingHoursEntryRequest{
			DayOfWeek:    d,
			StartTime:    "09:00",
			EndTime:      "18:00",
			IsWorkingDay: i < 5,
		}
	}
	return entries
}

func TestUpdateWorkingHours_ReplacesSchedule(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newTestService(repo)

	resp, err := svc.UpdateWorkingHours(context.Background(), &models.UpdateWorkingHoursRequest{
		Entries: weekEntries(),
	})

	require.NoError(t, err)
	assert.True(t, repo.replaceCalled)
	assert.Len(t, resp.Entries, 7)
	assert.Equal(t, "monday", resp.Entries[0].DayOfWeek)
	assert.True(t, resp.Entries[0].IsWorkingDay)
	assert.False(t, resp.Entries[6].IsWorkingDay)
}

func TestUpdateWorkingHours_RejectsWrongEntryCount(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newTestService(repo)

	_, err := svc.UpdateWorkingHours(context.Background(), &models.UpdateWorkingHoursRequest{
		Entries: weekEntries()[:6],
	})

	require.ErrorIs(t, err, ErrInvalidSchedule)
	assert.False(t, repo.replaceCalled)
}

func TestUpdateWorkingHours_RejectsDuplicateDay(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newTestService(repo)

	entries := weekEntries()
	entries[6].DayOfWeek = "monday"

	_, err := svc.UpdateWorkingHours(context.Background(), &models.UpdateWorkingHoursRequest{Entries: entries})

	require.ErrorIs(t, err, ErrInvalidSchedule)
	assert.False(t, repo.replaceCalled)
}

func TestUpdateWorkingHours_RejectsInvertedInterval(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newTestService(repo)

	entries := weekEntries()
	entries[0].StartTime = "18:00"
	entries[0].EndTime = "09:00"

	_, err := svc.UpdateWorkingHours(context.Background(), &models.UpdateWorkingHoursRequest{Entries: entries})

	require.ErrorIs(t, err, ErrInvalidSchedule)
	assert.False(t, repo.replaceCalled)
}

func TestUpdateWorkingHours_AllowsNonWorkingDayWithAnyTimes(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newTestService(repo)

	// Для нерабочего дня интервал не проверяется
	entries := weekEntries()
	entries[6].StartTime = "00:00"
	entries[6].EndTime = "00:00"

	_, err := svc.UpdateWorkingHours(context.Background(), &models.UpdateWorkingHoursRequest{Entries: entries})

	require.NoError(t, err)
}

func TestCreateOffDutyPeriod_Valid(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newTestService(repo)

	resp, err := svc.CreateOffDutyPeriod(context.Background(), &models.CreateOffDutyPeriodRequest{
		StartDate: "2025-10-15",
		EndDate:   "2025-10-20",
		Reason:    "Vacation",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2025-10-15", resp.StartDate)
	assert.Equal(t, "2025-10-20", resp.EndDate)
	assert.Equal(t, "Vacation", resp.Reason)
}

func TestCreateOffDutyPeriod_RejectsEndBeforeStart(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newTestService(repo)

	_, err := svc.CreateOffDutyPeriod(context.Background(), &models.CreateOffDutyPeriodRequest{
		StartDate: "2025-10-20",
		EndDate:   "2025-10-15",
		Reason:    "Vacation",
	})

	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateOffDutyPeriod_RejectsUnknownReason(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newTestService(repo)

	_, err := svc.CreateOffDutyPeriod(context.Background(), &models.CreateOffDutyPeriodRequest{
		StartDate: "2025-10-15",
		EndDate:   "2025-10-20",
		Reason:    "Quarantine",
	})

	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateOffDutyPeriod_NotFound(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newTestService(repo)

	_, err := svc.UpdateOffDutyPeriod(context.Background(), 42, &models.UpdateOffDutyPeriodRequest{
		StartDate: "2025-10-15",
		EndDate:   "2025-10-20",
		Reason:    "Holiday",
	})

	require.ErrorIs(t, err, ErrPeriodNotFound)
}

func TestDeleteOffDutyPeriod_NotFound(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newTestService(repo)

	err := svc.DeleteOffDutyPeriod(context.Background(), 42)

	require.ErrorIs(t, err, ErrPeriodNotFound)
}

func TestCheckAvailability_ReportsConflicts(t *testing.T) {
	repo := &fakeScheduleRepo{
		periods: []*domain.OffDutyPeriod{
			{
				ID:        1,
				StartDate: time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC),
				Reason:    domain.ReasonVacation,
			},
		},
	}
	svc := newTestService(repo)

	resp, err := svc.CheckAvailability(context.Background(), &models.CheckAvailabilityRequest{
		StartDate: "2025-10-20",
		EndDate:   "2025-10-25",
	})

	require.NoError(t, err)
	assert.False(t, resp.Available)
	require.Len(t, resp.ConflictingPeriods, 1)
	assert.Equal(t, int64(1), resp.ConflictingPeriods[0].ID)
}

func TestCheckAvailability_NoConflicts(t *testing.T) {
	repo := &fakeScheduleRepo{
		periods: []*domain.OffDutyPeriod{
			{
				ID:        1,
				StartDate: time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC),
				Reason:    domain.ReasonVacation,
			},
		},
	}
	svc := newTestService(repo)

	resp, err := svc.CheckAvailability(context.Background(), &models.CheckAvailabilityRequest{
		StartDate: "2025-11-01",
		EndDate:   "2025-11-05",
	})

	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Empty(t, resp.ConflictingPeriods)
}

func TestGetPolicy_CreatesDefaultsLazily(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newTestService(repo)

	resp, err := svc.GetPolicy(context.Background())

	require.NoError(t, err)
	assert.True(t, repo.upsertCalled)
	assert.Equal(t, domain.DefaultMaxBookingsPerDay, resp.MaxBookingsPerDay)
	assert.Equal(t, domain.DefaultTimeBufferMinutes, resp.TimeBufferMinutes)
}

func TestGetPolicy_ReturnsExisting(t *testing.T) {
	repo := &fakeScheduleRepo{
		policy: &domain.BookingPolicy{ID: 1, MaxBookingsPerDay: 5, TimeBufferMinutes: 30},
	}
	svc := newTestService(repo)

	resp, err := svc.GetPolicy(context.Background())

	require.NoError(t, err)
	assert.False(t, repo.upsertCalled)
	assert.Equal(t, 5, resp.MaxBookingsPerDay)
	assert.Equal(t, 30, resp.TimeBufferMinutes)
}

func TestUpdatePolicy_RejectsOutOfRange(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newTestService(repo)

	_, err := svc.UpdatePolicy(context.Background(), &models.UpdatePolicyRequest{
		MaxBookingsPerDay: 0,
		TimeBufferMinutes: 60,
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdatePolicy(context.Background(), &models.UpdatePolicyRequest{
		MaxBookingsPerDay: 10,
		TimeBufferMinutes: -1,
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdatePolicy_Valid(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newTestService(repo)

	resp, err := svc.UpdatePolicy(context.Background(), &models.UpdatePolicyRequest{
		MaxBookingsPerDay: 15,
		TimeBufferMinutes: 45,
	})

	require.NoError(t, err)
	assert.Equal(t, 15, resp.MaxBookingsPerDay)
	assert.Equal(t, 45, resp.TimeBufferMinutes)
}

package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdmnk/SVC-BookingService/internal/domain"
	"github.com/avdmnk/SVC-BookingService/pkg/types"
)

// monday 2024-06-10 - понедельник
var monday = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

// farFuture "сейчас" задолго до тестовых дат, чтобы фильтр прошедшего времени не срабатывал
var farPast = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func fullWeek(workingDays ...domain.Weekday) []domain.WorkingHoursEntry {
	working := make(map[domain.Weekday]bool, len(workingDays))
	for _, d := range workingDays {
		working[d] = true
	}

	entries := make([]domain.WorkingHoursEntry, 0, len(domain.Weekdays))
	for _, d := range domain.Weekdays {
		entries = append(entries, domain.WorkingHoursEntry{
			DayOfWeek:    d,
			StartTime:    "09:00",
			EndTime:      "17:00",
			IsWorkingDay: working[d],
		})
	}
	return entries
}

func policy(maxPerDay, buffer int) domain.BookingPolicy {
	return domain.BookingPolicy{MaxBookingsPerDay: maxPerDay, TimeBufferMinutes: buffer}
}

func slots(values ...string) []types.TimeString {
	result := make([]types.TimeString, len(values))
	for i, v := range values {
		result[i] = types.TimeString(v)
	}
	return result
}

func TestCompute_NotWorkingDay(t *testing.T) {
	// Понедельник нерабочий - блокировка независимо от периодов и бронирований
	hours := fullWeek(domain.Tuesday, domain.Wednesday)

	offDuty := []domain.OffDutyPeriod{
		{StartDate: monday, EndDate: monday, Reason: domain.ReasonVacation},
	}

	result := Compute(monday, hours, offDuty, policy(10, 60), slots("10:00"), farPast)

	assert.False(t, result.IsBookableDay)
	assert.Equal(t, domain.BlockingReasonNotWorkingDay, result.BlockingReason)
	assert.Empty(t, result.AvailableSlots)
}

func TestCompute_MissingWeekdayEntryTreatedAsClosed(t *testing.T) {
	// В шаблоне нет записи на понедельник вообще
	hours := []domain.WorkingHoursEntry{
		{DayOfWeek: domain.Tuesday, StartTime: "09:00", EndTime: "17:00", IsWorkingDay: true},
	}

	result := Compute(monday, hours, nil, policy(10, 0), nil, farPast)

	assert.False(t, result.IsBookableDay)
	assert.Equal(t, domain.BlockingReasonNotWorkingDay, result.BlockingReason)
}

func TestCompute_MalformedEntryTreatedAsClosed(t *testing.T) {
	// Рабочий день с start >= end - fail-safe закрытие дня
	hours := []domain.WorkingHoursEntry{
		{DayOfWeek: domain.Monday, StartTime: "17:00", EndTime: "09:00", IsWorkingDay: true},
	}

	result := Compute(monday, hours, nil, policy(10, 0), nil, farPast)

	assert.False(t, result.IsBookableDay)
	assert.Equal(t, domain.BlockingReasonNotWorkingDay, result.BlockingReason)
	assert.Empty(t, result.AvailableSlots)
}

func TestCompute_OffDutyPeriod(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		blocked bool
	}{
		{name: "date inside period", start: monday.AddDate(0, 0, -2), end: monday.AddDate(0, 0, 2), blocked: true},
		{name: "date equals start bound", start: monday, end: monday.AddDate(0, 0, 5), blocked: true},
		{name: "date equals end bound", start: monday.AddDate(0, 0, -5), end: monday, blocked: true},
		{name: "single day period", start: monday, end: monday, blocked: true},
		{name: "period before date", start: monday.AddDate(0, 0, -7), end: monday.AddDate(0, 0, -1), blocked: false},
		{name: "period after date", start: monday.AddDate(0, 0, 1), end: monday.AddDate(0, 0, 7), blocked: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offDuty := []domain.OffDutyPeriod{
				{StartDate: tt.start, EndDate: tt.end, Reason: domain.ReasonSickLeave},
			}

			result := Compute(monday, fullWeek(domain.Monday), offDuty, policy(10, 0), nil, farPast)

			if tt.blocked {
				assert.False(t, result.IsBookableDay)
				assert.Equal(t, string(domain.ReasonSickLeave), result.BlockingReason)
				assert.Empty(t, result.AvailableSlots)
			} else {
				assert.True(t, result.IsBookableDay)
				assert.NotEmpty(t, result.AvailableSlots)
			}
		})
	}
}

func TestCompute_OffDutyReasonDistinguishableFromClosedDay(t *testing.T) {
	offDuty := []domain.OffDutyPeriod{
		{StartDate: monday, EndDate: monday, Reason: domain.ReasonHoliday},
	}

	onLeave := Compute(monday, fullWeek(domain.Monday), offDuty, policy(10, 0), nil, farPast)
	closed := Compute(monday, fullWeek(domain.Tuesday), nil, policy(10, 0), nil, farPast)

	assert.Equal(t, string(domain.ReasonHoliday), onLeave.BlockingReason)
	assert.Equal(t, domain.BlockingReasonNotWorkingDay, closed.BlockingReason)
	assert.NotEqual(t, onLeave.BlockingReason, closed.BlockingReason)
}

func TestCompute_DailyLimit(t *testing.T) {
	// Ровно N бронирований при лимите N - день блокируется целиком
	existing := slots("09:00", "11:00", "15:00")

	result := Compute(monday, fullWeek(domain.Monday), nil, policy(3, 0), existing, farPast)

	assert.False(t, result.IsBookableDay)
	assert.Equal(t, domain.BlockingReasonDailyLimit, result.BlockingReason)
	assert.Empty(t, result.AvailableSlots)

	// N-1 бронирований - день ещё доступен
	result = Compute(monday, fullWeek(domain.Monday), nil, policy(3, 0), existing[:2], farPast)
	assert.True(t, result.IsBookableDay)
}

func TestCompute_FullDayNoBookings(t *testing.T) {
	// 09:00-17:00, буфер 0, без бронирований: слоты каждые 30 минут,
	// конец дня исключается (слота 17:00 нет)
	result := Compute(monday, fullWeek(domain.Monday), nil, policy(10, 0), nil, farPast)

	require.True(t, result.IsBookableDay)
	assert.Empty(t, result.BlockingReason)

	expected := slots(
		"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00", "12:30",
		"13:00", "13:30", "14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
	)
	assert.Equal(t, expected, result.AvailableSlots)
}

func TestCompute_BufferFiltering(t *testing.T) {
	// Одно бронирование в 12:00, буфер 60: исключаются 11:30..12:30,
	// разница ровно в 60 минут (11:00 и 13:00) допустима
	result := Compute(monday, fullWeek(domain.Monday), nil, policy(10, 60), slots("12:00"), farPast)

	require.True(t, result.IsBookableDay)

	excluded := slots("11:30", "12:00", "12:30")
	kept := slots("11:00", "13:00")

	for _, s := range excluded {
		assert.NotContains(t, result.AvailableSlots, s, "slot %s must be blocked by buffer", s)
	}
	for _, s := range kept {
		assert.Contains(t, result.AvailableSlots, s, "slot %s at exactly buffer distance must remain", s)
	}
}

func TestCompute_BufferConsidersAllBookingsSymmetrically(t *testing.T) {
	// Два бронирования: каждое блокирует кандидатов с обеих сторон
	result := Compute(monday, fullWeek(domain.Monday), nil, policy(10, 45), slots("10:00", "14:00"), farPast)

	require.True(t, result.IsBookableDay)

	for _, s := range slots("09:30", "10:00", "10:30", "13:30", "14:00", "14:30") {
		assert.NotContains(t, result.AvailableSlots, s)
	}
	for _, s := range slots("09:00", "11:00", "13:00", "15:00") {
		assert.Contains(t, result.AvailableSlots, s)
	}
}

func TestCompute_PastTimeExclusionToday(t *testing.T) {
	// Сегодняшняя дата: слот, равный текущей минуте, исключается,
	// слот минутой позже остаётся
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC) // ровно 12:00 того же дня

	result := Compute(monday, fullWeek(domain.Monday), nil, policy(10, 0), nil, now)

	require.True(t, result.IsBookableDay)
	assert.NotContains(t, result.AvailableSlots, types.TimeString("12:00"))
	assert.Contains(t, result.AvailableSlots, types.TimeString("12:30"))
	assert.NotContains(t, result.AvailableSlots, types.TimeString("09:00"))

	// Минутой раньше - слот 12:00 ещё доступен
	result = Compute(monday, fullWeek(domain.Monday), nil, policy(10, 0), nil, now.Add(-time.Minute))
	assert.Contains(t, result.AvailableSlots, types.TimeString("12:00"))
}

func TestCompute_OtherDateIgnoresNow(t *testing.T) {
	// Для другой даты текущее время не влияет на список слотов
	now := time.Date(2024, 6, 9, 23, 50, 0, 0, time.UTC)

	result := Compute(monday, fullWeek(domain.Monday), nil, policy(10, 0), nil, now)

	require.True(t, result.IsBookableDay)
	assert.Contains(t, result.AvailableSlots, types.TimeString("09:00"))
	assert.Len(t, result.AvailableSlots, 16)
}

func TestCompute_SpecScenario(t *testing.T) {
	// date=2024-06-10 (понедельник), 09:00-17:00, без нерабочих периодов,
	// лимит 10, буфер 30, занято 10:00: соседние слоты на расстоянии
	// ровно в буфер (09:30, 10:30) остаются, сам 10:00 исключается
	result := Compute(monday, fullWeek(domain.Monday), nil, policy(10, 30), slots("10:00"), farPast)

	require.True(t, result.IsBookableDay)
	assert.Contains(t, result.AvailableSlots, types.TimeString("09:00"))
	assert.Contains(t, result.AvailableSlots, types.TimeString("09:30"))
	assert.Contains(t, result.AvailableSlots, types.TimeString("10:30"))
	assert.Contains(t, result.AvailableSlots, types.TimeString("11:00"))
	assert.NotContains(t, result.AvailableSlots, types.TimeString("10:00"))
}

func TestCompute_Idempotent(t *testing.T) {
	hours := fullWeek(domain.Monday)
	offDuty := []domain.OffDutyPeriod{
		{StartDate: monday.AddDate(0, 0, 3), EndDate: monday.AddDate(0, 0, 5), Reason: domain.ReasonOther},
	}
	existing := slots("10:00", "13:30")

	first := Compute(monday, hours, offDuty, policy(10, 30), existing, farPast)
	second := Compute(monday, hours, offDuty, policy(10, 30), existing, farPast)

	assert.Equal(t, first, second)
}

func TestCompute_SlotsAscendingNoDuplicates(t *testing.T) {
	result := Compute(monday, fullWeek(domain.Monday), nil, policy(10, 30), slots("11:00"), farPast)

	require.True(t, result.IsBookableDay)
	for i := 1; i < len(result.AvailableSlots); i++ {
		assert.True(t, result.AvailableSlots[i-1].IsBefore(result.AvailableSlots[i]),
			"slots must be strictly ascending: %s before %s",
			result.AvailableSlots[i-1], result.AvailableSlots[i])
	}
}

func TestCompute_ShortDayEndExclusive(t *testing.T) {
	// 10:00-11:00 даёт ровно два кандидата: 10:00 и 10:30
	hours := []domain.WorkingHoursEntry{
		{DayOfWeek: domain.Monday, StartTime: "10:00", EndTime: "11:00", IsWorkingDay: true},
	}

	result := Compute(monday, hours, nil, policy(10, 0), nil, farPast)

	require.True(t, result.IsBookableDay)
	assert.Equal(t, slots("10:00", "10:30"), result.AvailableSlots)
}

func TestIsSlotAvailable(t *testing.T) {
	result := Compute(monday, fullWeek(domain.Monday), nil, policy(10, 0), nil, farPast)

	assert.True(t, IsSlotAvailable(result, "09:00"))
	assert.True(t, IsSlotAvailable(result, "16:30"))
	assert.False(t, IsSlotAvailable(result, "17:00"))
	assert.False(t, IsSlotAvailable(result, "08:30"))
	assert.False(t, IsSlotAvailable(result, "09:15"))

	blocked := Compute(monday, fullWeek(domain.Tuesday), nil, policy(10, 0), nil, farPast)
	assert.False(t, IsSlotAvailable(blocked, "09:00"))
}

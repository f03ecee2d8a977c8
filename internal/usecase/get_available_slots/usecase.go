package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdmnk/SVC-BookingService/internal/availability"
	"github.com/avdmnk/SVC-BookingService/internal/domain"
	scheduleRepo "github.com/avdmnk/SVC-BookingService/internal/infra/storage/schedule"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Собираем входы движка доступности: расписание, периоды, политика, бронирования
	workingHours, err := uc.scheduleRepo.GetWorkingHours(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	periods, err := uc.scheduleRepo.ListOffDutyPeriods(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get off-duty periods: %v", err)
		return nil, fmt.Errorf("%w: failed to get off-duty periods: %v", ErrInternal, err)
	}

	policy, err := uc.scheduleRepo.GetPolicy(ctx)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrPolicyNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get policy: %v", err)
			return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
		}
		// Политика ещё не настроена - используем дефолтные значения
		policy = domain.DefaultBookingPolicy()
		uc.logger.Info("GetAvailableSlots: policy not found, using defaults")
	}

	existingBookings, err := uc.bookingRepo.GetActiveTimesOnDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for date=%s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Вычисляем доступность дня
	offDuty := make([]domain.OffDutyPeriod, 0, len(periods))
	for _, p := range periods {
		offDuty = append(offDuty, *p)
	}

	result := availability.Compute(req.Date, workingHours, offDuty, *policy, existingBookings, now)

	if result.IsBookableDay {
		uc.logger.Info("GetAvailableSlots: date=%s has %d available slots",
			req.Date.Format(domain.DateFormat), len(result.AvailableSlots))
	} else {
		uc.logger.Info("GetAvailableSlots: date=%s is blocked: %s",
			req.Date.Format(domain.DateFormat), result.BlockingReason)
	}

	return &Response{
		Date:           req.Date,
		IsBookableDay:  result.IsBookableDay,
		BlockingReason: result.BlockingReason,
		AvailableSlots: result.AvailableSlots,
	}, nil
}

package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avdmnk/SVC-BookingService/internal/domain"
	scheduleRepo "github.com/avdmnk/SVC-BookingService/internal/infra/storage/schedule"
	"github.com/avdmnk/SVC-BookingService/internal/service/settings/models"
)

// Service сервис для работы с настройками расписания:
// недельное расписание, нерабочие периоды и политика бронирования
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetWorkingHours возвращает недельное расписание (7 записей, понедельник..воскресенье)
func (s *Service) GetWorkingHours(ctx context.Context) (*models.WorkingHoursResponse, error) {
	s.logger.Info("GetWorkingHours: fetching weekly schedule")

	entries, err := s.scheduleRepo.GetWorkingHours(ctx)
	if err != nil {
		s.logger.Error("GetWorkingHours: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetWorkingHours - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWorkingHours(entries), nil
}

// UpdateWorkingHours полностью заменяет недельное расписание
// Требует ровно 7 записей - по одной на каждый день недели
// Применяется атомарно: при любой ошибке существующее расписание не меняется
func (s *Service) UpdateWorkingHours(ctx context.Context, req *models.UpdateWorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	s.logger.Info("UpdateWorkingHours: replacing weekly schedule with %d entries", len(req.Entries))

	entries, err := s.validateWorkingHours(req.Entries)
	if err != nil {
		s.logger.Warn("UpdateWorkingHours: validation failed: %v", err)
		return nil, err
	}

	// Замена выполняется в транзакции: delete + insert либо целиком, либо никак
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.scheduleRepo.ReplaceWorkingHours(ctx, entries)
	})
	if err != nil {
		s.logger.Error("UpdateWorkingHours: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateWorkingHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateWorkingHours: successfully replaced weekly schedule")
	return models.FromDomainWorkingHours(entries), nil
}

// ListOffDutyPeriods возвращает все нерабочие периоды
func (s *Service) ListOffDutyPeriods(ctx context.Context) (*models.OffDutyPeriodListResponse, error) {
	s.logger.Info("ListOffDutyPeriods: fetching all periods")

	periods, err := s.scheduleRepo.ListOffDutyPeriods(ctx)
	if err != nil {
		s.logger.Error("ListOffDutyPeriods: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListOffDutyPeriods - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListOffDutyPeriods: successfully fetched %d periods", len(periods))
	return models.FromDomainPeriodList(periods), nil
}

// CreateOffDutyPeriod создает новый нерабочий период
func (s *Service) CreateOffDutyPeriod(ctx context.Context, req *models.CreateOffDutyPeriodRequest) (*models.OffDutyPeriodResponse, error) {
	s.logger.Info("CreateOffDutyPeriod: creating period %s - %s, reason=%s", req.StartDate, req.EndDate, req.Reason)

	period, err := s.validatePeriod(req.StartDate, req.EndDate, req.Reason)
	if err != nil {
		s.logger.Warn("CreateOffDutyPeriod: validation failed: %v", err)
		return nil, err
	}

	created, err := s.scheduleRepo.CreateOffDutyPeriod(ctx, period)
	if err != nil {
		s.logger.Error("CreateOffDutyPeriod: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateOffDutyPeriod - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateOffDutyPeriod: successfully created period id=%d", created.ID)
	return models.FromDomainPeriod(created), nil
}

// UpdateOffDutyPeriod обновляет существующий нерабочий период
func (s *Service) UpdateOffDutyPeriod(ctx context.Context, id int64, req *models.UpdateOffDutyPeriodRequest) (*models.OffDutyPeriodResponse, error) {
	s.logger.Info("UpdateOffDutyPeriod: updating period id=%d", id)

	period, err := s.validatePeriod(req.StartDate, req.EndDate, req.Reason)
	if err != nil {
		s.logger.Warn("UpdateOffDutyPeriod: validation failed for period id=%d: %v", id, err)
		return nil, err
	}

	updated, err := s.scheduleRepo.UpdateOffDutyPeriod(ctx, id, period)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrPeriodNotFound) {
			s.logger.Warn("UpdateOffDutyPeriod: period id=%d not found", id)
			return nil, ErrPeriodNotFound
		}
		s.logger.Error("UpdateOffDutyPeriod: repository error for period id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateOffDutyPeriod - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateOffDutyPeriod: successfully updated period id=%d", id)
	return models.FromDomainPeriod(updated), nil
}

// DeleteOffDutyPeriod удаляет нерабочий период
func (s *Service) DeleteOffDutyPeriod(ctx context.Context, id int64) error {
	s.logger.Info("DeleteOffDutyPeriod: deleting period id=%d", id)

	if err := s.scheduleRepo.DeleteOffDutyPeriod(ctx, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrPeriodNotFound) {
			s.logger.Warn("DeleteOffDutyPeriod: period id=%d not found", id)
			return ErrPeriodNotFound
		}
		s.logger.Error("DeleteOffDutyPeriod: repository error for period id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteOffDutyPeriod - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteOffDutyPeriod: successfully deleted period id=%d", id)
	return nil
}

// CheckAvailability проверяет, пересекается ли диапазон дат с нерабочими периодами
func (s *Service) CheckAvailability(ctx context.Context, req *models.CheckAvailabilityRequest) (*models.CheckAvailabilityResponse, error) {
	s.logger.Info("CheckAvailability: checking range %s - %s", req.StartDate, req.EndDate)

	start, end, err := s.parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	conflicts, err := s.scheduleRepo.ListOverlappingPeriods(ctx, start, end)
	if err != nil {
		s.logger.Error("CheckAvailability: repository error: %v", err)
		return nil, fmt.Errorf("%w: CheckAvailability - repository error: %v", ErrInternal, err)
	}

	resp := &models.CheckAvailabilityResponse{
		Available:          len(conflicts) == 0,
		ConflictingPeriods: models.FromDomainPeriodList(conflicts).Periods,
	}

	s.logger.Info("CheckAvailability: range %s - %s available=%v, conflicts=%d",
		req.StartDate, req.EndDate, resp.Available, len(conflicts))
	return resp, nil
}

// GetPolicy возвращает политику бронирования
// Если политика ещё не создана, создает её с дефолтными значениями
func (s *Service) GetPolicy(ctx context.Context) (*models.PolicyResponse, error) {
	s.logger.Info("GetPolicy: fetching booking policy")

	policy, err := s.scheduleRepo.GetPolicy(ctx)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrPolicyNotFound) {
			s.logger.Error("GetPolicy: repository error: %v", err)
			return nil, fmt.Errorf("%w: GetPolicy - repository error: %v", ErrInternal, err)
		}

		// Ленивое создание с дефолтными значениями
		s.logger.Info("GetPolicy: policy not found, creating with defaults")
		policy, err = s.scheduleRepo.UpsertPolicy(ctx, domain.DefaultBookingPolicy())
		if err != nil {
			s.logger.Error("GetPolicy: failed to create default policy: %v", err)
			return nil, fmt.Errorf("%w: GetPolicy - failed to create default policy: %v", ErrInternal, err)
		}
	}

	return models.FromDomainPolicy(policy), nil
}

// UpdatePolicy обновляет политику бронирования
func (s *Service) UpdatePolicy(ctx context.Context, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("UpdatePolicy: updating policy maxBookingsPerDay=%d, timeBufferMinutes=%d",
		req.MaxBookingsPerDay, req.TimeBufferMinutes)

	if req.MaxBookingsPerDay < domain.MinMaxBookingsPerDay || req.MaxBookingsPerDay > domain.MaxMaxBookingsPerDay {
		s.logger.Warn("UpdatePolicy: invalid maxBookingsPerDay=%d", req.MaxBookingsPerDay)
		return nil, fmt.Errorf("%w: maxBookingsPerDay must be between %d and %d",
			ErrInvalidInput, domain.MinMaxBookingsPerDay, domain.MaxMaxBookingsPerDay)
	}
	if req.TimeBufferMinutes < domain.MinTimeBufferMinutes || req.TimeBufferMinutes > domain.MaxTimeBufferMinutes {
		s.logger.Warn("UpdatePolicy: invalid timeBufferMinutes=%d", req.TimeBufferMinutes)
		return nil, fmt.Errorf("%w: timeBufferMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinTimeBufferMinutes, domain.MaxTimeBufferMinutes)
	}

	updated, err := s.scheduleRepo.UpsertPolicy(ctx, &domain.BookingPolicy{
		MaxBookingsPerDay: req.MaxBookingsPerDay,
		TimeBufferMinutes: req.TimeBufferMinutes,
	})
	if err != nil {
		s.logger.Error("UpdatePolicy: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdatePolicy - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdatePolicy: successfully updated policy")
	return models.FromDomainPolicy(updated), nil
}

// Вспомогательные методы

// validateWorkingHours проверяет недельное расписание:
// ровно 7 записей, каждый день недели ровно один раз,
// для рабочих дней корректные времена и start < end
func (s *Service) validateWorkingHours(reqEntries []models.WorkingHoursEntryRequest) ([]domain.WorkingHoursEntry, error) {
	if len(reqEntries) != domain.WorkingDaysPerWeek {
		return nil, fmt.Errorf("%w: expected %d entries, got %d",
			ErrInvalidSchedule, domain.WorkingDaysPerWeek, len(reqEntries))
	}

	seen := make(map[domain.Weekday]bool, domain.WorkingDaysPerWeek)
	entries := make([]domain.WorkingHoursEntry, 0, domain.WorkingDaysPerWeek)

	for _, reqEntry := range reqEntries {
		entry := reqEntry.ToDomainEntry()

		if !entry.DayOfWeek.IsValid() {
			return nil, fmt.Errorf("%w: unknown day of week %q", ErrInvalidSchedule, reqEntry.DayOfWeek)
		}
		if seen[entry.DayOfWeek] {
			return nil, fmt.Errorf("%w: duplicate day of week %q", ErrInvalidSchedule, reqEntry.DayOfWeek)
		}
		seen[entry.DayOfWeek] = true

		if err := entry.StartTime.Validate(); err != nil {
			return nil, fmt.Errorf("%w: invalid startTime for %s: %v", ErrInvalidSchedule, entry.DayOfWeek, err)
		}
		if err := entry.EndTime.Validate(); err != nil {
			return nil, fmt.Errorf("%w: invalid endTime for %s: %v", ErrInvalidSchedule, entry.DayOfWeek, err)
		}

		// Для рабочего дня интервал должен быть непустым
		if entry.IsWorkingDay && !entry.StartTime.IsBefore(entry.EndTime) {
			return nil, fmt.Errorf("%w: startTime must be before endTime for %s", ErrInvalidSchedule, entry.DayOfWeek)
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// validatePeriod парсит и валидирует нерабочий период
func (s *Service) validatePeriod(startDate, endDate, reason string) (*domain.OffDutyPeriod, error) {
	start, end, err := s.parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	r := domain.OffDutyReason(reason)
	if !r.IsValid() {
		return nil, fmt.Errorf("%w: unknown reason %q", ErrInvalidInput, reason)
	}

	return &domain.OffDutyPeriod{
		StartDate: start,
		EndDate:   end,
		Reason:    r,
	}, nil
}

// parseDateRange парсит диапазон дат и проверяет, что end >= start
func (s *Service) parseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse(domain.DateFormat, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid startDate format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	end, err := time.Parse(domain.DateFormat, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid endDate format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	return start, end, nil
}

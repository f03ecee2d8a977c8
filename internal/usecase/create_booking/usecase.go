package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdmnk/SVC-BookingService/internal/availability"
	"github.com/avdmnk/SVC-BookingService/internal/domain"
	bookingRepo "github.com/avdmnk/SVC-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/avdmnk/SVC-BookingService/internal/infra/storage/catalog"
	scheduleRepo "github.com/avdmnk/SVC-BookingService/internal/infra/storage/schedule"
	accountsClient "github.com/avdmnk/SVC-BookingService/internal/integrations/accounts"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	scheduleRepo   ScheduleRepository
	catalogRepo    CatalogRepository
	accountsClient AccountsClient
	notifier       NotificationDispatcher
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalogRepo CatalogRepository,
	accountsClient AccountsClient,
	notifier NotificationDispatcher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		scheduleRepo:   scheduleRepo,
		catalogRepo:    catalogRepo,
		accountsClient: accountsClient,
		notifier:       notifier,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования
// Доступность слота пересчитывается внутри сериализуемой транзакции,
// чтобы два конкурентных запроса не заняли один слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, service=%d, date=%s, time=%s",
		req.CustomerID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и проверяем дату
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Получаем услугу из каталога
	service, err := uc.catalogRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("CreateBooking: service id=%d is not active", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 4. Получаем профиль клиента для денормализации контактных данных
	// При недоступности сервиса аккаунтов бронирование создается без них
	customer, err := uc.accountsClient.GetCustomerWithGracefulDegradation(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, accountsClient.ErrCustomerNotFound) {
			uc.logger.Warn("CreateBooking: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Warn("CreateBooking: proceeding without customer profile for customer=%d", req.CustomerID)
		customer = nil
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Собираем входы движка доступности
		workingHours, err := uc.scheduleRepo.GetWorkingHours(txCtx)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get working hours: %v", err)
			return fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
		}

		periods, err := uc.scheduleRepo.ListOffDutyPeriods(txCtx)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get off-duty periods: %v", err)
			return fmt.Errorf("%w: failed to get off-duty periods: %v", ErrInternal, err)
		}

		policy, err := uc.scheduleRepo.GetPolicy(txCtx)
		if err != nil {
			if !errors.Is(err, scheduleRepo.ErrPolicyNotFound) {
				uc.logger.Error("CreateBooking: failed to get policy: %v", err)
				return fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
			}
			policy = domain.DefaultBookingPolicy()
		}

		existingBookings, err := uc.bookingRepo.GetActiveTimesOnDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 5.2. Пересчитываем доступность и проверяем запрошенный слот
		offDuty := make([]domain.OffDutyPeriod, 0, len(periods))
		for _, p := range periods {
			offDuty = append(offDuty, *p)
		}

		dayResult := availability.Compute(req.Date, workingHours, offDuty, *policy, existingBookings, now)
		if !dayResult.IsBookableDay {
			uc.logger.Warn("CreateBooking: date %s is blocked: %s",
				req.Date.Format(domain.DateFormat), dayResult.BlockingReason)
			return fmt.Errorf("%w: %s", ErrDayNotBookable, dayResult.BlockingReason)
		}

		if !availability.IsSlotAvailable(dayResult, req.StartTime) {
			uc.logger.Warn("CreateBooking: slot %s on %s is not available",
				req.StartTime, req.Date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 5.3. Создаем бронирование с денормализацией данных
		booking := &domain.Booking{
			CustomerID:      req.CustomerID,
			ServiceID:       req.ServiceID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			Status:          domain.StatusPending,
			DurationMinutes: service.DurationMinutes,
			// Денормализация данных услуги
			ServiceName:  service.Name,
			ServicePrice: service.Price,
			// Заметки
			Notes: req.Notes,
		}

		// Денормализация контактных данных клиента
		if customer != nil {
			booking.CustomerName = customer.Name
			booking.CustomerEmail = customer.Email
			booking.CustomerPhone = customer.Phone
		} else {
			booking.CustomerName = fmt.Sprintf("Customer #%d", req.CustomerID)
		}

		// 5.4. Сохраняем бронирование
		// Уникальный индекс по (дата, время) страхует от гонки на уровне БД
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot %s on %s was taken concurrently",
					req.StartTime, req.Date.Format(domain.DateFormat))
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 6. Уведомляем клиента о новом бронировании (best-effort, вне транзакции)
	uc.notifier.DispatchStatusChange(ctx, result, domain.StatusPending)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		CustomerID:      result.CustomerID,
		ServiceID:       result.ServiceID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		CustomerName:    result.CustomerName,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceInactive возвращается, когда услуга выключена в каталоге
	ErrServiceInactive = errors.New("service is not active")

	// ErrCustomerNotFound возвращается, когда клиент не найден в сервисе аккаунтов
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrDayNotBookable возвращается, когда день недоступен для бронирования
	ErrDayNotBookable = errors.New("day is not bookable")

	// ErrSlotNotAvailable возвращается, когда слот занят или не проходит фильтры доступности
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

package accounts

import "errors"

var (
	// ErrCustomerNotFound возвращается, когда клиент не найден в сервисе аккаунтов
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("accounts client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("accounts client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что сервис аккаунтов недоступен и бронирование продолжается
	// без контактных данных клиента
	ErrServiceDegraded = errors.New("accounts service unavailable: graceful degradation applied")
)

package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrFacilityNotFound возвращается, когда площадка не найдена
	ErrFacilityNotFound = errors.New("bookings: facility not found")

	// ErrAccessDenied возвращается при отсутствии прав доступа
	ErrAccessDenied = errors.New("bookings: access denied")

	// ErrAlreadyPaid возвращается, когда оплата не находится в статусе pending
	ErrAlreadyPaid = errors.New("bookings: booking payment is not pending")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)

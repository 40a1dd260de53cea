package check_in

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("check_in: booking not found")

	// ErrAccessDenied возвращается, когда отметиться пытается не владелец бронирования
	ErrAccessDenied = errors.New("check_in: access denied")

	// ErrNotAllowed возвращается, когда отметка о приходе невозможна
	// (бронирование не подтверждено или отметка уже есть)
	ErrNotAllowed = errors.New("check_in: check-in is not allowed")

	// ErrNotBookingDay возвращается, когда отметка выполняется не в день бронирования
	ErrNotBookingDay = errors.New("check_in: check-in is only allowed on the booking day")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_in: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_in: internal error")
)

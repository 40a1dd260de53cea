package check_out

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("check_out: booking not found")

	// ErrAccessDenied возвращается, когда отметиться пытается не владелец бронирования
	ErrAccessDenied = errors.New("check_out: access denied")

	// ErrNotAllowed возвращается, когда отметка об уходе невозможна
	// (нет отметки о приходе или уход уже отмечен)
	ErrNotAllowed = errors.New("check_out: check-out is not allowed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_out: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_out: internal error")
)

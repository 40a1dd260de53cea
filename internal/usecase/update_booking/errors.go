package update_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrAccessDenied возвращается, когда изменить бронирование пытается не его владелец
	ErrAccessDenied = errors.New("update_booking: access denied")

	// ErrNotEditable возвращается, когда бронирование нельзя изменить
	// (завершено, отменено или его день уже наступил)
	ErrNotEditable = errors.New("update_booking: booking cannot be modified")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)

package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrAccessDenied возвращается, когда перенести бронирование пытается не его владелец
	ErrAccessDenied = errors.New("reschedule_booking: access denied")

	// ErrCannotReschedule возвращается, когда бронирование нельзя перенести
	// (перенос доступен только из статуса confirmed)
	ErrCannotReschedule = errors.New("reschedule_booking: booking cannot be rescheduled")

	// ErrBookingInPast возвращается, когда новое начало слота не в будущем
	ErrBookingInPast = errors.New("reschedule_booking: new slot must be in the future")

	// ErrSlotConflict возвращается, когда новый слот пересекается с другим активным бронированием
	ErrSlotConflict = errors.New("reschedule_booking: court is already booked for this time slot")

	// ErrInvalidTimeSlot возвращается, когда новый временной слот некорректен
	ErrInvalidTimeSlot = errors.New("reschedule_booking: invalid time slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)

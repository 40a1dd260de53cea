package create_booking

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда площадка не найдена
	ErrFacilityNotFound = errors.New("create_booking: facility not found")

	// ErrFacilityInactive возвращается, когда площадка деактивирована
	ErrFacilityInactive = errors.New("create_booking: facility is not active")

	// ErrCourtNotFound возвращается, когда корт не найден на площадке
	ErrCourtNotFound = errors.New("create_booking: court not found")

	// ErrCourtInactive возвращается, когда корт деактивирован
	ErrCourtInactive = errors.New("create_booking: court is not active")

	// ErrBookingInPast возвращается, когда начало слота не в будущем
	ErrBookingInPast = errors.New("create_booking: booking must be in the future")

	// ErrOutsideOperatingHours возвращается, когда слот выходит за рабочие часы площадки
	ErrOutsideOperatingHours = errors.New("create_booking: slot is outside operating hours")

	// ErrSlotConflict возвращается, когда слот пересекается с активным бронированием корта
	ErrSlotConflict = errors.New("create_booking: court is already booked for this time slot")

	// ErrInvalidTimeSlot возвращается, когда временной слот некорректен (конец не позже начала)
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

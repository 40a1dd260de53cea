package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotConflict возвращается, когда хранилище отклонило запись из-за
	// пересечения с существующим активным бронированием (exclusion constraint)
	ErrSlotConflict = errors.New("booking.repository: slot conflict")

	// ErrNotCancellable возвращается, когда бронирование уже в терминальном
	// статусе и отмена невозможна
	ErrNotCancellable = errors.New("booking.repository: booking cannot be cancelled")

	// ErrCheckInNotAllowed возвращается, когда отметка о приходе невозможна
	// (статус не confirmed или check-in уже выполнен)
	ErrCheckInNotAllowed = errors.New("booking.repository: check-in not allowed")

	// ErrCheckOutNotAllowed возвращается, когда отметка об уходе невозможна
	// (нет check-in или check-out уже выполнен)
	ErrCheckOutNotAllowed = errors.New("booking.repository: check-out not allowed")

	// ErrNotReschedulable возвращается при попытке перенести бронирование
	// не в статусе confirmed
	ErrNotReschedulable = errors.New("booking.repository: booking cannot be rescheduled")

	// ErrNotEditable возвращается при попытке изменить бронирование
	// в терминальном статусе
	ErrNotEditable = errors.New("booking.repository: booking cannot be modified")

	// ErrPaymentNotPending возвращается при попытке оплатить бронирование,
	// оплата которого не в статусе pending
	ErrPaymentNotPending = errors.New("booking.repository: payment is not pending")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)

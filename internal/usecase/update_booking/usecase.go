package update_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/QuickCourt-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/QuickCourt-BookingService/internal/infra/storage/booking"
)

// Request модель запроса на изменение бронирования
// Изменяемое поле одно - заметки; всё остальное меняется профильными операциями
type Request struct {
	BookingID int64   // ID бронирования
	ActorID   int64   // ID пользователя, выполняющего изменение
	Notes     *string // Новые заметки
}

// Response модель ответа с измененным бронированием
type Response struct {
	ID     int64
	Status string
	Notes  string
}

// UseCase use case для изменения заметок бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case изменения заметок
// Изменение доступно только владельцу активного бронирования и только
// до наступления дня бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: booking=%d, actor=%d", req.BookingID, req.ActorID)

	// 1. Валидация входных данных
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.ActorID <= 0 {
		return nil, fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}
	if req.Notes == nil {
		return nil, fmt.Errorf("%w: notes is required", ErrInvalidInput)
	}
	if len(*req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("UpdateBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Изменить может только владелец бронирования
	if booking.UserID != req.ActorID {
		uc.logger.Warn("UpdateBooking: access denied for actor=%d to booking id=%d", req.ActorID, req.BookingID)
		return nil, ErrAccessDenied
	}

	// 4. Терминальные статусы не редактируются
	if !booking.IsActive() {
		uc.logger.Warn("UpdateBooking: booking id=%d is not editable, status=%s", req.BookingID, booking.Status)
		return nil, ErrNotEditable
	}

	// 5. Редактирование доступно до наступления дня бронирования
	now := uc.timeProvider.Now()
	bookingDay := time.Date(booking.BookingDate.Year(), booking.BookingDate.Month(), booking.BookingDate.Day(),
		0, 0, 0, 0, booking.BookingDate.Location())
	if !bookingDay.After(now) {
		uc.logger.Warn("UpdateBooking: booking id=%d day %s has already started",
			req.BookingID, bookingDay.Format(domain.DateFormat))
		return nil, ErrNotEditable
	}

	// 6. Применяем изменение guarded UPDATE
	if err := uc.bookingRepo.UpdateNotes(ctx, req.BookingID, *req.Notes); err != nil {
		if errors.Is(err, bookingRepo.ErrNotEditable) {
			uc.logger.Warn("UpdateBooking: booking id=%d left editable status", req.BookingID)
			return nil, ErrNotEditable
		}
		uc.logger.Error("UpdateBooking: failed to update booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
	}

	uc.logger.Info("UpdateBooking: successfully updated notes of booking id=%d", req.BookingID)

	return &Response{
		ID:     req.BookingID,
		Status: string(booking.Status),
		Notes:  *req.Notes,
	}, nil
}

package check_out

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/QuickCourt-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/QuickCourt-BookingService/internal/infra/storage/booking"
)

// DefaultMethod способ отметки по умолчанию
const DefaultMethod = "manual"

// Request модель запроса на отметку об уходе
type Request struct {
	BookingID int64  // ID бронирования
	ActorID   int64  // ID пользователя, выполняющего отметку
	Method    string // Способ отметки (manual, qr_code), опционально
}

// Response модель ответа с результатом отметки
type Response struct {
	ID           int64
	Status       string
	CheckOutTime time.Time
	Method       string
}

// UseCase use case для отметки об уходе
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

// Execute выполняет use case отметки об уходе
// Отметка завершает бронирование (completed) и возможна только после
// отметки о приходе
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckOut: booking=%d, actor=%d", req.BookingID, req.ActorID)

	// 1. Валидация входных данных
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.ActorID <= 0 {
		return nil, fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CheckOut: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CheckOut: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Отметиться может только владелец бронирования
	if booking.UserID != req.ActorID {
		uc.logger.Warn("CheckOut: access denied for actor=%d to booking id=%d", req.ActorID, req.BookingID)
		return nil, ErrAccessDenied
	}

	// 4. Уход возможен только после прихода и только один раз
	if !booking.CanCheckOut() {
		uc.logger.Warn("CheckOut: booking id=%d cannot check out, status=%s", req.BookingID, booking.Status)
		return nil, ErrNotAllowed
	}

	now := uc.timeProvider.Now()
	method := req.Method
	if method == "" {
		method = DefaultMethod
	}

	// 5. Применяем отметку guarded UPDATE
	if err := uc.bookingRepo.SetCheckOut(ctx, req.BookingID, now, method); err != nil {
		if errors.Is(err, bookingRepo.ErrCheckOutNotAllowed) {
			uc.logger.Warn("CheckOut: booking id=%d already checked out or never checked in", req.BookingID)
			return nil, ErrNotAllowed
		}
		uc.logger.Error("CheckOut: failed to check out booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to check out: %v", ErrInternal, err)
	}

	uc.logger.Info("CheckOut: successfully checked out booking id=%d at %s", req.BookingID, now.Format(time.RFC3339))

	return &Response{
		ID:           req.BookingID,
		Status:       string(domain.StatusCompleted),
		CheckOutTime: now,
		Method:       method,
	}, nil
}

package check_out

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/QuickCourt-BookingService/internal/api/handlers"
	"github.com/m04kA/QuickCourt-BookingService/internal/api/middleware"
	checkOut "github.com/m04kA/QuickCourt-BookingService/internal/usecase/check_out"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBookingNotFound    = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgNotAllowed         = "отметка об уходе невозможна"
)

// CheckOutRequest HTTP request model
type CheckOutRequest struct {
	Method string `json:"method,omitempty"` // manual, qr_code
}

// CheckOutResponse HTTP response model
type CheckOutResponse struct {
	ID           int64  `json:"id"`
	Status       string `json:"status"`
	CheckOutTime string `json:"checkOutTime"` // ISO 8601
	Method       string `json:"method"`
}

type Handler struct {
	useCase CheckOutUseCase
	logger  Logger
}

func NewHandler(useCase CheckOutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/checkout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/checkout - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/checkout - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CheckOutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /bookings/{id}/checkout - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkOut.Request{
		BookingID: bookingID,
		ActorID:   userID,
		Method:    req.Method,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkOut.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/checkout - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, checkOut.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/checkout - Access denied: booking_id=%d, user_id=%d",
				bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, checkOut.ErrNotAllowed):
			h.logger.Warn("POST /bookings/{id}/checkout - Not allowed: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotAllowed)

		case errors.Is(err, checkOut.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/checkout - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings/{id}/checkout - Failed to check out: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/checkout - Checked out successfully: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, &CheckOutResponse{
		ID:           result.ID,
		Status:       result.Status,
		CheckOutTime: result.CheckOutTime.Format(time.RFC3339),
		Method:       result.Method,
	})
}

package check_in

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/QuickCourt-BookingService/internal/api/handlers"
	"github.com/m04kA/QuickCourt-BookingService/internal/api/middleware"
	checkIn "github.com/m04kA/QuickCourt-BookingService/internal/usecase/check_in"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBookingNotFound    = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgNotAllowed         = "отметка о приходе невозможна"
	msgNotBookingDay      = "отметиться можно только в день бронирования"
)

// CheckInRequest HTTP request model
type CheckInRequest struct {
	Method string `json:"method,omitempty"` // manual, qr_code
}

// CheckInResponse HTTP response model
type CheckInResponse struct {
	ID          int64  `json:"id"`
	Status      string `json:"status"`
	CheckInTime string `json:"checkInTime"` // ISO 8601
	Method      string `json:"method"`
}

type Handler struct {
	useCase CheckInUseCase
	logger  Logger
}

func NewHandler(useCase CheckInUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/checkin
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/checkin - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/checkin - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CheckInRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /bookings/{id}/checkin - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkIn.Request{
		BookingID: bookingID,
		ActorID:   userID,
		Method:    req.Method,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkIn.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/checkin - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, checkIn.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/checkin - Access denied: booking_id=%d, user_id=%d",
				bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, checkIn.ErrNotAllowed):
			h.logger.Warn("POST /bookings/{id}/checkin - Not allowed: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotAllowed)

		case errors.Is(err, checkIn.ErrNotBookingDay):
			h.logger.Warn("POST /bookings/{id}/checkin - Not booking day: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgNotBookingDay)

		case errors.Is(err, checkIn.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/checkin - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings/{id}/checkin - Failed to check in: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/checkin - Checked in successfully: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, &CheckInResponse{
		ID:          result.ID,
		Status:      result.Status,
		CheckInTime: result.CheckInTime.Format(time.RFC3339),
		Method:      result.Method,
	})
}

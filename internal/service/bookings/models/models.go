package models

import (
	"errors"
	"time"

	"github.com/m04kA/QuickCourt-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID    int64   `json:"userId"`
	ActorID   int64   `json:"-"`
	ActorRole string  `json:"-"`
	Status    *string `json:"status,omitempty"`
	Upcoming  bool    `json:"upcoming,omitempty"` // Только предстоящие бронирования
}

// GetFacilityBookingsRequest запрос на получение бронирований площадки
type GetFacilityBookingsRequest struct {
	FacilityID      int64      `json:"facilityId"`
	ActorID         int64      `json:"-"`
	ActorRole       string     `json:"-"`
	CourtID         *string    `json:"courtId,omitempty"`         // Фильтр по корту (опционально)
	Date            *time.Time `json:"date,omitempty"`            // Бронирования на дату (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые/завершённые
	WithStats       bool       `json:"withStats,omitempty"`       // Добавить статистику выручки
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetFacilityBookingsRequest) ToDomainFilter() (domain.FacilityBookingsFilter, error) {
	filter := domain.FacilityBookingsFilter{
		FacilityID:      r.FacilityID,
		CourtID:         r.CourtID,
		Date:            r.Date,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// PayBookingRequest запрос на оплату бронирования (заглушка платёжного шлюза)
type PayBookingRequest struct {
	ActorID int64  `json:"-"`
	Method  string `json:"method"` // card, upi, wallet
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64 `json:"id"`
	UserID     int64 `json:"userId"`
	FacilityID int64 `json:"facilityId"`

	// Денормализованные данные корта
	CourtID   string `json:"courtId"`
	CourtName string `json:"courtName"`
	Sport     string `json:"sport"`

	BookingDate     string `json:"bookingDate"` // "2026-03-15"
	StartTime       string `json:"startTime"`   // "10:00"
	EndTime         string `json:"endTime"`     // "11:30"
	DurationMinutes int    `json:"durationMinutes"`

	BookingType string `json:"bookingType"`

	BaseAmount  float64 `json:"baseAmount"`
	Taxes       float64 `json:"taxes"`
	Discounts   float64 `json:"discounts"`
	TotalAmount float64 `json:"totalAmount"`
	Currency    string  `json:"currency"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`

	PaymentMethod *string  `json:"paymentMethod,omitempty"`
	TransactionID *string  `json:"transactionId,omitempty"`
	PaidAt        *string  `json:"paidAt,omitempty"` // ISO 8601
	RefundAmount  *float64 `json:"refundAmount,omitempty"`
	RefundedAt    *string  `json:"refundedAt,omitempty"`

	CheckInTime  *string `json:"checkInTime,omitempty"`
	CheckOutTime *string `json:"checkOutTime,omitempty"`

	Notes *string `json:"notes,omitempty"`

	CancelledBy        *string `json:"cancelledBy,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	RefundEligible     *bool   `json:"refundEligible,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Stats    *RevenueStats     `json:"stats,omitempty"`
}

// RevenueStats статистика выручки площадки по оплаченным бронированиям
type RevenueStats struct {
	TotalRevenue        float64 `json:"totalRevenue"`
	TotalBookings       int64   `json:"totalBookings"`
	AverageBookingValue float64 `json:"averageBookingValue"`
}

// PayBookingResponse ответ на оплату бронирования
type PayBookingResponse struct {
	ID            int64  `json:"id"`
	PaymentStatus string `json:"paymentStatus"`
	Method        string `json:"method"`
	TransactionID string `json:"transactionId"`
	PaidAt        string `json:"paidAt"` // ISO 8601
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		FacilityID:      b.FacilityID,
		CourtID:         b.Court.CourtID,
		CourtName:       b.Court.Name,
		Sport:           b.Court.Sport,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.TimeSlot.StartTime.String(),
		EndTime:         b.TimeSlot.EndTime.String(),
		DurationMinutes: b.TimeSlot.DurationMinutes,
		BookingType:     string(b.BookingType),
		BaseAmount:      b.Pricing.BaseAmount,
		Taxes:           b.Pricing.Taxes,
		Discounts:       b.Pricing.Discounts,
		TotalAmount:     b.Pricing.TotalAmount,
		Currency:        b.Pricing.Currency,
		Status:          string(b.Status),
		PaymentStatus:   string(b.Payment.Status),
		PaymentMethod:   b.Payment.Method,
		TransactionID:   b.Payment.TransactionID,
		PaidAt:          formatTimePtr(b.Payment.PaidAt),
		RefundAmount:    b.Payment.RefundAmount,
		RefundedAt:      formatTimePtr(b.Payment.RefundedAt),
		CheckInTime:     formatTimePtr(b.CheckIn.Time),
		CheckOutTime:    formatTimePtr(b.CheckOut.Time),
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if b.Cancellation != nil {
		cancelledBy := b.Cancellation.CancelledBy
		cancelledAt := b.Cancellation.CancelledAt.Format(time.RFC3339)
		reason := b.Cancellation.Reason
		refundEligible := b.Cancellation.RefundEligible

		resp.CancelledBy = &cancelledBy
		resp.CancelledAt = &cancelledAt
		resp.RefundEligible = &refundEligible
		if reason != "" {
			resp.CancellationReason = &reason
		}
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// FromDomainRevenueStats конвертирует domain статистику в DTO
func FromDomainRevenueStats(s *domain.RevenueStats) *RevenueStats {
	if s == nil {
		return nil
	}

	return &RevenueStats{
		TotalRevenue:        s.TotalRevenue,
		TotalBookings:       s.TotalBookings,
		AverageBookingValue: s.AverageBookingValue,
	}
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusConfirmed,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusNoShow,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}

// formatTimePtr конвертирует опциональное время в строку ISO 8601
func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

package create_booking

import (
	"time"

	"github.com/m04kA/QuickCourt-BookingService/internal/domain"
	createBooking "github.com/m04kA/QuickCourt-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/QuickCourt-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	FacilityID       int64                    `json:"facilityId"`
	CourtID          string                   `json:"courtId"`
	BookingDate      string                   `json:"bookingDate"` // "2026-03-15"
	StartTime        string                   `json:"startTime"`   // "10:00"
	EndTime          string                   `json:"endTime"`     // "11:30"
	BookingType      string                   `json:"bookingType,omitempty"`
	RecurringDetails *domain.RecurringDetails `json:"recurringDetails,omitempty"`
	GroupDetails     *domain.GroupDetails     `json:"groupDetails,omitempty"`
	Notes            *string                  `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         int64 `json:"id"`
	UserID     int64 `json:"userId"`
	FacilityID int64 `json:"facilityId"`

	CourtID   string `json:"courtId"`
	CourtName string `json:"courtName"`
	Sport     string `json:"sport"`

	BookingDate     string `json:"bookingDate"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`

	BookingType string `json:"bookingType"`

	BaseAmount  float64 `json:"baseAmount"`
	Taxes       float64 `json:"taxes"`
	Discounts   float64 `json:"discounts"`
	TotalAmount float64 `json:"totalAmount"`
	Currency    string  `json:"currency"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`

	Notes *string `json:"notes,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:     userID,
		FacilityID: r.FacilityID,
		CourtID:    r.CourtID,
		Date:       bookingDate,
		StartTime:  startTime,
		EndTime:    endTime,
		Type:       r.BookingType,
		Recurring:  r.RecurringDetails,
		Group:      r.GroupDetails,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		FacilityID:      resp.FacilityID,
		CourtID:         resp.CourtID,
		CourtName:       resp.CourtName,
		Sport:           resp.Sport,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		BookingType:     resp.BookingType,
		BaseAmount:      resp.BaseAmount,
		Taxes:           resp.Taxes,
		Discounts:       resp.Discounts,
		TotalAmount:     resp.TotalAmount,
		Currency:        resp.Currency,
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}

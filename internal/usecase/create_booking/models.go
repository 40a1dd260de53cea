package create_booking

import (
	"time"

	"github.com/m04kA/QuickCourt-BookingService/internal/domain"
	"github.com/m04kA/QuickCourt-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID     int64                    // ID пользователя (из заголовков авторизации)
	FacilityID int64                    // ID площадки
	CourtID    string                   // ID корта площадки (например, "court_1")
	Date       time.Time                // Дата бронирования (без времени)
	StartTime  types.TimeString         // Время начала слота ("10:00")
	EndTime    types.TimeString         // Время окончания слота ("11:30")
	Type       string                   // Тип бронирования, по умолчанию single
	Recurring  *domain.RecurringDetails // Параметры регулярного бронирования (опционально)
	Group      *domain.GroupDetails     // Параметры группового бронирования (опционально)
	Notes      *string                  // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64
	UserID     int64
	FacilityID int64

	CourtID   string
	CourtName string
	Sport     string

	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int

	BookingType string

	BaseAmount  float64
	Taxes       float64
	Discounts   float64
	TotalAmount float64
	Currency    string

	Status        string
	PaymentStatus string

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// toResponse конвертирует доменное бронирование в ответ usecase
func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		UserID:          b.UserID,
		FacilityID:      b.FacilityID,
		CourtID:         b.Court.CourtID,
		CourtName:       b.Court.Name,
		Sport:           b.Court.Sport,
		BookingDate:     b.BookingDate,
		StartTime:       b.TimeSlot.StartTime,
		EndTime:         b.TimeSlot.EndTime,
		DurationMinutes: b.TimeSlot.DurationMinutes,
		BookingType:     string(b.BookingType),
		BaseAmount:      b.Pricing.BaseAmount,
		Taxes:           b.Pricing.Taxes,
		Discounts:       b.Pricing.Discounts,
		TotalAmount:     b.Pricing.TotalAmount,
		Currency:        b.Pricing.Currency,
		Status:          string(b.Status),
		PaymentStatus:   string(b.Payment.Status),
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

package domain

import (
	"time"

	"github.com/m04kA/QuickCourt-BookingService/pkg/types"
)

// BookingStatus статус жизненного цикла бронирования
type BookingStatus string

const (
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

// PaymentStatus статус оплаты, независим от статуса жизненного цикла
type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "pending"
	PaymentPaid          PaymentStatus = "paid"
	PaymentFailed        PaymentStatus = "failed"
	PaymentRefunded      PaymentStatus = "refunded"
	PaymentPartialRefund PaymentStatus = "partial_refund"
)

// BookingType тип бронирования
// Полностью поддерживается только single; recurring/group/tournament
// хранятся как данные без генерации дополнительных бронирований
type BookingType string

const (
	TypeSingle     BookingType = "single"
	TypeRecurring  BookingType = "recurring"
	TypeGroup      BookingType = "group"
	TypeTournament BookingType = "tournament"
)

// Кто отменил бронирование
const (
	CancelledByUser     = "user"
	CancelledByFacility = "facility"
	CancelledByAdmin    = "admin"
)

// CourtSnapshot денормализованные данные корта на момент создания бронирования
// Изменения корта в каталоге не затрагивают историю
type CourtSnapshot struct {
	CourtID string
	Name    string
	Sport   string
}

// TimeSlot временной слот бронирования
// Инвариант: EndTime > StartTime, DurationMinutes = EndTime - StartTime
type TimeSlot struct {
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
}

// Pricing стоимость бронирования
// Инвариант: TotalAmount = BaseAmount + Taxes - Discounts (2 знака)
type Pricing struct {
	BaseAmount  float64
	Taxes       float64
	Discounts   float64
	TotalAmount float64
	Currency    string
}

// Payment состояние оплаты бронирования
type Payment struct {
	Status        PaymentStatus
	Method        *string
	TransactionID *string
	PaidAt        *time.Time
	RefundAmount  *float64
	RefundedAt    *time.Time
}

// CheckEvent отметка о приходе/уходе
type CheckEvent struct {
	Time   *time.Time
	Method *string
}

// Cancellation данные об отмене бронирования
type Cancellation struct {
	CancelledBy    string
	CancelledAt    time.Time
	Reason         string
	RefundEligible bool
}

// RecurringDetails параметры регулярного бронирования (контейнер данных)
type RecurringDetails struct {
	Frequency     string     `json:"frequency"` // daily, weekly, monthly
	EndDate       *time.Time `json:"endDate,omitempty"`
	DaysOfWeek    []int      `json:"daysOfWeek,omitempty"` // 0-6 (воскресенье-суббота)
	TotalBookings int        `json:"totalBookings,omitempty"`
}

// GroupMember участник группового бронирования
type GroupMember struct {
	UserID        int64  `json:"userId,omitempty"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	PaymentStatus string `json:"paymentStatus,omitempty"`
}

// GroupDetails параметры группового бронирования (контейнер данных)
type GroupDetails struct {
	Size    int           `json:"size"`
	Members []GroupMember `json:"members,omitempty"`
}

// Booking бронирование корта
type Booking struct {
	ID         int64
	UserID     int64
	FacilityID int64
	Court      CourtSnapshot

	BookingDate time.Time // только дата, без времени
	TimeSlot    TimeSlot

	BookingType      BookingType
	RecurringDetails *RecurringDetails
	GroupDetails     *GroupDetails

	Pricing Pricing
	Payment Payment

	Status BookingStatus

	CheckIn  CheckEvent
	CheckOut CheckEvent

	Notes        *string
	Cancellation *Cancellation

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если бронирование занимает слот
// (участвует в проверке конфликтов)
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed || b.Status == StatusInProgress
}

// CanBeCancelled возвращает true, если бронирование можно отменить
// Отмена из терминальных статусов запрещена (защита от повторного refund)
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed || b.Status == StatusInProgress
}

// CanBeRescheduled возвращает true, если бронирование можно перенести
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusConfirmed
}

// CanCheckIn возвращает true, если возможна отметка о приходе
func (b *Booking) CanCheckIn() bool {
	return b.Status == StatusConfirmed && b.CheckIn.Time == nil
}

// CanCheckOut возвращает true, если возможна отметка об уходе
func (b *Booking) CanCheckOut() bool {
	return b.CheckIn.Time != nil && b.CheckOut.Time == nil
}

// IsPaid возвращает true, если бронирование оплачено
func (b *Booking) IsPaid() bool {
	return b.Payment.Status == PaymentPaid
}

// StartDateTime возвращает дату и время начала бронирования
func (b *Booking) StartDateTime() (time.Time, error) {
	startMinutes, err := b.TimeSlot.StartTime.Minutes()
	if err != nil {
		return time.Time{}, err
	}

	day := time.Date(b.BookingDate.Year(), b.BookingDate.Month(), b.BookingDate.Day(),
		0, 0, 0, 0, b.BookingDate.Location())
	return day.Add(time.Duration(startMinutes) * time.Minute), nil
}

// FacilityBookingsFilter фильтр для получения бронирований площадки
type FacilityBookingsFilter struct {
	FacilityID      int64          // Обязательный параметр
	CourtID         *string        // Фильтр по корту (опционально)
	Date            *time.Time     // Бронирования на конкретную дату (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые/завершённые/no-show
}

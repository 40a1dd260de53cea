package cancel_booking

import "time"

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID int64  // ID бронирования
	ActorID   int64  // ID пользователя, выполняющего отмену
	ActorRole string // Роль пользователя (user, owner, admin)
	Reason    string // Причина отмены (опционально)
}

// Response модель ответа с результатом отмены
type Response struct {
	ID             int64
	Status         string
	CancelledBy    string
	CancelledAt    time.Time
	RefundEligible bool
	PaymentStatus  string
	RefundAmount   *float64
}

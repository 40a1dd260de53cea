package domain

// Налоговая ставка (18% GST), применяется к базовой стоимости
const TaxRate = 0.18

// Default pricing values
const (
	DefaultWeekendMultiplier = 1.0
	DefaultPeakMultiplier    = 1.5
	DefaultCurrency          = "INR"
)

// DefaultSlotIntervalMinutes шаг сетки слотов для отображения доступности
const DefaultSlotIntervalMinutes = 60

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxGroupSize                = 20
)

// Роли пользователей из заголовков авторизации
const (
	RoleUser  = "user"
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ConflictingStatuses статусы, при которых бронирование занимает слот
// Используется при проверке конфликтов и фильтрации активных бронирований
var ConflictingStatuses = []BookingStatus{
	StatusConfirmed,
	StatusInProgress,
}

// InactiveStatuses статусы, при которых бронирование слот не занимает
var InactiveStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

package domain

// RevenueStats агрегированная выручка площадки по оплаченным бронированиям
type RevenueStats struct {
	TotalRevenue        float64
	TotalBookings       int64
	AverageBookingValue float64
}

// Package pricing вычисляет стоимость слота по ценовой политике площадки.
// Все функции чистые и детерминированные: одинаковые входы всегда дают
// одинаковый результат, без обращений к БД и текущему времени.
package pricing

import (
	"math"
	"time"

	"github.com/m04kA/QuickCourt-BookingService/internal/domain"
	"github.com/m04kA/QuickCourt-BookingService/internal/integrations/facilityservice"
	"github.com/m04kA/QuickCourt-BookingService/pkg/types"
)

// Amount результат расчета стоимости бронирования
type Amount struct {
	BaseAmount  float64
	Taxes       float64
	TotalAmount float64
}

// PriceForSlot вычисляет цену часа для слота, начинающегося в startTime
// указанной даты:
//  1. базовая цена
//  2. множитель выходного дня (суббота/воскресенье)
//  3. множитель первого пикового окна, в которое попадает startTime
//     (first-match-wins, множители пиковых окон не перемножаются)
//
// Результат округляется до 2 знаков
func PriceForSlot(p facilityservice.Pricing, date time.Time, startTime types.TimeString) float64 {
	price := p.BasePrice

	if IsWeekend(date) {
		multiplier := domain.DefaultWeekendMultiplier
		if p.WeekendMultiplier != nil {
			multiplier = *p.WeekendMultiplier
		}
		price *= multiplier
	}

	for _, peak := range p.PeakHours {
		peakStart := types.TimeString(peak.StartTime)
		peakEnd := types.TimeString(peak.EndTime)

		// Полуоткрытое окно [start, end): начало в момент окончания пика
		// уже не пиковое
		if !startTime.IsBefore(peakStart) && startTime.IsBefore(peakEnd) {
			multiplier := domain.DefaultPeakMultiplier
			if peak.Multiplier != nil {
				multiplier = *peak.Multiplier
			}
			price *= multiplier
			break
		}
	}

	return Round2(price)
}

// ComputeBookingAmount вычисляет стоимость бронирования из цены часа
// и длительности. Каждая составляющая округляется отдельно, налог
// считается от уже округлённой базовой суммы - это даёт воспроизводимые
// суммы при повторных вычислениях
func ComputeBookingAmount(unitPrice float64, durationMinutes int) Amount {
	baseAmount := Round2(unitPrice * float64(durationMinutes) / 60)
	taxes := Round2(baseAmount * domain.TaxRate)
	totalAmount := Round2(baseAmount + taxes)

	return Amount{
		BaseAmount:  baseAmount,
		Taxes:       taxes,
		TotalAmount: totalAmount,
	}
}

// RefundAmount вычисляет сумму возврата по проценту из политики отмены
func RefundAmount(totalAmount, refundPercentage float64) float64 {
	return Round2(totalAmount * refundPercentage / 100)
}

// IsWeekend возвращает true для субботы и воскресенья
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// Round2 округляет до 2 знаков (round-half-up)
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

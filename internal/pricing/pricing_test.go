package pricing

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/QuickCourt-BookingService/internal/integrations/facilityservice"
	"github.com/m04kA/QuickCourt-BookingService/pkg/types"
)

func ptrFloat(v float64) *float64 { return &v }

var (
	// 2026-03-16 - понедельник, 2026-03-14 - суббота
	weekday = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	weekend = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
)

func TestPriceForSlot_Base(t *testing.T) {
	p := facilityservice.Pricing{BasePrice: 500}

	got := PriceForSlot(p, weekday, types.TimeString("10:00"))

	assert.Equal(t, 500.0, got)
}

func TestPriceForSlot_WeekendMultiplier(t *testing.T) {
	p := facilityservice.Pricing{
		BasePrice:         500,
		WeekendMultiplier: ptrFloat(1.2),
	}

	assert.Equal(t, 600.0, PriceForSlot(p, weekend, types.TimeString("10:00")))
	assert.Equal(t, 500.0, PriceForSlot(p, weekday, types.TimeString("10:00")))
}

func TestPriceForSlot_WeekendDefaultMultiplier(t *testing.T) {
	// Без явного множителя выходной день не меняет цену
	p := facilityservice.Pricing{BasePrice: 500}

	assert.Equal(t, 500.0, PriceForSlot(p, weekend, types.TimeString("10:00")))
}

func TestPriceForSlot_PeakHours(t *testing.T) {
	p := facilityservice.Pricing{
		BasePrice: 500,
		PeakHours: []facilityservice.PeakHour{
			{StartTime: "18:00", EndTime: "21:00", Multiplier: ptrFloat(1.5)},
		},
	}

	tests := []struct {
		name  string
		start types.TimeString
		want  float64
	}{
		{name: "before peak", start: "17:00", want: 500},
		{name: "at peak start", start: "18:00", want: 750},
		{name: "inside peak", start: "20:00", want: 750},
		{name: "at peak end is off-peak", start: "21:00", want: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PriceForSlot(p, weekday, tt.start))
		})
	}
}

func TestPriceForSlot_PeakDefaultMultiplier(t *testing.T) {
	p := facilityservice.Pricing{
		BasePrice: 500,
		PeakHours: []facilityservice.PeakHour{
			{StartTime: "18:00", EndTime: "21:00"},
		},
	}

	assert.Equal(t, 750.0, PriceForSlot(p, weekday, types.TimeString("19:00")))
}

func TestPriceForSlot_FirstMatchingPeakWins(t *testing.T) {
	// Пересекающиеся окна: множители не перемножаются, действует первое
	p := facilityservice.Pricing{
		BasePrice: 100,
		PeakHours: []facilityservice.PeakHour{
			{StartTime: "18:00", EndTime: "20:00", Multiplier: ptrFloat(2.0)},
			{StartTime: "19:00", EndTime: "21:00", Multiplier: ptrFloat(3.0)},
		},
	}

	assert.Equal(t, 200.0, PriceForSlot(p, weekday, types.TimeString("19:00")))
	assert.Equal(t, 300.0, PriceForSlot(p, weekday, types.TimeString("20:00")))
}

func TestPriceForSlot_WeekendAndPeakStack(t *testing.T) {
	p := facilityservice.Pricing{
		BasePrice:         500,
		WeekendMultiplier: ptrFloat(1.2),
		PeakHours: []facilityservice.PeakHour{
			{StartTime: "18:00", EndTime: "21:00", Multiplier: ptrFloat(1.5)},
		},
	}

	// 500 * 1.2 * 1.5 = 900
	assert.Equal(t, 900.0, PriceForSlot(p, weekend, types.TimeString("18:00")))
}

func TestPriceForSlot_NeverBelowBaseWithMultipliersAtLeastOne(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	randomTime := func() types.TimeString {
		m := rng.Intn(24 * 60)
		return types.TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60))
	}

	for i := 0; i < 1000; i++ {
		base := float64(100+rng.Intn(100000)) / 100

		p := facilityservice.Pricing{BasePrice: base}
		if rng.Intn(2) == 0 {
			p.WeekendMultiplier = ptrFloat(1 + float64(rng.Intn(200))/100)
		}
		for w := rng.Intn(3); w > 0; w-- {
			start := rng.Intn(24*60 - 1)
			end := start + 1 + rng.Intn(24*60-start-1)
			p.PeakHours = append(p.PeakHours, facilityservice.PeakHour{
				StartTime:  fmt.Sprintf("%02d:%02d", start/60, start%60),
				EndTime:    fmt.Sprintf("%02d:%02d", end/60, end%60),
				Multiplier: ptrFloat(1 + float64(rng.Intn(200))/100),
			})
		}

		date := weekday
		if rng.Intn(2) == 0 {
			date = weekend
		}

		got := PriceForSlot(p, date, randomTime())

		assert.GreaterOrEqual(t, got, base, "pricing %+v on %s", p, date.Weekday())
	}
}

func TestComputeBookingAmount(t *testing.T) {
	tests := []struct {
		name            string
		unitPrice       float64
		durationMinutes int
		wantBase        float64
		wantTaxes       float64
		wantTotal       float64
	}{
		{name: "one hour off-peak", unitPrice: 500, durationMinutes: 60, wantBase: 500, wantTaxes: 90, wantTotal: 590},
		{name: "one hour weekend", unitPrice: 600, durationMinutes: 60, wantBase: 600, wantTaxes: 108, wantTotal: 708},
		{name: "one hour peak", unitPrice: 750, durationMinutes: 60, wantBase: 750, wantTaxes: 135, wantTotal: 885},
		{name: "ninety minutes", unitPrice: 500, durationMinutes: 90, wantBase: 750, wantTaxes: 135, wantTotal: 885},
		{name: "half hour", unitPrice: 333, durationMinutes: 30, wantBase: 166.5, wantTaxes: 29.97, wantTotal: 196.47},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeBookingAmount(tt.unitPrice, tt.durationMinutes)

			assert.Equal(t, tt.wantBase, got.BaseAmount)
			assert.Equal(t, tt.wantTaxes, got.Taxes)
			assert.Equal(t, tt.wantTotal, got.TotalAmount)
		})
	}
}

func TestRefundAmount(t *testing.T) {
	assert.Equal(t, 472.0, RefundAmount(590, 80))
	assert.Equal(t, 590.0, RefundAmount(590, 100))
	assert.Equal(t, 0.0, RefundAmount(590, 0))
	assert.Equal(t, 708.0, RefundAmount(885, 80))
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)))  // суббота
	assert.True(t, IsWeekend(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)))  // воскресенье
	assert.False(t, IsWeekend(time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC))) // понедельник
	assert.False(t, IsWeekend(time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC))) // пятница
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.234))
	assert.Equal(t, 1.24, Round2(1.236))
	assert.Equal(t, 100.0, Round2(100.0000001))
	// Повторное округление не меняет результат
	assert.Equal(t, Round2(196.47), Round2(Round2(196.47)))
}

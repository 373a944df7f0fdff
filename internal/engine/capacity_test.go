package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/terrazza/bizplanner/internal/domain/models"
)

func TestDailySales(t *testing.T) {
	tests := []struct {
		name string
		cafe models.CafeConfig
		want int
	}{
		{"forty seats", models.CafeConfig{SeatCount: 40, OperatingHours: 9, StayDuration: 2, TurnoverTarget: 0.6}, 108},
		{"defaults", models.DefaultConfiguration().Cafe, 135},
		{"half rounds up", models.CafeConfig{SeatCount: 1, OperatingHours: 5, StayDuration: 2, TurnoverTarget: 1}, 3},
		{"turnover above one", models.CafeConfig{SeatCount: 10, OperatingHours: 8, StayDuration: 2, TurnoverTarget: 1.5}, 60},
		{"no seats", models.CafeConfig{SeatCount: 0, OperatingHours: 8, StayDuration: 2, TurnoverTarget: 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DailySales(tt.cafe))
		})
	}
}

func TestDailySales_NonPositiveStayActsAsOneHour(t *testing.T) {
	base := models.CafeConfig{SeatCount: 40, OperatingHours: 9, StayDuration: 1, TurnoverTarget: 0.6}
	want := DailySales(base)
	assert.Equal(t, 216, want)

	for _, stay := range []float64{0, -5} {
		cafe := base
		cafe.StayDuration = stay
		assert.Equal(t, want, DailySales(cafe), "stay=%v", stay)
		assert.InDelta(t, MaxDailyCapacity(base), MaxDailyCapacity(cafe), delta)
	}
}

func TestDailySales_MonotonicInTurnover(t *testing.T) {
	cafe := models.CafeConfig{SeatCount: 37, OperatingHours: 11, StayDuration: 1.5}

	prev := -1
	for turnover := 0.0; turnover <= 2.0; turnover += 0.05 {
		cafe.TurnoverTarget = turnover
		got := DailySales(cafe)
		assert.GreaterOrEqual(t, got, prev, "turnover=%v", turnover)
		prev = got
	}
}

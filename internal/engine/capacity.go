package engine

import (
	"math"

	"github.com/terrazza/bizplanner/internal/domain/models"
)

func safeStay(stay float64) float64 {
	if stay > 0 {
		return stay
	}
	return 1
}

// MaxDailyCapacity is the number of seatings a full room allows in one day.
func MaxDailyCapacity(cafe models.CafeConfig) float64 {
	return cafe.SeatCount * (cafe.OperatingHours / safeStay(cafe.StayDuration))
}

// DailySales estimates daily cafe unit sales. A non-positive stay duration is
// treated as one hour; turnover above 1.0 is not clamped.
func DailySales(cafe models.CafeConfig) int {
	return roundHalfUp(MaxDailyCapacity(cafe) * cafe.TurnoverTarget)
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

package engine

import (
	"math"

	"github.com/terrazza/bizplanner/internal/domain/models"
)

// Project repeats the monthly summary over the horizon. Cumulative profit starts
// at minus the total investment and each record includes its own month's profit.
// A horizon of zero or less yields an empty slice.
func Project(summary models.FinancialSummary, months int) []models.MonthlyFinancialRecord {
	if months <= 0 {
		return []models.MonthlyFinancialRecord{}
	}

	records := make([]models.MonthlyFinancialRecord, 0, months)
	cumulative := -summary.TotalInvestment
	for m := 1; m <= months; m++ {
		cumulative += summary.NetProfit
		records = append(records, models.MonthlyFinancialRecord{
			Month:            m,
			CafeRevenue:      summary.CafeRevenue,
			SpaceRevenue:     summary.SpaceRevenue,
			WineRevenue:      summary.WineRevenue,
			CafeCOGS:         summary.CafeCOGS,
			WineCOGS:         summary.WineCOGS,
			LaborCost:        summary.LaborCost,
			UtilityCost:      summary.UtilityCost,
			OtherFixedCost:   summary.OtherFixedCost,
			Revenue:          summary.TotalRevenue,
			COGS:             summary.TotalCOGS,
			GrossProfit:      summary.GrossProfit,
			FixedCosts:       summary.TotalFixedCosts,
			NetProfit:        summary.NetProfit,
			CumulativeProfit: cumulative,
		})
	}
	return records
}

// BreakEven returns the first month whose cumulative profit is non-negative.
// A non-positive monthly profit never breaks even, whatever the horizon.
func BreakEven(records []models.MonthlyFinancialRecord) models.Payback {
	if len(records) == 0 || records[0].NetProfit <= 0 {
		return models.Unreached()
	}
	for _, r := range records {
		if r.CumulativeProfit >= 0 {
			return models.PaybackAt(r.Month)
		}
	}
	return models.Unreached()
}

// PaybackMonths estimates the months needed to recover the investment without
// a horizon limit.
func PaybackMonths(totalInvestment, netProfit float64) models.Payback {
	if netProfit <= 0 {
		return models.Unreached()
	}
	q := math.Ceil(totalInvestment / netProfit)
	if math.IsNaN(q) || q >= math.MaxInt32 {
		return models.Unreached()
	}
	if q < 0 {
		q = 0
	}
	return models.PaybackAt(int(q))
}

// Margin is net profit over revenue, or 0 when there is no revenue.
func Margin(netProfit, totalRevenue float64) float64 {
	if totalRevenue == 0 {
		return 0
	}
	return netProfit / totalRevenue
}

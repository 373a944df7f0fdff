package engine

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/terrazza/bizplanner/internal/domain/models"
)

// Snapshot extracts the rounded figures a narrative generator needs.
func Snapshot(cfg models.BusinessConfiguration, summary models.FinancialSummary, breakEven models.Payback) models.ReportSnapshot {
	return models.ReportSnapshot{
		TotalRevenue:    RoundWon(summary.TotalRevenue),
		NetProfit:       RoundWon(summary.NetProfit),
		TotalInvestment: RoundWon(summary.TotalInvestment),
		TurnoverPercent: Percent(cfg.Cafe.TurnoverTarget),
		UtilizationPct:  Percent(cfg.Space.UtilizationRate),
		WineTables:      cfg.Wine.DailyTables,
		SeatCount:       cfg.Cafe.SeatCount,
		OperatingHours:  cfg.Cafe.OperatingHours,
		TakeoutPercent:  Percent(cfg.Cafe.TakeoutRatio),
		WineCOGSPercent: Percent(cfg.Wine.CostOfGoodsSoldRate),
		MarginPercent:   Percent(Margin(summary.NetProfit, summary.TotalRevenue)),
		BreakEven:       breakEven.String(),
	}
}

// RoundWon rounds a won amount half away from zero. NaN and Inf become 0.
func RoundWon(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(0).IntPart()
}

// Percent converts a fraction to a percentage rounded to one decimal place.
func Percent(ratio float64) float64 {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 0
	}
	return decimal.NewFromFloat(ratio).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
}

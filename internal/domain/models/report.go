package models

import "time"

// ReportSnapshot is the flat set of rounded figures handed to a narrative generator.
type ReportSnapshot struct {
	TotalRevenue    int64   `json:"total_revenue"`
	NetProfit       int64   `json:"net_profit"`
	TotalInvestment int64   `json:"total_investment"`
	TurnoverPercent float64 `json:"turnover_percent"`
	UtilizationPct  float64 `json:"utilization_percent"`
	WineTables      float64 `json:"wine_tables"`
	SeatCount       float64 `json:"seat_count"`
	OperatingHours  float64 `json:"operating_hours"`
	TakeoutPercent  float64 `json:"takeout_percent"`
	WineCOGSPercent float64 `json:"wine_cogs_percent"`
	MarginPercent   float64 `json:"margin_percent"`
	BreakEven       string  `json:"break_even"`
}

// StrategyReport is narrative text returned by the generator.
type StrategyReport struct {
	Content     string         `json:"content"`
	Provider    string         `json:"provider"`
	Snapshot    ReportSnapshot `json:"snapshot"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// Dashboard bundles everything derived from one configuration. Payback is
// investment over monthly profit and is not limited to the projection horizon.
type Dashboard struct {
	Summary    FinancialSummary         `json:"summary"`
	UnitCosts  UnitCostBreakdown        `json:"unitCosts"`
	Projection []MonthlyFinancialRecord `json:"projection"`
	BreakEven  Payback                  `json:"breakEven"`
	BreakLabel string                   `json:"breakEvenLabel"`
	Payback    Payback                  `json:"payback"`
	Warnings   []string                 `json:"warnings"`
}

package engine

import "github.com/terrazza/bizplanner/internal/domain/models"

// Calculate aggregates one month of revenue, COGS and fixed costs.
//
// This is the only aggregator: the dashboard and the scenario comparator both
// go through it. It is total over all inputs. Space rental carries no COGS.
func Calculate(cfg models.BusinessConfiguration, costs models.UnitCostBreakdown, dailySales int, rates LaborRates) models.FinancialSummary {
	cafe := cfg.Cafe
	sales := float64(dailySales)

	avgPrice := weighted(models.MenuCosts{
		Americano:  cafe.PriceAmericano,
		Latte:      cafe.PriceLatte,
		SyrupLatte: cafe.PriceSyrupLatte,
	}, cafe)
	avgCost := weighted(costs.Final, cafe)

	cafeRevenue := avgPrice * sales * cafe.OperatingDays
	cafeCOGS := avgCost * sales * cafe.OperatingDays

	sp := cfg.Space
	spaceRevenue := sp.HourlyRate * sp.HoursPerDay * sp.UtilizationRate * sp.OperatingDays

	wine := cfg.Wine
	wineRevenue := wine.AvgTicketPrice * wine.DailyTables * wine.OperatingDays
	wineCOGS := wineRevenue * wine.CostOfGoodsSoldRate

	fixed := cfg.FixedCosts
	labor := LaborCost(fixed, rates)
	other := fixed.Internet + fixed.Marketing + fixed.Maintenance + fixed.Misc
	totalFixed := labor + fixed.Utilities + other

	totalRevenue := cafeRevenue + spaceRevenue + wineRevenue
	totalCOGS := cafeCOGS + wineCOGS
	gross := totalRevenue - totalCOGS

	seats := cafe.SeatCount
	if seats <= 0 {
		seats = 1
	}

	return models.FinancialSummary{
		DailySalesCount:  dailySales,
		MaxDailyCapacity: roundHalfUp(MaxDailyCapacity(cafe)),
		WeightedAvgPrice: avgPrice,
		WeightedAvgCost:  avgCost,
		CafeRevenue:      cafeRevenue,
		CafeCOGS:         cafeCOGS,
		SpaceRevenue:     spaceRevenue,
		WineRevenue:      wineRevenue,
		WineCOGS:         wineCOGS,
		LaborCost:        labor,
		UtilityCost:      fixed.Utilities,
		OtherFixedCost:   other,
		TotalFixedCosts:  totalFixed,
		TotalRevenue:     totalRevenue,
		TotalCOGS:        totalCOGS,
		GrossProfit:      gross,
		NetProfit:        gross - totalFixed,
		TotalInvestment:  TotalInvestment(cfg.InitialInvestment),
		RevenuePerSeat:   totalRevenue / seats,
	}
}

// TotalInvestment sums the one-time opening costs.
func TotalInvestment(inv models.InitialInvestment) float64 {
	return inv.Interior + inv.Equipment + inv.Design + inv.Supplies
}

// Evaluate runs unit costs, capacity and the aggregator for one configuration.
// Unit costs are always derived from cfg's own supply table.
func Evaluate(cfg models.BusinessConfiguration, rates LaborRates) (models.UnitCostBreakdown, models.FinancialSummary) {
	costs := UnitCosts(cfg.Cafe, cfg.CafeSupplies)
	return costs, Calculate(cfg, costs, DailySales(cfg.Cafe), rates)
}

package engine

import "github.com/terrazza/bizplanner/internal/domain/models"

// Entry is one configuration fed to the comparator.
type Entry struct {
	ScenarioID string
	Name       string
	IsDraft    bool
	Config     models.BusinessConfiguration
}

// Compare evaluates each entry independently and ranks the results.
// An empty input yields empty rows and nil rankings.
func Compare(entries []Entry, rates LaborRates) models.Comparison {
	rows := make([]models.ComparisonRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, CompareRow(e, rates))
	}

	return models.Comparison{
		Rows:           rows,
		BestRevenue:    BestByRevenue(rows),
		BestProfit:     BestByProfit(rows),
		BestMargin:     BestByMargin(rows),
		FastestPayback: FastestPayback(rows),
	}
}

// CompareRow evaluates a single entry.
func CompareRow(e Entry, rates LaborRates) models.ComparisonRow {
	_, summary := Evaluate(e.Config, rates)
	return models.ComparisonRow{
		ScenarioID:      e.ScenarioID,
		Name:            e.Name,
		IsDraft:         e.IsDraft,
		TotalRevenue:    summary.TotalRevenue,
		NetProfit:       summary.NetProfit,
		TotalInvestment: summary.TotalInvestment,
		Margin:          Margin(summary.NetProfit, summary.TotalRevenue),
		PaybackMonths:   PaybackMonths(summary.TotalInvestment, summary.NetProfit),
	}
}

// BestByRevenue returns the highest-revenue row, or nil for no rows.
func BestByRevenue(rows []models.ComparisonRow) *models.ComparisonRow {
	return maxBy(rows, func(r models.ComparisonRow) float64 { return r.TotalRevenue })
}

// BestByProfit returns the highest-profit row, or nil for no rows.
func BestByProfit(rows []models.ComparisonRow) *models.ComparisonRow {
	return maxBy(rows, func(r models.ComparisonRow) float64 { return r.NetProfit })
}

// BestByMargin returns the highest-margin row, or nil for no rows.
func BestByMargin(rows []models.ComparisonRow) *models.ComparisonRow {
	return maxBy(rows, func(r models.ComparisonRow) float64 { return r.Margin })
}

// FastestPayback returns the row with the fewest payback months. Rows that
// never pay back are skipped; nil when none qualifies.
func FastestPayback(rows []models.ComparisonRow) *models.ComparisonRow {
	var best *models.ComparisonRow
	for i := range rows {
		if !rows[i].PaybackMonths.Reached {
			continue
		}
		if best == nil || rows[i].PaybackMonths.Months < best.PaybackMonths.Months {
			row := rows[i]
			best = &row
		}
	}
	return best
}

// maxBy keeps the first row on ties.
func maxBy(rows []models.ComparisonRow, key func(models.ComparisonRow) float64) *models.ComparisonRow {
	if len(rows) == 0 {
		return nil
	}
	best := rows[0]
	for _, r := range rows[1:] {
		if key(r) > key(best) {
			best = r
		}
	}
	return &best
}

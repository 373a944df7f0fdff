package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrazza/bizplanner/internal/domain/models"
)

func comparisonFixtures() []Entry {
	base := models.DefaultConfiguration()

	busy := base.Clone()
	busy.Cafe.TurnoverTarget = 0.8
	busy.InitialInvestment.Interior = 90000000

	losing := base.Clone()
	losing.Cafe.TurnoverTarget = 0.05
	losing.Space.UtilizationRate = 0
	losing.Wine.DailyTables = 0

	lean := base.Clone()
	lean.InitialInvestment = models.InitialInvestment{Equipment: 10000000}
	lean.FixedCosts.Marketing = 0

	return []Entry{
		{ScenarioID: "a", Name: "base", Config: base},
		{ScenarioID: "b", Name: "busy", Config: busy},
		{ScenarioID: "c", Name: "losing", Config: losing},
		{ScenarioID: "d", Name: "lean", Config: lean},
	}
}

func TestCompare_Rows(t *testing.T) {
	entries := comparisonFixtures()

	cmp := Compare(entries, DefaultLaborRates())

	require.Len(t, cmp.Rows, len(entries))
	for i, row := range cmp.Rows {
		_, s := Evaluate(entries[i].Config, DefaultLaborRates())
		assert.Equal(t, entries[i].Name, row.Name)
		assert.Equal(t, entries[i].ScenarioID, row.ScenarioID)
		assert.Equal(t, s.TotalRevenue, row.TotalRevenue)
		assert.Equal(t, s.NetProfit, row.NetProfit)
		assert.Equal(t, s.TotalInvestment, row.TotalInvestment)
		assert.InDelta(t, s.NetProfit/s.TotalRevenue, row.Margin, delta)
	}

	base := cmp.Rows[0]
	assert.Equal(t, models.PaybackAt(5), base.PaybackMonths)
	assert.False(t, cmp.Rows[2].PaybackMonths.Reached)
	assert.Less(t, cmp.Rows[2].NetProfit, 0.0)
}

func TestCompare_Rankings(t *testing.T) {
	cmp := Compare(comparisonFixtures(), DefaultLaborRates())

	require.NotNil(t, cmp.BestRevenue)
	require.NotNil(t, cmp.BestProfit)
	require.NotNil(t, cmp.BestMargin)
	require.NotNil(t, cmp.FastestPayback)

	assert.Equal(t, "busy", cmp.BestRevenue.Name)
	assert.Equal(t, "busy", cmp.BestProfit.Name)
	assert.Equal(t, "lean", cmp.FastestPayback.Name)
	assert.Equal(t, models.PaybackAt(1), cmp.FastestPayback.PaybackMonths)
}

func TestCompare_Empty(t *testing.T) {
	cmp := Compare(nil, DefaultLaborRates())

	assert.NotNil(t, cmp.Rows)
	assert.Empty(t, cmp.Rows)
	assert.Nil(t, cmp.BestRevenue)
	assert.Nil(t, cmp.BestProfit)
	assert.Nil(t, cmp.BestMargin)
	assert.Nil(t, cmp.FastestPayback)
}

func TestFastestPayback_SkipsUnreached(t *testing.T) {
	rows := []models.ComparisonRow{
		{Name: "never", PaybackMonths: models.Unreached()},
		{Name: "slow", PaybackMonths: models.PaybackAt(20)},
		{Name: "quick", PaybackMonths: models.PaybackAt(6)},
		{Name: "also quick", PaybackMonths: models.PaybackAt(6)},
	}

	best := FastestPayback(rows)
	require.NotNil(t, best)
	assert.Equal(t, "quick", best.Name)

	assert.Nil(t, FastestPayback(rows[:1]))
}

func TestMaxBy_TiesKeepFirst(t *testing.T) {
	rows := []models.ComparisonRow{
		{Name: "first", TotalRevenue: 10, NetProfit: 5, Margin: 0.5},
		{Name: "second", TotalRevenue: 10, NetProfit: 5, Margin: 0.5},
	}

	assert.Equal(t, "first", BestByRevenue(rows).Name)
	assert.Equal(t, "first", BestByProfit(rows).Name)
	assert.Equal(t, "first", BestByMargin(rows).Name)
}

func TestCompare_DraftEntry(t *testing.T) {
	entries := append(comparisonFixtures()[:1], Entry{
		Name:    models.DraftEntryName,
		IsDraft: true,
		Config:  models.DefaultConfiguration(),
	})

	cmp := Compare(entries, DefaultLaborRates())

	require.Len(t, cmp.Rows, 2)
	assert.True(t, cmp.Rows[1].IsDraft)
	assert.Empty(t, cmp.Rows[1].ScenarioID)
	assert.Equal(t, cmp.Rows[0].NetProfit, cmp.Rows[1].NetProfit)
}

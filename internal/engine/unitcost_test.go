package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/terrazza/bizplanner/internal/domain/models"
)

const delta = 1e-6

func TestUnitCosts_Defaults(t *testing.T) {
	cfg := models.DefaultConfiguration()

	costs := UnitCosts(cfg.Cafe, cfg.CafeSupplies)

	assert.InDelta(t, 600, costs.Ingredients.Bean, delta)
	assert.InDelta(t, 375, costs.Ingredients.Milk, delta)
	assert.InDelta(t, 170, costs.Packaging.TakeoutHot, delta)
	assert.InDelta(t, 185, costs.Packaging.TakeoutIce, delta)
	assert.InDelta(t, 87, costs.Packaging.StoreHot, delta)
	assert.InDelta(t, 88, costs.Packaging.StoreIce, delta)

	assert.InDelta(t, 800, costs.Products.Takeout.Hot.Americano, delta)
	assert.InDelta(t, 865, costs.Products.Takeout.Ice.Americano, delta)
	assert.InDelta(t, 717, costs.Products.Store.Hot.Americano, delta)
	assert.InDelta(t, 768, costs.Products.Store.Ice.Americano, delta)
	assert.InDelta(t, 1270, costs.Products.Takeout.Ice.SyrupLatte, delta)

	assert.InDelta(t, 820.7, costs.Final.Americano, delta)
	assert.InDelta(t, 1165.7, costs.Final.Latte, delta)
	assert.InDelta(t, 1225.7, costs.Final.SyrupLatte, delta)
}

func TestUnitCosts_PureRatios(t *testing.T) {
	cfg := models.DefaultConfiguration()

	tests := []struct {
		name    string
		takeout float64
		ice     float64
		want    func(models.ChannelCosts) float64
	}{
		{"takeout iced", 1, 1, func(p models.ChannelCosts) float64 { return p.Takeout.Ice.Latte }},
		{"takeout hot", 1, 0, func(p models.ChannelCosts) float64 { return p.Takeout.Hot.Latte }},
		{"store iced", 0, 1, func(p models.ChannelCosts) float64 { return p.Store.Ice.Latte }},
		{"store hot", 0, 0, func(p models.ChannelCosts) float64 { return p.Store.Hot.Latte }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cafe := cfg.Cafe
			cafe.TakeoutRatio = tt.takeout
			cafe.IceRatio = tt.ice

			costs := UnitCosts(cafe, cfg.CafeSupplies)
			assert.InDelta(t, tt.want(costs.Products), costs.Final.Latte, delta)
		})
	}
}

func TestUnitCosts_BlendStaysWithinVariants(t *testing.T) {
	cfg := models.DefaultConfiguration()
	steps := []float64{0, 0.1, 0.25, 0.5, 0.7, 0.9, 1}

	for _, takeout := range steps {
		for _, ice := range steps {
			cafe := cfg.Cafe
			cafe.TakeoutRatio = takeout
			cafe.IceRatio = ice
			costs := UnitCosts(cafe, cfg.CafeSupplies)
			p := costs.Products

			check := func(name string, final float64, variants ...float64) {
				lo, hi := math.Inf(1), math.Inf(-1)
				for _, v := range variants {
					lo = math.Min(lo, v)
					hi = math.Max(hi, v)
				}
				assert.GreaterOrEqual(t, final, lo-delta, "%s takeout=%v ice=%v", name, takeout, ice)
				assert.LessOrEqual(t, final, hi+delta, "%s takeout=%v ice=%v", name, takeout, ice)
			}

			check("americano", costs.Final.Americano,
				p.Takeout.Hot.Americano, p.Takeout.Ice.Americano, p.Store.Hot.Americano, p.Store.Ice.Americano)
			check("latte", costs.Final.Latte,
				p.Takeout.Hot.Latte, p.Takeout.Ice.Latte, p.Store.Hot.Latte, p.Store.Ice.Latte)
			check("syrup latte", costs.Final.SyrupLatte,
				p.Takeout.Hot.SyrupLatte, p.Takeout.Ice.SyrupLatte, p.Store.Hot.SyrupLatte, p.Store.Ice.SyrupLatte)
		}
	}
}

func TestUnitCosts_SupplyChangesOnlyAffectMatchingVariants(t *testing.T) {
	cfg := models.DefaultConfiguration()
	base := UnitCosts(cfg.Cafe, cfg.CafeSupplies)

	supplies := cfg.CafeSupplies
	supplies.Carrier += 100
	changed := UnitCosts(cfg.Cafe, supplies)

	assert.InDelta(t, base.Products.Takeout.Hot.Americano+100, changed.Products.Takeout.Hot.Americano, delta)
	assert.InDelta(t, base.Products.Takeout.Ice.Americano+100, changed.Products.Takeout.Ice.Americano, delta)
	assert.InDelta(t, base.Products.Store.Hot.Americano, changed.Products.Store.Hot.Americano, delta)
	assert.InDelta(t, base.Products.Store.Ice.Americano, changed.Products.Store.Ice.Americano, delta)
	assert.InDelta(t, base.Final.Americano+100*cfg.Cafe.TakeoutRatio, changed.Final.Americano, delta)
}

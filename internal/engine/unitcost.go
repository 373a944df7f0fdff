package engine

import "github.com/terrazza/bizplanner/internal/domain/models"

// UnitCosts derives the cost of one serving of each menu item across the
// takeout/store and hot/iced variants, then blends the four variants with the
// cafe's ice and takeout ratios. Both ratios are shared by all menu items.
func UnitCosts(cafe models.CafeConfig, s models.CafeSupplies) models.UnitCostBreakdown {
	ing := models.IngredientCosts{
		Bean:  (cafe.BeanPricePerKg / 1000) * s.BeanGrams,
		Milk:  (cafe.MilkPricePerL / 1000) * s.MilkMl,
		Water: s.Water,
		Ice:   s.Ice,
		Syrup: s.Syrup,
	}

	pack := models.PackagingCosts{
		TakeoutHot: s.HotCup + s.HotLid + s.Stick + s.Holder + s.Carrier + s.Wipe + s.Napkin,
		TakeoutIce: s.IceCup + s.IceLid + s.Straw + s.Holder + s.Carrier + s.Wipe + s.Napkin,
		StoreHot:   s.Stick + s.Wipe + s.Napkin + s.Dishwashing,
		StoreIce:   s.Straw + s.Wipe + s.Napkin + s.Dishwashing,
	}

	hot := models.MenuCosts{
		Americano:  ing.Bean + ing.Water,
		Latte:      ing.Bean + ing.Milk,
		SyrupLatte: ing.Bean + ing.Milk + ing.Syrup,
	}
	iced := addFlat(hot, ing.Ice)

	products := models.ChannelCosts{
		Takeout: models.TemperatureCosts{
			Hot: addFlat(hot, pack.TakeoutHot),
			Ice: addFlat(iced, pack.TakeoutIce),
		},
		Store: models.TemperatureCosts{
			Hot: addFlat(hot, pack.StoreHot),
			Ice: addFlat(iced, pack.StoreIce),
		},
	}

	takeout := blend(products.Takeout.Ice, products.Takeout.Hot, cafe.IceRatio)
	store := blend(products.Store.Ice, products.Store.Hot, cafe.IceRatio)

	return models.UnitCostBreakdown{
		Ingredients: ing,
		Packaging:   pack,
		Products:    products,
		Final:       blend(takeout, store, cafe.TakeoutRatio),
	}
}

func addFlat(m models.MenuCosts, v float64) models.MenuCosts {
	return models.MenuCosts{
		Americano:  m.Americano + v,
		Latte:      m.Latte + v,
		SyrupLatte: m.SyrupLatte + v,
	}
}

// blend returns a*ratio + b*(1-ratio) per menu item.
func blend(a, b models.MenuCosts, ratio float64) models.MenuCosts {
	return models.MenuCosts{
		Americano:  a.Americano*ratio + b.Americano*(1-ratio),
		Latte:      a.Latte*ratio + b.Latte*(1-ratio),
		SyrupLatte: a.SyrupLatte*ratio + b.SyrupLatte*(1-ratio),
	}
}

// weighted applies the menu mix ratios to per-item values.
func weighted(m models.MenuCosts, cafe models.CafeConfig) float64 {
	return m.Americano*cafe.RatioAmericano +
		m.Latte*cafe.RatioLatte +
		m.SyrupLatte*cafe.RatioSyrupLatte
}

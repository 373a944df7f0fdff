package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnreachedLabel is shown wherever a break-even or payback month does not exist.
const UnreachedLabel = "미도달"

// MenuCosts carries one value per menu item.
type MenuCosts struct {
	Americano  float64 `json:"americano"`
	Latte      float64 `json:"latte"`
	SyrupLatte float64 `json:"syrupLatte"`
}

// TemperatureCosts splits a channel into hot and iced servings.
type TemperatureCosts struct {
	Hot MenuCosts `json:"hot"`
	Ice MenuCosts `json:"ice"`
}

// ChannelCosts holds the twelve channel × temperature × menu product costs.
type ChannelCosts struct {
	Takeout TemperatureCosts `json:"takeout"`
	Store   TemperatureCosts `json:"store"`
}

// IngredientCosts are per-serving base costs before packaging.
type IngredientCosts struct {
	Bean  float64 `json:"bean"`
	Milk  float64 `json:"milk"`
	Water float64 `json:"water"`
	Ice   float64 `json:"ice"`
	Syrup float64 `json:"syrup"`
}

// PackagingCosts are per-serving packaging costs by channel and temperature.
type PackagingCosts struct {
	TakeoutHot float64 `json:"takeoutHot"`
	TakeoutIce float64 `json:"takeoutIce"`
	StoreHot   float64 `json:"storeHot"`
	StoreIce   float64 `json:"storeIce"`
}

// UnitCostBreakdown is the derived cost of one serving of each menu item.
type UnitCostBreakdown struct {
	Ingredients IngredientCosts `json:"ingredients"`
	Packaging   PackagingCosts  `json:"packaging"`
	Products    ChannelCosts    `json:"products"`
	// Final is the takeout/store and hot/iced blended cost per menu item.
	Final MenuCosts `json:"final"`
}

// FinancialSummary is the single-month result of the financial calculator.
type FinancialSummary struct {
	DailySalesCount  int     `json:"dailySalesCount"`
	MaxDailyCapacity int     `json:"maxDailyCapacity"`
	WeightedAvgPrice float64 `json:"weightedAvgPrice"`
	WeightedAvgCost  float64 `json:"weightedAvgCost"`

	CafeRevenue  float64 `json:"cafeRevenue"`
	CafeCOGS     float64 `json:"cafeCOGS"`
	SpaceRevenue float64 `json:"spaceRevenue"`
	WineRevenue  float64 `json:"wineRevenue"`
	WineCOGS     float64 `json:"wineCOGS"`

	LaborCost       float64 `json:"laborCost"`
	UtilityCost     float64 `json:"utilityCost"`
	OtherFixedCost  float64 `json:"otherFixedCost"`
	TotalFixedCosts float64 `json:"totalFixedCosts"`

	TotalRevenue    float64 `json:"totalRevenue"`
	TotalCOGS       float64 `json:"totalCOGS"`
	GrossProfit     float64 `json:"grossProfit"`
	NetProfit       float64 `json:"netProfit"`
	TotalInvestment float64 `json:"totalInvestment"`
	RevenuePerSeat  float64 `json:"revenuePerSeat"`
}

// MonthlyFinancialRecord is one row of the projection.
type MonthlyFinancialRecord struct {
	Month            int     `json:"month"`
	CafeRevenue      float64 `json:"cafeRevenue"`
	SpaceRevenue     float64 `json:"spaceRevenue"`
	WineRevenue      float64 `json:"wineRevenue"`
	CafeCOGS         float64 `json:"cafeCOGS"`
	WineCOGS         float64 `json:"wineCOGS"`
	LaborCost        float64 `json:"laborCost"`
	UtilityCost      float64 `json:"utilityCost"`
	OtherFixedCost   float64 `json:"otherFixedCost"`
	Revenue          float64 `json:"revenue"`
	COGS             float64 `json:"cogs"`
	GrossProfit      float64 `json:"grossProfit"`
	FixedCosts       float64 `json:"fixedCosts"`
	NetProfit        float64 `json:"netProfit"`
	CumulativeProfit float64 `json:"cumulativeProfit"`
}

// Payback is a month count that may not exist. The zero value is unreached.
type Payback struct {
	Months  int
	Reached bool
}

// PaybackAt returns a reached payback at the given month.
func PaybackAt(months int) Payback {
	return Payback{Months: months, Reached: true}
}

// Unreached returns the "not reached" sentinel.
func Unreached() Payback {
	return Payback{}
}

// String renders "M+<n>" or the unreached label.
func (p Payback) String() string {
	if !p.Reached {
		return UnreachedLabel
	}
	return fmt.Sprintf("M+%d", p.Months)
}

// MarshalJSON encodes unreached as null.
func (p Payback) MarshalJSON() ([]byte, error) {
	if !p.Reached {
		return []byte("null"), nil
	}
	return json.Marshal(p.Months)
}

// UnmarshalJSON accepts a month number or null.
func (p *Payback) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = Unreached()
		return nil
	}
	var months int
	if err := json.Unmarshal(data, &months); err != nil {
		return fmt.Errorf("decode payback months: %w", err)
	}
	*p = PaybackAt(months)
	return nil
}

package models

// CafeConfig holds menu pricing, capacity and mix settings for the cafe line.
type CafeConfig struct {
	PriceAmericano  float64 `json:"avgPriceAmericano" bson:"price_americano"`
	PriceLatte      float64 `json:"avgPriceLatte" bson:"price_latte"`
	PriceSyrupLatte float64 `json:"avgPriceSyrupLatte" bson:"price_syrup_latte"`
	BeanPricePerKg  float64 `json:"beanPricePerKg" bson:"bean_price_per_kg"`
	MilkPricePerL   float64 `json:"milkPricePerL" bson:"milk_price_per_l"`

	SeatCount      float64 `json:"seatCount" bson:"seat_count"`
	OperatingHours float64 `json:"operatingHours" bson:"operating_hours"`
	StayDuration   float64 `json:"stayDuration" bson:"stay_duration"`
	TurnoverTarget float64 `json:"turnoverTarget" bson:"turnover_target"`

	RatioAmericano  float64 `json:"ratioAmericano" bson:"ratio_americano"`
	RatioLatte      float64 `json:"ratioLatte" bson:"ratio_latte"`
	RatioSyrupLatte float64 `json:"ratioSyrupLatte" bson:"ratio_syrup_latte"`
	TakeoutRatio    float64 `json:"takeoutRatio" bson:"takeout_ratio"`
	IceRatio        float64 `json:"iceRatio" bson:"ice_ratio"`

	OperatingDays float64 `json:"operatingDays" bson:"operating_days"`
}

// CafeSupplies is the per-unit consumable and ingredient price table.
type CafeSupplies struct {
	HotCup      float64 `json:"hotCup" bson:"hot_cup"`
	HotLid      float64 `json:"hotLid" bson:"hot_lid"`
	Stick       float64 `json:"stick" bson:"stick"`
	IceCup      float64 `json:"iceCup" bson:"ice_cup"`
	IceLid      float64 `json:"iceLid" bson:"ice_lid"`
	Straw       float64 `json:"straw" bson:"straw"`
	Holder      float64 `json:"holder" bson:"holder"`
	Carrier     float64 `json:"carrier" bson:"carrier"`
	Wipe        float64 `json:"wipe" bson:"wipe"`
	Napkin      float64 `json:"napkin" bson:"napkin"`
	Dishwashing float64 `json:"dishwashing" bson:"dishwashing"`
	Water       float64 `json:"water" bson:"water"`
	Ice         float64 `json:"ice" bson:"ice"`
	Syrup       float64 `json:"syrup" bson:"syrup"`

	// Usage per serving.
	BeanGrams float64 `json:"beanGrams" bson:"bean_grams"`
	MilkMl    float64 `json:"milkMl" bson:"milk_ml"`
}

// SpaceConfig describes the hourly space-rental line.
type SpaceConfig struct {
	HourlyRate      float64 `json:"hourlyRate" bson:"hourly_rate"`
	HoursPerDay     float64 `json:"hoursPerDay" bson:"hours_per_day"`
	OperatingDays   float64 `json:"operatingDays" bson:"operating_days"`
	UtilizationRate float64 `json:"utilizationRate" bson:"utilization_rate"`
}

// WineConfig describes the evening wine-bar line.
type WineConfig struct {
	AvgTicketPrice      float64 `json:"avgTicketPrice" bson:"avg_ticket_price"`
	DailyTables         float64 `json:"dailyTables" bson:"daily_tables"`
	OperatingDays       float64 `json:"operatingDays" bson:"operating_days"`
	CostOfGoodsSoldRate float64 `json:"costOfGoodsSoldRate" bson:"cogs_rate"`
}

// FixedCosts are monthly amounts that do not scale with sales.
type FixedCosts struct {
	WeekdayStaff    float64 `json:"weekdayStaff" bson:"weekday_staff"`
	WeekendStaff    float64 `json:"weekendStaff" bson:"weekend_staff"`
	AdditionalLabor float64 `json:"additionalLabor" bson:"additional_labor"`
	Utilities       float64 `json:"utilities" bson:"utilities"`
	Internet        float64 `json:"internet" bson:"internet"`
	Marketing       float64 `json:"marketing" bson:"marketing"`
	Maintenance     float64 `json:"maintenance" bson:"maintenance"`
	Misc            float64 `json:"misc" bson:"misc"`
}

// InitialInvestment holds one-time opening costs.
type InitialInvestment struct {
	Interior  float64 `json:"interior" bson:"interior"`
	Equipment float64 `json:"equipment" bson:"equipment"`
	Design    float64 `json:"design" bson:"design"`
	Supplies  float64 `json:"supplies" bson:"supplies"`
}

// BusinessConfiguration is the full input of one planning scenario.
type BusinessConfiguration struct {
	Cafe              CafeConfig        `json:"cafe" bson:"cafe"`
	CafeSupplies      CafeSupplies      `json:"cafeSupplies" bson:"cafe_supplies"`
	Space             SpaceConfig       `json:"space" bson:"space"`
	Wine              WineConfig        `json:"wine" bson:"wine"`
	FixedCosts        FixedCosts        `json:"fixedCosts" bson:"fixed_costs"`
	InitialInvestment InitialInvestment `json:"initialInvestment" bson:"initial_investment"`
}

// Clone returns a structurally independent copy of the configuration.
//
// Every section is a flat value struct today, so a value copy is already deep.
// Callers must still go through Clone so that adding a reference-typed field
// later only needs to be handled here.
func (c BusinessConfiguration) Clone() BusinessConfiguration {
	clone := c
	return clone
}

// DefaultCafeSupplies returns the reference consumable price table (KRW).
func DefaultCafeSupplies() CafeSupplies {
	return CafeSupplies{
		HotCup:      39,
		HotLid:      25,
		Stick:       5,
		IceCup:      52,
		IceLid:      26,
		Straw:       6,
		Holder:      19,
		Carrier:     60,
		Wipe:        18,
		Napkin:      4,
		Dishwashing: 60,
		Water:       30,
		Ice:         50,
		Syrup:       60,
		BeanGrams:   20,
		MilkMl:      150,
	}
}

// DefaultConfiguration returns the starting draft used when nothing was loaded.
func DefaultConfiguration() BusinessConfiguration {
	return BusinessConfiguration{
		Cafe: CafeConfig{
			PriceAmericano:  4500,
			PriceLatte:      5000,
			PriceSyrupLatte: 5500,
			BeanPricePerKg:  30000,
			MilkPricePerL:   2500,
			SeatCount:       60,
			OperatingHours:  9,
			StayDuration:    2,
			TurnoverTarget:  0.5,
			RatioAmericano:  0.5,
			RatioLatte:      0.3,
			RatioSyrupLatte: 0.2,
			TakeoutRatio:    0.7,
			IceRatio:        0.75,
			OperatingDays:   26,
		},
		CafeSupplies: DefaultCafeSupplies(),
		Space: SpaceConfig{
			HourlyRate:      50000,
			HoursPerDay:     8,
			OperatingDays:   30,
			UtilizationRate: 0.5,
		},
		Wine: WineConfig{
			AvgTicketPrice:      65000,
			DailyTables:         5,
			OperatingDays:       24,
			CostOfGoodsSoldRate: 0.35,
		},
		FixedCosts: FixedCosts{
			WeekdayStaff:    2,
			WeekendStaff:    1,
			AdditionalLabor: 0,
			Utilities:       2000000,
			Internet:        40000,
			Marketing:       1000000,
			Maintenance:     100000,
			Misc:            100000,
		},
		InitialInvestment: InitialInvestment{
			Interior:  50000000,
			Equipment: 15000000,
			Design:    2000000,
			Supplies:  5000000,
		},
	}
}

// Package engine turns a business configuration into unit costs, a monthly
// P&L summary, a cumulative projection and cross-scenario comparisons.
//
// Every function here is pure: no I/O, no logging, no shared state.
package engine

import "github.com/terrazza/bizplanner/internal/domain/models"

const (
	// DefaultWeekdayMonthlyRate is the monthly cost of one full-time weekday staff member.
	DefaultWeekdayMonthlyRate = 2156880
	// DefaultWeekendMonthlyRate is the monthly cost of one weekend staff member.
	DefaultWeekendMonthlyRate = 861200

	// StandardWeekdayHours is the statutory monthly-hours convention for full-time work.
	StandardWeekdayHours = 209
	// StandardWeekendHours is the monthly-hours convention for weekend-only work.
	StandardWeekendHours = 83.45
)

// LaborRates are monthly-equivalent wages per staff head.
type LaborRates struct {
	WeekdayMonthly float64
	WeekendMonthly float64
}

// DefaultLaborRates returns the reference wage rates.
func DefaultLaborRates() LaborRates {
	return LaborRates{
		WeekdayMonthly: DefaultWeekdayMonthlyRate,
		WeekendMonthly: DefaultWeekendMonthlyRate,
	}
}

// RatesFromWage derives monthly rates from an hourly wage and monthly hour conventions.
func RatesFromWage(hourlyWage, weekdayHours, weekendHours float64) LaborRates {
	return LaborRates{
		WeekdayMonthly: hourlyWage * weekdayHours,
		WeekendMonthly: hourlyWage * weekendHours,
	}
}

// LaborCost returns the monthly labor bill including the discretionary amount.
func LaborCost(fixed models.FixedCosts, rates LaborRates) float64 {
	return fixed.WeekdayStaff*rates.WeekdayMonthly +
		fixed.WeekendStaff*rates.WeekendMonthly +
		fixed.AdditionalLabor
}

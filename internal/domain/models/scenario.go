package models

import (
	"errors"
	"time"
)

// ErrScenarioNotFound is returned by stores when the requested id does not exist.
var ErrScenarioNotFound = errors.New("scenario not found")

// DraftEntryName labels the live draft when it joins a comparison.
const DraftEntryName = "현재 계획 (Draft)"

// Scenario is a named, persisted snapshot of a configuration.
type Scenario struct {
	ID        string                `json:"id" bson:"_id"`
	Name      string                `json:"name" bson:"name"`
	Config    BusinessConfiguration `json:"config" bson:"config"`
	Timestamp time.Time             `json:"timestamp" bson:"timestamp"`
}

// ComparisonRow is one comparator entry.
type ComparisonRow struct {
	ScenarioID      string  `json:"scenarioId,omitempty"`
	Name            string  `json:"name"`
	IsDraft         bool    `json:"isDraft"`
	TotalRevenue    float64 `json:"totalRevenue"`
	NetProfit       float64 `json:"netProfit"`
	TotalInvestment float64 `json:"totalInvestment"`
	Margin          float64 `json:"margin"`
	PaybackMonths   Payback `json:"paybackMonths"`
}

// Comparison is the comparator output plus rankings. Rankings are nil when
// no row qualifies.
type Comparison struct {
	Rows           []ComparisonRow `json:"rows"`
	BestRevenue    *ComparisonRow  `json:"bestRevenue"`
	BestProfit     *ComparisonRow  `json:"bestProfit"`
	BestMargin     *ComparisonRow  `json:"bestMargin"`
	FastestPayback *ComparisonRow  `json:"fastestPayback"`
}

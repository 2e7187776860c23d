package models

// CalculationResults holds the monthly costs computed for an address. A nil
// field means the figure could not be computed from the answers given.
type CalculationResults struct {
	HousingCostMonthly            *float64 `json:"housingCostMonthly"`
	HousingCostPercentageOfIncome *float64 `json:"housingCostPercentageOfIncome"`
	CarCostMonthly                *float64 `json:"carCostMonthly"`
	// TotalCostMonthly is set only when both housing and car costs are.
	TotalCostMonthly              *float64 `json:"totalCostMonthly"`
}

// ComparisonReport summarises the evaluated addresses of a household.
type ComparisonReport struct {
	TotalAddresses  int
	CostedAddresses int
	RoutedAddresses int
	AverageTotal    float64
	MinTotal        float64
	MaxTotal        float64
	Cheapest        *Address
	MostExpensive   *Address
	Commutes        []Commute
}

// Commute is the fastest way from an address to a destination.
type Commute struct {
	AddressName     string
	DestinationName string
	Fastest         *TimeAndDistance
}

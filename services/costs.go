package services

import (
	"relocation-estimator/models"
	"relocation-estimator/utils"
)

// CostService combines housing and vehicle costs for an address.
type CostService struct {
	housing *HousingCalculator
	logger  *utils.Logger
}

// NewCostService creates a CostService with the default housing calculator.
func NewCostService(logger *utils.Logger) *CostService {
	return &CostService{housing: NewHousingCalculator(), logger: logger}
}

// NewCostServiceWith creates a CostService using the given housing calculator.
func NewCostServiceWith(housing *HousingCalculator, logger *utils.Logger) *CostService {
	return &CostService{housing: housing, logger: logger}
}

// ComputeCosts returns the monthly costs of living at address for the
// household. Figures that cannot be computed are nil and the reason is logged.
func (s *CostService) ComputeCosts(address *models.Address, household *models.Household) models.CalculationResults {
	var results models.CalculationResults

	housing, err := s.housing.HousingCost(address)
	if err != nil {
		s.logger.Error("[costs] Address %s: cannot compute monthly housing cost: %v", address.ID, err)
	} else {
		results.HousingCostMonthly = &housing
		results.HousingCostPercentageOfIncome = percentageOfIncome(housing, household)
	}

	// Car cost does not depend on the address yet.
	car, err := VehicleCost(household.VehicleList())
	if err != nil {
		s.logger.Error("[costs] Address %s: cannot compute monthly car cost: %v", address.ID, err)
	} else {
		results.CarCostMonthly = &car
	}

	if results.HousingCostMonthly != nil && results.CarCostMonthly != nil {
		total := *results.HousingCostMonthly + *results.CarCostMonthly
		results.TotalCostMonthly = &total
	}
	return results
}

// percentageOfIncome is a placeholder and always returns nil.
func percentageOfIncome(_ float64, _ *models.Household) *float64 {
	return nil
}

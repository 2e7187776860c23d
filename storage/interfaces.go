package storage

import "relocation-estimator/models"

// EvaluationWriter is the interface any export backend must satisfy.
type EvaluationWriter interface {
	Write(addresses []*models.Address) error
	Close() error
}

// row flattens the figures shared by the tabular exporters.
type row struct {
	housing, car, total, incomeShare *float64
	polygons                         int
}

func flatten(a *models.Address) row {
	r := row{}
	if c := a.MonthlyCost; c != nil {
		r.housing = c.HousingCostMonthly
		r.car = c.CarCostMonthly
		r.total = c.TotalCostMonthly
		r.incomeShare = c.HousingCostPercentageOfIncome
	}
	if a.AccessibilityMap != nil {
		r.polygons = len(a.AccessibilityMap.Features)
	}
	return r
}

var (
	_ EvaluationWriter = (*CSVWriter)(nil)
	_ EvaluationWriter = (*PostgresWriter)(nil)
	_ EvaluationWriter = (*ShapefileWriter)(nil)
)

package services

import "relocation-estimator/models"

// VehicleKey identifies a row of the vehicle cost table.
type VehicleKey struct {
	Category models.VehicleCategory
	Engine   models.EngineType
}

// caaAverageAnnualCost approximates the CAA average yearly ownership cost, in
// dollars, for each known category and engine. Combinations without CAA data are
// absent; the "other" category has none.
var caaAverageAnnualCost = map[VehicleKey]float64{
	{models.PassengerCar, models.Electric}:     5947.69,
	{models.PassengerCar, models.PluginHybrid}: 8123.40,
	{models.PassengerCar, models.Hybrid}:       7215.56,
	{models.PassengerCar, models.Gas}:          9399.12,

	{models.LuxuryCar, models.Electric}:     9612.33,
	{models.LuxuryCar, models.PluginHybrid}: 11204.87,
	{models.LuxuryCar, models.Hybrid}:       10458.20,
	{models.LuxuryCar, models.Gas}:          12870.45,

	{models.Suv, models.Electric}:     8240.18,
	{models.Suv, models.PluginHybrid}: 9015.62,
	{models.Suv, models.Hybrid}:       7831.04,
	{models.Suv, models.Gas}:          11302.77,

	{models.Pickup, models.Electric}: 10440.25,
	{models.Pickup, models.Hybrid}:   12118.90,
	{models.Pickup, models.Gas}:      13975.36,
}

// AnnualVehicleCost looks up the average yearly cost of owning a vehicle of
// the given category and engine.
func AnnualVehicleCost(category models.VehicleCategory, engine models.EngineType) (float64, bool) {
	cost, ok := caaAverageAnnualCost[VehicleKey{Category: category, Engine: engine}]
	return cost, ok
}

// VehicleCost returns the monthly cost of owning every vehicle. One vehicle
// without a known cost makes the whole figure unknown: the error is a
// *VehicleError naming it. No vehicles cost nothing.
func VehicleCost(vehicles []*models.Vehicle) (float64, error) {
	var annual float64
	for _, v := range vehicles {
		if v.Category == "" || v.Engine == "" {
			return 0, &VehicleError{Sequence: v.Sequence, Err: ErrIncompleteVehicle}
		}
		cost, ok := AnnualVehicleCost(v.Category, v.Engine)
		if !ok {
			return 0, &VehicleError{Sequence: v.Sequence, Err: ErrUnknownVehicleCombination}
		}
		annual += cost
	}
	return annual / 12, nil
}

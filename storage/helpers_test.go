package storage

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"relocation-estimator/models"
)

func f64(v float64) *float64 { return &v }

// square returns a counter-clockwise square around (x, y), as GeoJSON
// writers emit outer rings.
func square(x, y, half float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{x - half, y - half}, {x + half, y - half}, {x + half, y + half}, {x - half, y + half}, {x - half, y - half},
	}}
}

func evaluatedAddress() *models.Address {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(square(-73.5, 45.5, 0.01)))

	return &models.Address{
		Sequence: 1,
		ID:       "address-1",
		Name:     "Rosemont flat",
		Tenure:   models.Rental{RentMonthly: f64(1500)},
		MonthlyCost: &models.CalculationResults{
			HousingCostMonthly: f64(1500),
			CarCostMonthly:     f64(400.5),
			TotalCostMonthly:   f64(1900.5),
		},
		AccessibilityMap: fc,
		RoutingTimeDistances: map[string]*models.RoutingByModeDistanceAndTime{
			"work": {
				DestinationID: "work",
				Sequence:      1,
				ResultsByMode: models.ResultsByMode{
					Walking: &models.TimeAndDistance{Mode: models.Walking, TravelTimeSeconds: 2400, DistanceMeters: 3000},
					Transit: &models.TimeAndDistance{Mode: models.Transit, Sequence: 3, TravelTimeSeconds: 1110, DistanceMeters: 3500},
				},
			},
			"gym": nil,
		},
	}
}

func testDestinations() []*models.Destination {
	return []*models.Destination{
		{Sequence: 1, ID: "work", Name: "Work"},
		{Sequence: 2, ID: "gym", Name: "Gym"},
	}
}

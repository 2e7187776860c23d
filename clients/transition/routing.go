package transition

import (
	"context"
	"fmt"

	"relocation-estimator/models"
)

const routePath = "/api/v1/route"

type routeRequest struct {
	ScenarioID           string              `json:"scenarioId"`
	Origin               [2]float64          `json:"origin"`
	Destination          [2]float64          `json:"destination"`
	RoutingModes         []models.TravelMode `json:"routingModes"`
	DepartureTimeSeconds int                 `json:"departureTimeSecondsSinceMidnight"`
}

type modeResult struct {
	DistanceMeters    float64 `json:"distanceMeters"`
	TravelTimeSeconds float64 `json:"travelTimeSeconds"`
}

type routeResponse struct {
	Result map[models.TravelMode]*modeResult `json:"result"`
}

// Route computes the route by every configured mode from address to
// destination. A mode the server could not route stays nil.
func (c *Client) Route(
	ctx context.Context,
	address *models.Address,
	destination *models.Destination,
) (*models.RoutingByModeDistanceAndTime, error) {
	if address.Location == nil || destination.Location == nil {
		return nil, fmt.Errorf("route %s -> %s: %w", address.ID, destination.ID, ErrNoLocation)
	}

	req := routeRequest{
		ScenarioID:           c.scenario,
		Origin:               [2]float64(*address.Location),
		Destination:          [2]float64(*destination.Location),
		RoutingModes:         c.modes,
		DepartureTimeSeconds: c.departure,
	}

	var resp routeResponse
	if err := c.post(ctx, routePath, req, &resp); err != nil {
		return nil, fmt.Errorf("route %s -> %s: %w", address.ID, destination.ID, err)
	}

	result := &models.RoutingByModeDistanceAndTime{
		DestinationID: destination.ID,
		Sequence:      destination.Sequence,
	}
	for _, mode := range c.modes {
		r := resp.Result[mode]
		if r == nil {
			continue
		}
		result.ResultsByMode.Set(mode, &models.TimeAndDistance{
			Mode:              mode,
			Sequence:          mode.Sequence(),
			DistanceMeters:    r.DistanceMeters,
			TravelTimeSeconds: r.TravelTimeSeconds,
		})
	}
	return result, nil
}

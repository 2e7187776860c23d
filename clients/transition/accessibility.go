package transition

import (
	"context"
	"fmt"

	"github.com/paulmach/orb/geojson"

	"relocation-estimator/models"
)

const accessibilityPath = "/api/v1/accessibility"

type accessibilityRequest struct {
	ScenarioID                string     `json:"scenarioId"`
	Place                     [2]float64 `json:"place"`
	DepartureTimeSeconds      int        `json:"departureTimeSecondsSinceMidnight"`
	MaxTotalTravelTimeSeconds int        `json:"maxTotalTravelTimeSeconds"`
	WithGeojson               bool       `json:"withGeojson"`
}

type accessibilityResponse struct {
	Polygons *geojson.FeatureCollection `json:"polygons"`
}

// AccessibilityMap returns the polygons reachable from address within the
// configured travel time. It returns nil without calling the server when the
// address has no location, and nil when the server finds no area.
func (c *Client) AccessibilityMap(ctx context.Context, address *models.Address) (*geojson.FeatureCollection, error) {
	if address.Location == nil {
		return nil, nil
	}

	req := accessibilityRequest{
		ScenarioID:                c.scenario,
		Place:                     [2]float64(*address.Location),
		DepartureTimeSeconds:      c.departure,
		MaxTotalTravelTimeSeconds: int(c.maxTravelTime.Seconds()),
		WithGeojson:               true,
	}

	var resp accessibilityResponse
	if err := c.post(ctx, accessibilityPath, req, &resp); err != nil {
		return nil, fmt.Errorf("accessibility map for %s: %w", address.ID, err)
	}

	if resp.Polygons == nil || len(resp.Polygons.Features) == 0 {
		return nil, nil
	}
	return resp.Polygons, nil
}

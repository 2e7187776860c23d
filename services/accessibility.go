package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/paulmach/orb/geojson"

	"relocation-estimator/models"
	"relocation-estimator/utils"
)

// AccessibilityMapService computes the area reachable from an address. It
// returns nil when the address has no location or no area is found.
type AccessibilityMapService interface {
	AccessibilityMap(ctx context.Context, address *models.Address) (*geojson.FeatureCollection, error)
}

// RoutingService computes the route by each travel mode from an address to a
// destination.
type RoutingService interface {
	Route(ctx context.Context, address *models.Address, destination *models.Destination) (*models.RoutingByModeDistanceAndTime, error)
}

// AccessibilityAndRouting is the outcome of AccessibilityService.Compute.
// RoutingTimeDistances is nil when nothing was attempted; a destination whose
// routing failed maps to nil.
type AccessibilityAndRouting struct {
	AccessibilityMap     *geojson.FeatureCollection
	RoutingTimeDistances map[string]*models.RoutingByModeDistanceAndTime
}

// Attempted reports whether the external services were called.
func (r AccessibilityAndRouting) Attempted() bool {
	return r.RoutingTimeDistances != nil
}

// AccessibilityService fans out the accessibility and routing requests for
// an address.
type AccessibilityService struct {
	scenario      string
	accessibility AccessibilityMapService
	routing       RoutingService
	timeout       time.Duration
	logger        *utils.Logger
}

// NewAccessibilityService creates an AccessibilityService. An empty scenario
// disables every request. A zero timeout means no deadline beyond ctx.
func NewAccessibilityService(
	scenario string,
	accessibility AccessibilityMapService,
	routing RoutingService,
	timeout time.Duration,
	logger *utils.Logger,
) *AccessibilityService {
	return &AccessibilityService{
		scenario:      scenario,
		accessibility: accessibility,
		routing:       routing,
		timeout:       timeout,
		logger:        logger,
	}
}

// Compute requests the accessibility map of address and a route to every
// household destination, all at once. A failed route leaves a nil entry for
// its destination. A failed accessibility map fails the whole call.
func (s *AccessibilityService) Compute(
	ctx context.Context,
	address *models.Address,
	household *models.Household,
) (AccessibilityAndRouting, error) {
	if s.scenario == "" {
		s.logger.Error("[routing] No transit scenario configured, skipping accessibility and routing for address %s", address.ID)
		return AccessibilityAndRouting{}, nil
	}

	var cancel context.CancelFunc
	if s.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	accessibility := utils.Start(ctx, func(ctx context.Context) (*geojson.FeatureCollection, error) {
		return s.accessibility.AccessibilityMap(ctx, address)
	})

	destinations := household.DestinationList()
	routes := utils.StartIsolated(ctx, destinations,
		func(d *models.Destination) string { return d.ID },
		func(ctx context.Context, d *models.Destination) (*models.RoutingByModeDistanceAndTime, error) {
			return s.routing.Route(ctx, address, d)
		},
		func(d *models.Destination, err error) {
			if errors.Is(err, context.Canceled) {
				s.logger.Debug("[routing] Route %s -> %s cancelled", address.ID, d.ID)
				return
			}
			s.logger.Error("[routing] Error getting routing from address %s to destination %s: %v", address.ID, d.ID, err)
		},
	)

	accessibilityMap, err := accessibility.Await(ctx)
	if err != nil {
		cancel()
		routes.Wait()
		return AccessibilityAndRouting{}, fmt.Errorf("accessibility map for address %s: %w", address.ID, err)
	}

	routing := routes.Wait()
	s.logger.Debug("[routing] Address %s: accessibility map and %d routes computed", address.ID, len(routing))

	return AccessibilityAndRouting{
		AccessibilityMap:     accessibilityMap,
		RoutingTimeDistances: routing,
	}, nil
}

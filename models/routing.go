package models

// TravelMode is one of the routing alternatives computed per destination.
type TravelMode string

const (
	Walking TravelMode = "walking"
	Cycling TravelMode = "cycling"
	Driving TravelMode = "driving"
	Transit TravelMode = "transit"
)

// TravelModes lists every mode in display order.
var TravelModes = []TravelMode{Walking, Cycling, Driving, Transit}

// Sequence returns the display position of the mode, or -1 if unknown.
func (m TravelMode) Sequence() int {
	for i, mode := range TravelModes {
		if mode == m {
			return i
		}
	}
	return -1
}

// TimeAndDistance is the route found for a single mode.
type TimeAndDistance struct {
	Mode              TravelMode `json:"_uuid"`
	Sequence          int        `json:"_sequence"`
	DistanceMeters    float64    `json:"distanceMeters"`
	TravelTimeSeconds float64    `json:"travelTimeSeconds"`
}

// ResultsByMode holds one entry per travel mode; nil means no route.
type ResultsByMode struct {
	Walking *TimeAndDistance `json:"walking"`
	Cycling *TimeAndDistance `json:"cycling"`
	Driving *TimeAndDistance `json:"driving"`
	Transit *TimeAndDistance `json:"transit"`
}

// Get returns the result for mode.
func (r *ResultsByMode) Get(mode TravelMode) *TimeAndDistance {
	switch mode {
	case Walking:
		return r.Walking
	case Cycling:
		return r.Cycling
	case Driving:
		return r.Driving
	case Transit:
		return r.Transit
	}
	return nil
}

// Set stores td as the result for mode. Unknown modes are ignored.
func (r *ResultsByMode) Set(mode TravelMode, td *TimeAndDistance) {
	switch mode {
	case Walking:
		r.Walking = td
	case Cycling:
		r.Cycling = td
	case Driving:
		r.Driving = td
	case Transit:
		r.Transit = td
	}
}

// RoutingByModeDistanceAndTime is the routing outcome from an address to
// one destination.
type RoutingByModeDistanceAndTime struct {
	DestinationID string        `json:"_uuid"`
	Sequence      int           `json:"_sequence"`
	ResultsByMode ResultsByMode `json:"resultsByMode"`
}

// Fastest returns the mode with the shortest travel time, or nil when no
// mode has a route.
func (r *RoutingByModeDistanceAndTime) Fastest() *TimeAndDistance {
	if r == nil {
		return nil
	}
	var best *TimeAndDistance
	for _, mode := range TravelModes {
		td := r.ResultsByMode.Get(mode)
		if td == nil {
			continue
		}
		if best == nil || td.TravelTimeSeconds < best.TravelTimeSeconds {
			best = td
		}
	}
	return best
}

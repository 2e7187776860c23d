package models

import (
	"encoding/json"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// VehicleCategory is the body category of a household vehicle.
type VehicleCategory string

const (
	PassengerCar VehicleCategory = "passengerCar"
	LuxuryCar    VehicleCategory = "luxuryCar"
	Pickup       VehicleCategory = "pickup"
	Suv          VehicleCategory = "suv"
	OtherVehicle VehicleCategory = "other"
)

// EngineType is the powertrain of a household vehicle.
type EngineType string

const (
	Electric     EngineType = "electric"
	PluginHybrid EngineType = "pluginHybrid"
	Hybrid       EngineType = "hybrid"
	Gas          EngineType = "gas"
)

// Vehicle is a vehicle owned by the household. An empty Category or Engine
// means the answer is missing.
type Vehicle struct {
	Sequence int             `json:"_sequence"`
	ID       string          `json:"_uuid"`
	Nickname string          `json:"nickname,omitempty"`
	Category VehicleCategory `json:"category,omitempty"`
	Engine   EngineType      `json:"engineType,omitempty"`
}

// Destination is a place the household travels to regularly.
type Destination struct {
	Sequence        int
	ID              string
	Name            string
	Location        *orb.Point
	FrequencyWeekly string
}

type destinationJSON struct {
	Sequence        int              `json:"_sequence"`
	ID              string           `json:"_uuid"`
	Name            string           `json:"name,omitempty"`
	Geography       *geojson.Feature `json:"geography,omitempty"`
	FrequencyWeekly string           `json:"frequencyWeekly,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Destination) UnmarshalJSON(data []byte) error {
	var w destinationJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*d = Destination{
		Sequence:        w.Sequence,
		ID:              w.ID,
		Name:            w.Name,
		Location:        pointFromFeature(w.Geography),
		FrequencyWeekly: w.FrequencyWeekly,
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Destination) MarshalJSON() ([]byte, error) {
	return json.Marshal(destinationJSON{
		Sequence:        d.Sequence,
		ID:              d.ID,
		Name:            d.Name,
		Geography:       featureFromPoint(d.Location),
		FrequencyWeekly: d.FrequencyWeekly,
	})
}

// DisplayName returns the destination name, falling back to its id.
func (d *Destination) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}

// Household is the interview record the estimator reads from. Grouped
// objects are keyed by their id, as they are stored in the survey response.
type Household struct {
	Income       *float64                `json:"income,omitempty"`
	Addresses    map[string]*Address     `json:"addresses,omitempty"`
	Destinations map[string]*Destination `json:"destinations,omitempty"`
	Vehicles     map[string]*Vehicle     `json:"vehicles,omitempty"`
}

// AddressList returns the addresses ordered by sequence.
func (h *Household) AddressList() []*Address {
	if h == nil {
		return nil
	}
	return sortedBySequence(h.Addresses, func(a *Address) (int, string) { return a.Sequence, a.ID })
}

// DestinationList returns the destinations ordered by sequence.
func (h *Household) DestinationList() []*Destination {
	if h == nil {
		return nil
	}
	return sortedBySequence(h.Destinations, func(d *Destination) (int, string) { return d.Sequence, d.ID })
}

// VehicleList returns the vehicles ordered by sequence.
func (h *Household) VehicleList() []*Vehicle {
	if h == nil {
		return nil
	}
	return sortedBySequence(h.Vehicles, func(v *Vehicle) (int, string) { return v.Sequence, v.ID })
}

func sortedBySequence[T any](m map[string]*T, key func(*T) (int, string)) []*T {
	out := make([]*T, 0, len(m))
	for _, v := range m {
		if v != nil {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		si, idi := key(out[i])
		sj, idj := key(out[j])
		if si != sj {
			return si < sj
		}
		return idi < idj
	})
	return out
}

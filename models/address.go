package models

import (
	"encoding/json"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Ownership values as they appear in household records.
const (
	OwnershipRent = "rent"
	OwnershipBuy  = "buy"
)

// Tenure is the ownership variant of an address. It is one of Rental,
// Purchase or UnknownTenure; a nil Tenure means ownership was never answered.
type Tenure interface {
	Ownership() string
}

// Rental holds the fields that matter when the household would rent.
type Rental struct {
	RentMonthly       *float64
	UtilitiesIncluded *bool
	UtilitiesMonthly  *float64
}

// Ownership implements Tenure.
func (Rental) Ownership() string { return OwnershipRent }

// Purchase holds the fields that matter when the household would buy.
// InterestRate is a yearly percentage and AmortizationPeriodYears a numeric
// string, as collected.
type Purchase struct {
	Mortgage                *float64
	InterestRate            *float64
	AmortizationPeriodYears *string
	TaxesYearly             *float64
	UtilitiesMonthly        *float64
}

// Ownership implements Tenure.
func (Purchase) Ownership() string { return OwnershipBuy }

// UnknownTenure carries an ownership value that is neither rent nor buy.
type UnknownTenure struct {
	Value string
}

// Ownership implements Tenure.
func (u UnknownTenure) Ownership() string { return u.Value }

// Address is a candidate housing location of a household, together with the
// outputs computed for it.
type Address struct {
	Sequence int
	ID       string
	Name     string
	Location *orb.Point
	Tenure   Tenure

	MonthlyCost          *CalculationResults
	AccessibilityMap     *geojson.FeatureCollection
	RoutingTimeDistances map[string]*RoutingByModeDistanceAndTime

	// InvalidAnswers lists numeric answers of the tenure that carried no
	// number and were read as missing. Not serialised.
	InvalidAnswers []InvalidAnswer
}

// InvalidAnswer is a numeric survey answer that could not be read.
type InvalidAnswer struct {
	Field string
	Raw   string
}

// addressJSON is the flat wire shape of an address.
type addressJSON struct {
	Sequence                  int                                      `json:"_sequence"`
	ID                        string                                   `json:"_uuid"`
	Name                      string                                   `json:"name,omitempty"`
	Geography                 *geojson.Feature                         `json:"geography,omitempty"`
	Ownership                 string                                   `json:"ownership,omitempty"`
	RentMonthly               *Amount                                  `json:"rentMonthly,omitempty"`
	AreUtilitiesIncluded      *bool                                    `json:"areUtilitiesIncluded,omitempty"`
	Mortgage                  *Amount                                  `json:"mortgage,omitempty"`
	InterestRate              *Amount                                  `json:"interestRate,omitempty"`
	AmortizationPeriodInYears *Term                                    `json:"amortizationPeriodInYears,omitempty"`
	TaxesYearly               *Amount                                  `json:"taxesYearly,omitempty"`
	UtilitiesMonthly          *Amount                                  `json:"utilitiesMonthly,omitempty"`
	MonthlyCost               *CalculationResults                      `json:"monthlyCost,omitempty"`
	AccessibilityMap          *geojson.FeatureCollection               `json:"accessibilityMap,omitempty"`
	RoutingTimeDistances      map[string]*RoutingByModeDistanceAndTime `json:"routingTimeDistances,omitempty"`
}

// UnmarshalJSON decodes the flat survey shape into the Tenure variant.
func (a *Address) UnmarshalJSON(data []byte) error {
	var w addressJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*a = Address{
		Sequence:             w.Sequence,
		ID:                   w.ID,
		Name:                 w.Name,
		Location:             pointFromFeature(w.Geography),
		MonthlyCost:          w.MonthlyCost,
		AccessibilityMap:     w.AccessibilityMap,
		RoutingTimeDistances: w.RoutingTimeDistances,
	}

	switch w.Ownership {
	case "":
		a.Tenure = nil
	case OwnershipRent:
		a.Tenure = Rental{
			RentMonthly:       a.amount("rentMonthly", w.RentMonthly),
			UtilitiesIncluded: w.AreUtilitiesIncluded,
			UtilitiesMonthly:  a.amount("utilitiesMonthly", w.UtilitiesMonthly),
		}
	case OwnershipBuy:
		a.Tenure = Purchase{
			Mortgage:                a.amount("mortgage", w.Mortgage),
			InterestRate:            a.amount("interestRate", w.InterestRate),
			AmortizationPeriodYears: w.AmortizationPeriodInYears.Value(),
			TaxesYearly:             a.amount("taxesYearly", w.TaxesYearly),
			UtilitiesMonthly:        a.amount("utilitiesMonthly", w.UtilitiesMonthly),
		}
	default:
		a.Tenure = UnknownTenure{Value: w.Ownership}
	}
	return nil
}

// amount returns v as an optional float, recording it when it was given but
// is not a number.
func (a *Address) amount(field string, v *Amount) *float64 {
	if v != nil && !v.Valid {
		a.InvalidAnswers = append(a.InvalidAnswers, InvalidAnswer{Field: field, Raw: v.Raw})
	}
	return v.Float()
}

// MarshalJSON flattens the Tenure variant back into the survey shape.
func (a Address) MarshalJSON() ([]byte, error) {
	w := addressJSON{
		Sequence:             a.Sequence,
		ID:                   a.ID,
		Name:                 a.Name,
		Geography:            featureFromPoint(a.Location),
		MonthlyCost:          a.MonthlyCost,
		AccessibilityMap:     a.AccessibilityMap,
		RoutingTimeDistances: a.RoutingTimeDistances,
	}

	switch t := a.Tenure.(type) {
	case nil:
	case Rental:
		w.Ownership = OwnershipRent
		w.RentMonthly = amountPtr(t.RentMonthly)
		w.AreUtilitiesIncluded = t.UtilitiesIncluded
		w.UtilitiesMonthly = amountPtr(t.UtilitiesMonthly)
	case Purchase:
		w.Ownership = OwnershipBuy
		w.Mortgage = amountPtr(t.Mortgage)
		w.InterestRate = amountPtr(t.InterestRate)
		w.TaxesYearly = amountPtr(t.TaxesYearly)
		w.UtilitiesMonthly = amountPtr(t.UtilitiesMonthly)
		if t.AmortizationPeriodYears != nil {
			term := Term(*t.AmortizationPeriodYears)
			w.AmortizationPeriodInYears = &term
		}
	case UnknownTenure:
		w.Ownership = t.Value
	}

	return json.Marshal(w)
}

// OwnershipLabel returns the raw ownership value, or "unset".
func (a *Address) OwnershipLabel() string {
	if a.Tenure == nil {
		return "unset"
	}
	return a.Tenure.Ownership()
}

// DisplayName returns the address name, falling back to its id.
func (a *Address) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}

package models

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const householdBody = `{
  "income": 85000,
  "addresses": {
    "a1": {
      "_sequence": 1, "_uuid": "a1", "name": "Plateau flat",
      "geography": {"type": "Feature", "geometry": {"type": "Point", "coordinates": [-73.58, 45.52]}, "properties": {}},
      "ownership": "rent", "rentMonthly": "$1,450", "areUtilitiesIncluded": false, "utilitiesMonthly": 120
    },
    "a2": {
      "_sequence": 2, "_uuid": "a2",
      "ownership": "buy", "mortgage": 350000, "interestRate": "4.5", "amortizationPeriodInYears": 25,
      "taxesYearly": "3,600"
    },
    "a3": {"_sequence": 3, "_uuid": "a3", "ownership": "coop"},
    "a4": {"_sequence": 4, "_uuid": "a4"}
  },
  "destinations": {
    "d1": {"_sequence": 1, "_uuid": "d1", "name": "Work",
      "geography": {"type": "Feature", "geometry": {"type": "Point", "coordinates": [-73.56, 45.50]}, "properties": {}}}
  },
  "vehicles": {
    "v1": {"_sequence": 1, "_uuid": "v1", "category": "suv", "engineType": "hybrid"}
  }
}`

func TestHouseholdDecoding(t *testing.T) {
	var h Household
	require.NoError(t, json.Unmarshal([]byte(householdBody), &h))

	assert.Equal(t, 85000.0, *h.Income)

	rent, ok := h.Addresses["a1"].Tenure.(Rental)
	require.True(t, ok, "a1 should be a rental, got %T", h.Addresses["a1"].Tenure)
	assert.Equal(t, 1450.0, *rent.RentMonthly)
	assert.False(t, *rent.UtilitiesIncluded)
	assert.Equal(t, 120.0, *rent.UtilitiesMonthly)
	assert.Equal(t, &orb.Point{-73.58, 45.52}, h.Addresses["a1"].Location)

	buy, ok := h.Addresses["a2"].Tenure.(Purchase)
	require.True(t, ok, "a2 should be a purchase, got %T", h.Addresses["a2"].Tenure)
	assert.Equal(t, 350000.0, *buy.Mortgage)
	assert.Equal(t, 4.5, *buy.InterestRate)
	assert.Equal(t, "25", *buy.AmortizationPeriodYears)
	assert.Equal(t, 3600.0, *buy.TaxesYearly)
	assert.Nil(t, buy.UtilitiesMonthly)
	assert.Nil(t, h.Addresses["a2"].Location)

	assert.Equal(t, UnknownTenure{Value: "coop"}, h.Addresses["a3"].Tenure)
	assert.Nil(t, h.Addresses["a4"].Tenure)
	assert.Equal(t, "unset", h.Addresses["a4"].OwnershipLabel())

	assert.Equal(t, &orb.Point{-73.56, 45.50}, h.Destinations["d1"].Location)
	assert.Equal(t, Suv, h.Vehicles["v1"].Category)
	assert.Equal(t, Hybrid, h.Vehicles["v1"].Engine)
}

func TestAddressEncodingKeepsFlatShape(t *testing.T) {
	a := Address{
		Sequence: 1,
		ID:       "a1",
		Tenure:   Purchase{Mortgage: ptr(200000.0), AmortizationPeriodYears: ptr("20")},
		MonthlyCost: &CalculationResults{
			HousingCostMonthly: ptr(1200.0),
		},
	}

	data, err := json.Marshal(a)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "buy", raw["ownership"])
	assert.Equal(t, 200000.0, raw["mortgage"])
	assert.Equal(t, "20", raw["amortizationPeriodInYears"])
	assert.NotContains(t, raw, "rentMonthly")
	assert.NotContains(t, raw, "geography")

	cost, ok := raw["monthlyCost"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1200.0, cost["housingCostMonthly"])
	assert.Contains(t, cost, "totalCostMonthly")
	assert.Nil(t, cost["totalCostMonthly"])
}

func TestHouseholdDecodingKeepsInvalidAmountsLocal(t *testing.T) {
	body := `{"addresses": {
	  "a1": {"_sequence": 1, "_uuid": "a1", "ownership": "rent", "rentMonthly": 1200},
	  "a2": {"_sequence": 2, "_uuid": "a2", "ownership": "rent", "rentMonthly": "n/a"},
	  "a3": {"_sequence": 3, "_uuid": "a3", "ownership": "buy", "mortgage": true,
	         "interestRate": 5, "amortizationPeriodInYears": true, "taxesYearly": {"value": 1}}
	}}`

	var h Household
	require.NoError(t, json.Unmarshal([]byte(body), &h))

	assert.Equal(t, 1200.0, *h.Addresses["a1"].Tenure.(Rental).RentMonthly)
	assert.Empty(t, h.Addresses["a1"].InvalidAnswers)

	rent := h.Addresses["a2"].Tenure.(Rental)
	assert.Nil(t, rent.RentMonthly)
	assert.Equal(t, []InvalidAnswer{{Field: "rentMonthly", Raw: "n/a"}}, h.Addresses["a2"].InvalidAnswers)

	buy := h.Addresses["a3"].Tenure.(Purchase)
	assert.Nil(t, buy.Mortgage)
	assert.Nil(t, buy.TaxesYearly)
	assert.Equal(t, 5.0, *buy.InterestRate)
	assert.Equal(t, "true", *buy.AmortizationPeriodYears)
	assert.Equal(t, []InvalidAnswer{
		{Field: "mortgage", Raw: "true"},
		{Field: "taxesYearly", Raw: `{"value": 1}`},
	}, h.Addresses["a3"].InvalidAnswers)
}

func TestInvalidAmountIsNotWrittenBack(t *testing.T) {
	var a Address
	require.NoError(t, json.Unmarshal([]byte(`{"_uuid": "a2", "ownership": "rent", "rentMonthly": "n/a"}`), &a))

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "rentMonthly")
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"1200", 1200, true},
		{"$1,200.50", 1200.50, true},
		{" 850 $/month ", 850, true},
		{"-15.5", -15.5, true},
		{"about 2,000 to 2,500", 2000, true},
		{"", 0, false},
		{"unknown", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseAmount(tt.raw)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseAmount(%q) = (%v, %v); want (%v, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func ptr[T any](v T) *T { return &v }

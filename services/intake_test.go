package services

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relocation-estimator/models"
)

func TestNormaliseKeysRecordsByID(t *testing.T) {
	logger, _ := newTestLogger()
	n := NewNormaliser(logger)

	h := n.Normalise(&models.Household{
		Addresses: map[string]*models.Address{
			"address-1": {Sequence: 1, Name: "  12   Main  St "},
		},
		Vehicles: map[string]*models.Vehicle{
			"": {Sequence: 1, Category: " suv ", Engine: "gas"},
		},
	})

	require.Contains(t, h.Addresses, "address-1")
	assert.Equal(t, "address-1", h.Addresses["address-1"].ID)
	assert.Equal(t, "12 Main St", h.Addresses["address-1"].Name)

	require.Len(t, h.Vehicles, 1)
	for id, v := range h.Vehicles {
		_, err := uuid.Parse(id)
		assert.NoError(t, err, "generated id should be a uuid")
		assert.Equal(t, id, v.ID)
		assert.Equal(t, models.Suv, v.Category)
	}
}

func TestNormaliseDropsDuplicateIDs(t *testing.T) {
	logger, logs := newTestLogger()
	n := NewNormaliser(logger)

	h := n.Normalise(&models.Household{
		Destinations: map[string]*models.Destination{
			"a": {Sequence: 1, ID: "work", Name: "Work"},
			"b": {Sequence: 2, ID: "work", Name: "Office"},
			"c": nil,
		},
	})

	require.Len(t, h.Destinations, 1)
	assert.Equal(t, "Work", h.Destinations["work"].Name, "the lowest sequence wins")
	assert.Contains(t, logs.String(), "Dropping duplicate destination work")
}

func TestNormaliseNilHousehold(t *testing.T) {
	logger, _ := newTestLogger()
	h := NewNormaliser(logger).Normalise(nil)
	require.NotNil(t, h)
	assert.Empty(t, h.AddressList())
}

func TestNormaliseText(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"  Work  ", "Work"},
		{"Daycare\tcentre\n", "Daycare centre"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := normaliseText(tt.raw); got != tt.want {
			t.Errorf("normaliseText(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestInvalidAmountOnlyAffectsItsAddress(t *testing.T) {
	body := `{"addresses": {
	  "a1": {"_sequence": 1, "_uuid": "a1", "ownership": "rent", "rentMonthly": "$1,200"},
	  "a2": {"_sequence": 2, "_uuid": "a2", "ownership": "rent", "rentMonthly": "n/a"}
	}}`
	var raw models.Household
	require.NoError(t, json.Unmarshal([]byte(body), &raw))

	logger, logs := newTestLogger()
	h := NewNormaliser(logger).Normalise(&raw)
	assert.Contains(t, logs.String(), `[intake] Address a2: rentMonthly "n/a" is not a number, treated as missing`)

	costs := NewCostService(logger)
	first := costs.ComputeCosts(h.Addresses["a1"], h)
	require.NotNil(t, first.TotalCostMonthly)
	assert.Equal(t, 1200.0, *first.TotalCostMonthly)

	second := costs.ComputeCosts(h.Addresses["a2"], h)
	assert.Nil(t, second.HousingCostMonthly)
	assert.Nil(t, second.TotalCostMonthly)

	_, err := NewHousingCalculator().HousingCost(h.Addresses["a2"])
	assert.True(t, errors.Is(err, ErrIncompleteRent))
}

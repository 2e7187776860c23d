package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relocation-estimator/models"
)

type paymentCall struct {
	principal  float64
	annualRate float64
	months     int
}

// recordingPayment returns a PaymentFunc that records its calls and answers
// with a fixed payment.
func recordingPayment(payment float64) (PaymentFunc, *[]paymentCall) {
	calls := &[]paymentCall{}
	return func(principal, annualRate float64, months int) float64 {
		*calls = append(*calls, paymentCall{principal, annualRate, months})
		return payment
	}, calls
}

func buyAddress(p models.Purchase) *models.Address {
	return &models.Address{Sequence: 1, ID: "address-1", Tenure: p}
}

func TestHousingCostRent(t *testing.T) {
	calc := NewHousingCalculator()

	tests := []struct {
		name    string
		address *models.Address
		want    float64
		wantErr error
	}{
		{"utilities included", rentAddress(f64(1200), boolPtr(true), nil), 1200, nil},
		{"utilities separate", rentAddress(f64(1200), boolPtr(false), f64(150)), 1350, nil},
		{"utilities unanswered", rentAddress(f64(1200), nil, f64(150)), 1200, nil},
		{"missing rent", rentAddress(nil, boolPtr(true), nil), 0, ErrIncompleteRent},
		{"missing separate utilities", rentAddress(f64(1200), boolPtr(false), nil), 0, ErrIncompleteRent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.HousingCost(tt.address)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHousingCostBuy(t *testing.T) {
	payment, calls := recordingPayment(1000)
	calc := NewHousingCalculatorWithPayment(payment)

	got, err := calc.HousingCost(buyAddress(models.Purchase{
		Mortgage:                f64(300000),
		InterestRate:            f64(5),
		AmortizationPeriodYears: strPtr("25"),
		TaxesYearly:             f64(3600),
		UtilitiesMonthly:        f64(200),
	}))

	require.NoError(t, err)
	assert.Equal(t, 1500.0, got)
	require.Len(t, *calls, 1)
	assert.Equal(t, paymentCall{300000, 0.05, 300}, (*calls)[0])
}

func TestHousingCostBuyWithoutTaxesOrUtilities(t *testing.T) {
	payment, _ := recordingPayment(1000)
	calc := NewHousingCalculatorWithPayment(payment)

	got, err := calc.HousingCost(buyAddress(models.Purchase{
		Mortgage:                f64(300000),
		InterestRate:            f64(5),
		AmortizationPeriodYears: strPtr("25"),
	}))

	require.NoError(t, err)
	assert.Equal(t, 1000.0, got)
}

func TestHousingCostBuyZeroPrincipal(t *testing.T) {
	payment, calls := recordingPayment(1000)
	calc := NewHousingCalculatorWithPayment(payment)

	got, err := calc.HousingCost(buyAddress(models.Purchase{
		Mortgage:                f64(0),
		InterestRate:            f64(5),
		AmortizationPeriodYears: strPtr("25"),
		TaxesYearly:             f64(2400),
		UtilitiesMonthly:        f64(150),
	}))

	require.NoError(t, err)
	assert.Equal(t, 350.0, got)
	assert.Empty(t, *calls)
}

func TestHousingCostBuyZeroRate(t *testing.T) {
	payment, calls := recordingPayment(1000)
	calc := NewHousingCalculatorWithPayment(payment)

	got, err := calc.HousingCost(buyAddress(models.Purchase{
		Mortgage:                f64(300000),
		InterestRate:            f64(0),
		AmortizationPeriodYears: strPtr("25"),
	}))

	require.NoError(t, err)
	assert.Equal(t, 1000.0, got)
	require.Len(t, *calls, 1)
	assert.Equal(t, paymentCall{300000, 0, 300}, (*calls)[0])
}

func TestHousingCostBuyZeroRateRealFormula(t *testing.T) {
	got, err := NewHousingCalculator().HousingCost(buyAddress(models.Purchase{
		Mortgage:                f64(300000),
		InterestRate:            f64(0),
		AmortizationPeriodYears: strPtr("25"),
	}))

	require.NoError(t, err)
	assert.Equal(t, 1000.0, got)
}

func TestHousingCostBuyIncomplete(t *testing.T) {
	complete := func() models.Purchase {
		return models.Purchase{
			Mortgage:                f64(300000),
			InterestRate:            f64(5),
			AmortizationPeriodYears: strPtr("25"),
		}
	}

	tests := []struct {
		name    string
		mutate  func(*models.Purchase)
		wantErr error
	}{
		{"missing principal", func(p *models.Purchase) { p.Mortgage = nil }, ErrIncompleteMortgage},
		{"missing rate", func(p *models.Purchase) { p.InterestRate = nil }, ErrIncompleteMortgage},
		{"missing term", func(p *models.Purchase) { p.AmortizationPeriodYears = nil }, ErrIncompleteMortgage},
		{"non numeric term", func(p *models.Purchase) { p.AmortizationPeriodYears = strPtr("twenty") }, ErrInvalidAmortization},
		{"zero term", func(p *models.Purchase) { p.AmortizationPeriodYears = strPtr("0") }, ErrInvalidAmortization},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment, calls := recordingPayment(1000)
			calc := NewHousingCalculatorWithPayment(payment)

			p := complete()
			tt.mutate(&p)
			_, err := calc.HousingCost(buyAddress(p))

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, *calls)
		})
	}
}

func TestHousingCostUnknownOwnership(t *testing.T) {
	calc := NewHousingCalculator()

	_, err := calc.HousingCost(&models.Address{ID: "a", Tenure: models.UnknownTenure{Value: "lease"}})
	assert.ErrorIs(t, err, ErrUnknownOwnership)

	_, err = calc.HousingCost(&models.Address{ID: "b"})
	assert.ErrorIs(t, err, ErrUnknownOwnership)
}

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{"25", 25, true},
		{" 30", 30, true},
		{"25 years", 25, true},
		{"22.5", 22, true},
		{"-3", -3, true},
		{"", 0, false},
		{"years", 0, false},
		{"+", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseLeadingInt(tt.raw)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parseLeadingInt(%q) = (%d, %v); want (%d, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

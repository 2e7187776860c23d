package services

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"relocation-estimator/models"
)

// PaymentFunc computes a monthly mortgage payment from a principal, a yearly
// rate as a fraction and a number of monthly payments.
type PaymentFunc func(principal, annualRate float64, months int) float64

// HousingCalculator computes the monthly cost of living at an address.
type HousingCalculator struct {
	payment PaymentFunc
}

// NewHousingCalculator returns a calculator using MonthlyPayment for mortgages.
func NewHousingCalculator() *HousingCalculator {
	return &HousingCalculator{payment: MonthlyPayment}
}

// NewHousingCalculatorWithPayment returns a calculator using payment for
// mortgages.
func NewHousingCalculatorWithPayment(payment PaymentFunc) *HousingCalculator {
	return &HousingCalculator{payment: payment}
}

// HousingCost returns the monthly housing cost of address. Missing answers
// yield one of ErrIncompleteRent, ErrIncompleteMortgage,
// ErrInvalidAmortization or ErrUnknownOwnership.
func (h *HousingCalculator) HousingCost(address *models.Address) (float64, error) {
	switch t := address.Tenure.(type) {
	case models.Rental:
		return rentalCost(t)
	case models.Purchase:
		return h.purchaseCost(t)
	case models.UnknownTenure:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOwnership, t.Value)
	case nil:
		return 0, fmt.Errorf("%w: unset", ErrUnknownOwnership)
	default:
		return 0, fmt.Errorf("%w: %T", ErrUnknownOwnership, t)
	}
}

func rentalCost(r models.Rental) (float64, error) {
	separateUtilities := r.UtilitiesIncluded != nil && !*r.UtilitiesIncluded
	if r.RentMonthly == nil || (separateUtilities && r.UtilitiesMonthly == nil) {
		return 0, ErrIncompleteRent
	}
	if separateUtilities {
		return *r.RentMonthly + *r.UtilitiesMonthly, nil
	}
	return *r.RentMonthly, nil
}

func (h *HousingCalculator) purchaseCost(p models.Purchase) (float64, error) {
	if p.Mortgage == nil || p.InterestRate == nil || p.AmortizationPeriodYears == nil {
		return 0, ErrIncompleteMortgage
	}
	years, ok := parseLeadingInt(*p.AmortizationPeriodYears)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmortization, *p.AmortizationPeriodYears)
	}

	var mortgage float64
	if *p.Mortgage != 0 {
		if years <= 0 {
			return 0, fmt.Errorf("%w: %d years", ErrInvalidAmortization, years)
		}
		mortgage = h.payment(*p.Mortgage, *p.InterestRate/100, years*12)
	}

	var taxes, utilities float64
	if p.TaxesYearly != nil {
		taxes = *p.TaxesYearly / 12
	}
	if p.UtilitiesMonthly != nil {
		utilities = *p.UtilitiesMonthly
	}
	return mortgage + taxes + utilities, nil
}

// parseLeadingInt reads a base-10 integer at the start of s, ignoring leading
// whitespace and anything after the digits ("25 years" is 25).
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

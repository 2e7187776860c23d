package services

import "math"

// AmortizedPayment returns the fixed payment that repays principal over n
// periods at periodRate per period. A zero rate spreads the principal evenly.
// n must be positive.
func AmortizedPayment(principal, periodRate float64, n int) float64 {
	if periodRate == 0 {
		return principal / float64(n)
	}
	growth := math.Pow(1+periodRate, float64(n))
	return principal * periodRate * growth / (growth - 1)
}

// MonthlyPayment returns the monthly payment of a fixed-rate mortgage with the
// given yearly rate (as a fraction, 0.05 for 5%) compounded monthly.
func MonthlyPayment(principal, annualRate float64, months int) float64 {
	return AmortizedPayment(principal, annualRate/12, months)
}

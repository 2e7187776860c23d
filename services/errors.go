package services

import (
	"errors"
	"fmt"
)

var (
	// ErrIncompleteRent means the rent, or the utilities billed separately, is missing.
	ErrIncompleteRent = errors.New("incomplete rent or utilities information")
	// ErrIncompleteMortgage means principal, interest rate or amortization period is missing.
	ErrIncompleteMortgage = errors.New("incomplete mortgage information")
	// ErrInvalidAmortization means the amortization period is not a number of years.
	ErrInvalidAmortization = errors.New("invalid amortization period")
	// ErrUnknownOwnership means the address is neither rented nor bought.
	ErrUnknownOwnership = errors.New("unknown ownership type")

	// ErrIncompleteVehicle means a vehicle has no category or no engine type.
	ErrIncompleteVehicle = errors.New("incomplete vehicle information")
	// ErrUnknownVehicleCombination means no average cost exists for the category and engine.
	ErrUnknownVehicleCombination = errors.New("no average cost for vehicle category and engine")
)

// VehicleError reports the vehicle that made the household car cost
// impossible to compute.
type VehicleError struct {
	Sequence int
	Err      error
}

func (e *VehicleError) Error() string {
	return fmt.Sprintf("vehicle %d: %v", e.Sequence, e.Err)
}

func (e *VehicleError) Unwrap() error { return e.Err }

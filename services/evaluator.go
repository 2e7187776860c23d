package services

import (
	"context"
	"errors"
	"sync"

	"relocation-estimator/models"
	"relocation-estimator/utils"
)

// Evaluator computes costs, accessibility and routing for the addresses of a
// household and stores the outputs on each address.
type Evaluator struct {
	costs          *CostService
	accessibility  *AccessibilityService
	maxConcurrency int
	rateLimitMs    int
	logger         *utils.Logger
}

// NewEvaluator creates an Evaluator that processes up to maxConcurrency
// addresses at a time, starting them at least rateLimitMs apart (0 for no
// spacing).
func NewEvaluator(
	costs *CostService,
	accessibility *AccessibilityService,
	maxConcurrency, rateLimitMs int,
	logger *utils.Logger,
) *Evaluator {
	return &Evaluator{
		costs:          costs,
		accessibility:  accessibility,
		maxConcurrency: maxConcurrency,
		rateLimitMs:    rateLimitMs,
		logger:         logger,
	}
}

// Evaluate fills MonthlyCost, AccessibilityMap and RoutingTimeDistances of
// address. Costs are stored even when the accessibility request fails.
func (e *Evaluator) Evaluate(ctx context.Context, address *models.Address, household *models.Household) error {
	costs := e.costs.ComputeCosts(address, household)
	address.MonthlyCost = &costs

	result, err := e.accessibility.Compute(ctx, address, household)
	if err != nil {
		address.AccessibilityMap = nil
		address.RoutingTimeDistances = nil
		return err
	}
	address.AccessibilityMap = result.AccessibilityMap
	address.RoutingTimeDistances = result.RoutingTimeDistances
	return nil
}

// EvaluateAll evaluates every address of household. The returned error joins
// the failures of individual addresses; the others are still evaluated.
func (e *Evaluator) EvaluateAll(ctx context.Context, household *models.Household) error {
	addresses := household.AddressList()
	e.logger.Info("[evaluator] Evaluating %d addresses against %d destinations (concurrency %d)",
		len(addresses), len(household.DestinationList()), e.maxConcurrency)

	pool := utils.NewWorkerPool(e.maxConcurrency, e.rateLimitMs)

	var mu sync.Mutex
	var errs []error
	for _, address := range addresses {
		address := address
		pool.Submit(func() {
			if err := e.Evaluate(ctx, address, household); err != nil {
				e.logger.Error("[evaluator] Address %s: %v", address.ID, err)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				return
			}
			e.logger.Debug("[evaluator] Address %s evaluated", address.ID)
		})
	}
	pool.Wait()

	e.logger.Info("[evaluator] Done: %d evaluated, %d failed", len(addresses)-len(errs), len(errs))
	return errors.Join(errs...)
}

package services

import (
	"bytes"
	"sync"

	"relocation-estimator/models"
	"relocation-estimator/utils"
)

func f64(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }

// logBuffer is a goroutine-safe buffer for capturing log output.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger() (*utils.Logger, *logBuffer) {
	buf := &logBuffer{}
	return utils.NewLoggerTo(buf), buf
}

func rentAddress(rent *float64, included *bool, utilities *float64) *models.Address {
	return &models.Address{
		Sequence: 1,
		ID:       "address-1",
		Tenure: models.Rental{
			RentMonthly:       rent,
			UtilitiesIncluded: included,
			UtilitiesMonthly:  utilities,
		},
	}
}

func householdWithVehicles(vehicles ...*models.Vehicle) *models.Household {
	h := &models.Household{Income: f64(60000), Vehicles: map[string]*models.Vehicle{}}
	for _, v := range vehicles {
		h.Vehicles[v.ID] = v
	}
	return h
}

package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"relocation-estimator/models"
)

// CSVWriter writes one row per evaluated address to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu           sync.Mutex
	file         *os.File
	writer       *csv.Writer
	destinations []*models.Destination
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
// destinations, in display order, name the commute column entries.
func NewCSVWriter(path string, destinations []*models.Destination) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write([]string{
		"sequence", "id", "name", "ownership",
		"housing_monthly", "car_monthly", "total_monthly", "housing_income_share",
		"accessibility_polygons", "fastest_commutes",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w, destinations: destinations}, nil
}

// Write appends one row per address.
func (c *CSVWriter) Write(addresses []*models.Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, a := range addresses {
		r := flatten(a)
		record := []string{
			strconv.Itoa(a.Sequence),
			a.ID,
			a.DisplayName(),
			a.OwnershipLabel(),
			formatAmount(r.housing),
			formatAmount(r.car),
			formatAmount(r.total),
			formatAmount(r.incomeShare),
			strconv.Itoa(r.polygons),
			c.commutes(a),
		}
		if err := c.writer.Write(record); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// commutes renders the fastest mode per destination, e.g.
// "Work: transit 18.5 min; Gym: unavailable".
func (c *CSVWriter) commutes(a *models.Address) string {
	if a.RoutingTimeDistances == nil {
		return ""
	}

	parts := make([]string, 0, len(c.destinations))
	for _, d := range c.destinations {
		fastest := a.RoutingTimeDistances[d.ID].Fastest()
		if fastest == nil {
			parts = append(parts, d.DisplayName()+": unavailable")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s %.1f min", d.DisplayName(), fastest.Mode, fastest.TravelTimeSeconds/60))
	}
	return strings.Join(parts, "; ")
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

func formatAmount(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', 2, 64)
}

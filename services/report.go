package services

import (
	"fmt"
	"io"
	"strings"

	"relocation-estimator/models"
	"relocation-estimator/utils"
)

// ReportService summarises evaluated addresses so they can be compared.
type ReportService struct {
	logger *utils.Logger
}

func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger}
}

// Generate builds a ComparisonReport over the evaluated addresses. Only
// addresses with a total monthly cost enter the cost statistics.
func (s *ReportService) Generate(household *models.Household) *models.ComparisonReport {
	report := &models.ComparisonReport{}

	addresses := household.AddressList()
	if len(addresses) == 0 {
		return report
	}
	report.TotalAddresses = len(addresses)
	destinations := household.DestinationList()

	var sum float64
	for _, a := range addresses {
		if a.RoutingTimeDistances != nil {
			report.RoutedAddresses++
			for _, d := range destinations {
				report.Commutes = append(report.Commutes, models.Commute{
					AddressName:     a.DisplayName(),
					DestinationName: d.DisplayName(),
					Fastest:         a.RoutingTimeDistances[d.ID].Fastest(),
				})
			}
		}

		if a.MonthlyCost == nil || a.MonthlyCost.TotalCostMonthly == nil {
			continue
		}
		total := *a.MonthlyCost.TotalCostMonthly
		report.CostedAddresses++
		sum += total
		if report.Cheapest == nil || total < report.MinTotal {
			report.MinTotal = total
			report.Cheapest = a
		}
		if report.MostExpensive == nil || total > report.MaxTotal {
			report.MaxTotal = total
			report.MostExpensive = a
		}
	}

	if report.CostedAddresses > 0 {
		report.AverageTotal = round2(sum / float64(report.CostedAddresses))
		report.MinTotal = round2(report.MinTotal)
		report.MaxTotal = round2(report.MaxTotal)
	}

	s.logger.Debug("[report] %d/%d addresses costed, %d routed",
		report.CostedAddresses, report.TotalAddresses, report.RoutedAddresses)
	return report
}

// Print writes a human-readable rendition of r to w.
func (s *ReportService) Print(w io.Writer, r *models.ComparisonReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n%s\n", sep)
	fmt.Fprintf(w, "  RELOCATION COMPARISON\n")
	fmt.Fprintf(w, "%s\n\n", sep)

	fmt.Fprintf(w, "  Overview\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Candidate addresses : %d\n", r.TotalAddresses)
	fmt.Fprintf(w, "  With full cost      : %d\n", r.CostedAddresses)
	fmt.Fprintf(w, "  With routing        : %d\n", r.RoutedAddresses)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Total Monthly Cost\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if r.CostedAddresses > 0 {
		fmt.Fprintf(w, "  Average : $%.2f\n", r.AverageTotal)
		fmt.Fprintf(w, "  Minimum : $%.2f (%s)\n", r.MinTotal, truncate(r.Cheapest.DisplayName(), 40))
		fmt.Fprintf(w, "  Maximum : $%.2f (%s)\n", r.MaxTotal, truncate(r.MostExpensive.DisplayName(), 40))
	} else {
		fmt.Fprintf(w, "  No complete cost available\n")
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Fastest Commute per Destination\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.Commutes) == 0 {
		fmt.Fprintf(w, "  No routing results\n")
	}
	for _, c := range r.Commutes {
		label := truncate(c.AddressName, 20) + " → " + truncate(c.DestinationName, 16)
		if c.Fastest == nil {
			fmt.Fprintf(w, "  %-40s unavailable\n", label)
			continue
		}
		fmt.Fprintf(w, "  %-40s %-8s %5.1f min %6.1f km\n", label, c.Fastest.Mode,
			c.Fastest.TravelTimeSeconds/60, c.Fastest.DistanceMeters/1000)
	}

	fmt.Fprintf(w, "\n%s\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

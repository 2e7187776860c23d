package services

import (
	"sort"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"relocation-estimator/models"
	"relocation-estimator/utils"
)

// Normaliser tidies a household read from an interview export before it is
// evaluated.
type Normaliser struct {
	logger *utils.Logger
}

// NewNormaliser creates a Normaliser with the given logger.
func NewNormaliser(logger *utils.Logger) *Normaliser {
	return &Normaliser{logger: logger}
}

// Normalise cleans h in place and returns it. Every grouped record ends up
// keyed by its own id: a missing id is taken from the map key, or generated.
// Records repeating an id already seen are dropped. Names are trimmed and
// their whitespace collapsed. Numeric answers read as missing are logged.
func (n *Normaliser) Normalise(h *models.Household) *models.Household {
	if h == nil {
		return &models.Household{}
	}

	h.Addresses = normaliseGroup(n, "address", h.Addresses,
		func(a *models.Address) *string { return &a.ID },
		func(a *models.Address) int { return a.Sequence })
	for _, a := range h.Addresses {
		a.Name = normaliseText(a.Name)
		for _, ans := range a.InvalidAnswers {
			n.logger.Warn("[intake] Address %s: %s %q is not a number, treated as missing", a.ID, ans.Field, ans.Raw)
		}
	}

	h.Destinations = normaliseGroup(n, "destination", h.Destinations,
		func(d *models.Destination) *string { return &d.ID },
		func(d *models.Destination) int { return d.Sequence })
	for _, d := range h.Destinations {
		d.Name = normaliseText(d.Name)
	}

	h.Vehicles = normaliseGroup(n, "vehicle", h.Vehicles,
		func(v *models.Vehicle) *string { return &v.ID },
		func(v *models.Vehicle) int { return v.Sequence })
	for _, v := range h.Vehicles {
		v.Nickname = normaliseText(v.Nickname)
		v.Category = models.VehicleCategory(strings.TrimSpace(string(v.Category)))
		v.Engine = models.EngineType(strings.TrimSpace(string(v.Engine)))
	}

	n.logger.Info("[intake] Household: %d addresses, %d destinations, %d vehicles",
		len(h.Addresses), len(h.Destinations), len(h.Vehicles))
	return h
}

func normaliseGroup[T any](
	n *Normaliser,
	kind string,
	group map[string]*T,
	id func(*T) *string,
	sequence func(*T) int,
) map[string]*T {
	keys := make([]string, 0, len(group))
	for k, v := range group {
		if v == nil {
			n.logger.Warn("[intake] Dropping empty %s entry %q", kind, k)
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		si, sj := sequence(group[keys[i]]), sequence(group[keys[j]])
		if si != sj {
			return si < sj
		}
		return keys[i] < keys[j]
	})

	seen := utils.NewIDSet()
	out := make(map[string]*T, len(keys))
	for _, k := range keys {
		record := group[k]
		recordID := id(record)
		*recordID = strings.TrimSpace(*recordID)
		if *recordID == "" {
			*recordID = strings.TrimSpace(k)
		}
		if *recordID == "" {
			*recordID = uuid.NewString()
			n.logger.Debug("[intake] Assigned id %s to %s with sequence %d", *recordID, kind, sequence(record))
		}
		if !seen.Add(*recordID) {
			n.logger.Warn("[intake] Dropping duplicate %s %s", kind, *recordID)
			continue
		}
		out[*recordID] = record
	}
	return out
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	shp "github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"relocation-estimator/models"
)

// AccessibilityShapefile is the file name written inside the output dir.
const AccessibilityShapefile = "accessibility.shp"

// DBF attribute columns, in SetFields order.
const (
	fieldAddressID = iota
	fieldName
	fieldSequence
	fieldTotal
)

// ShapefileWriter exports accessibility polygons as a polygon shapefile,
// one record per polygon feature, tagged with the address it belongs to.
type ShapefileWriter struct {
	mu     sync.Mutex
	base   string
	writer *shp.Writer
}

// NewShapefileWriter creates dir if needed and opens accessibility.shp
// (with its .shx and .dbf siblings) inside it.
func NewShapefileWriter(dir string) (*ShapefileWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("shapefile: create output dir: %w", err)
	}

	path := filepath.Join(dir, AccessibilityShapefile)
	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		return nil, fmt.Errorf("shapefile: create: %w", err)
	}

	fields := []shp.Field{
		shp.StringField("ADDR_ID", 64),
		shp.StringField("NAME", 100),
		shp.NumberField("SEQUENCE", 10),
		shp.FloatField("TOTAL_MO", 14, 2),
	}
	if err := w.SetFields(fields); err != nil {
		w.Close()
		return nil, fmt.Errorf("shapefile: set fields: %w", err)
	}

	return &ShapefileWriter{base: strings.TrimSuffix(path, ".shp"), writer: w}, nil
}

// Write adds the accessibility polygons of every address that has some.
// Features that are not polygons are skipped.
func (s *ShapefileWriter) Write(addresses []*models.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range addresses {
		if a.AccessibilityMap == nil {
			continue
		}
		for _, f := range a.AccessibilityMap.Features {
			polygon := toShapePolygon(f)
			if polygon == nil {
				continue
			}
			idx := int(s.writer.Write(polygon))
			if err := s.writeAttributes(idx, a); err != nil {
				return fmt.Errorf("shapefile: attributes of %s: %w", a.ID, err)
			}
		}
	}
	return nil
}

func (s *ShapefileWriter) writeAttributes(idx int, a *models.Address) error {
	if err := s.writer.WriteAttribute(idx, fieldAddressID, a.ID); err != nil {
		return err
	}
	if err := s.writer.WriteAttribute(idx, fieldName, truncate(a.DisplayName(), 100)); err != nil {
		return err
	}
	if err := s.writer.WriteAttribute(idx, fieldSequence, a.Sequence); err != nil {
		return err
	}
	if r := flatten(a); r.total != nil {
		return s.writer.WriteAttribute(idx, fieldTotal, *r.total)
	}
	return nil
}

// Close writes the file headers and closes the shapefile. go-shp creates the
// attribute table as "<base>dbf"; it is moved to "<base>.dbf" so readers
// find it next to the .shp.
func (s *ShapefileWriter) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writer.Close()

	misnamed := s.base + "dbf"
	if _, err := os.Stat(misnamed); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("shapefile: stat attribute table: %w", err)
	}
	if err := os.Rename(misnamed, s.base+".dbf"); err != nil {
		return fmt.Errorf("shapefile: rename attribute table: %w", err)
	}
	return nil
}

// toShapePolygon converts a polygon or multipolygon feature into a single
// shapefile polygon whose parts are all its rings. Outer rings are written
// clockwise and holes counter-clockwise, as shapefiles expect.
func toShapePolygon(f *geojson.Feature) *shp.Polygon {
	var polygons []orb.Polygon
	switch g := f.Geometry.(type) {
	case orb.Polygon:
		polygons = []orb.Polygon{g}
	case orb.MultiPolygon:
		polygons = g
	default:
		return nil
	}

	var parts [][]shp.Point
	for _, p := range polygons {
		for i, ring := range p {
			if len(ring) == 0 {
				continue
			}
			want := orb.CCW
			if i == 0 {
				want = orb.CW
			}
			parts = append(parts, ringPoints(ring, ring.Orientation() != want))
		}
	}
	if len(parts) == 0 {
		return nil
	}

	polygon := shp.Polygon(*shp.NewPolyLine(parts))
	return &polygon
}

func ringPoints(ring orb.Ring, reverse bool) []shp.Point {
	points := make([]shp.Point, len(ring))
	for i, p := range ring {
		j := i
		if reverse {
			j = len(ring) - 1 - i
		}
		points[j] = shp.Point{X: p.X(), Y: p.Y()}
	}
	return points
}

// truncate cuts s to at most max bytes without splitting a character.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	end := 0
	for end < len(s) {
		_, size := utf8.DecodeRuneInString(s[end:])
		if end+size > max {
			break
		}
		end += size
	}
	return s[:end]
}

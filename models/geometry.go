package models

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// pointFromFeature returns the point of a GeoJSON feature, or nil when the
// feature is absent or not a point.
func pointFromFeature(f *geojson.Feature) *orb.Point {
	if f == nil || f.Geometry == nil {
		return nil
	}
	p, ok := f.Geometry.(orb.Point)
	if !ok {
		return nil
	}
	return &p
}

func featureFromPoint(p *orb.Point) *geojson.Feature {
	if p == nil {
		return nil
	}
	return geojson.NewFeature(*p)
}

package models

import (
	"encoding/json"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"

	dErrors "landtitle/pkg/domain-errors"
)

// ParseBoundary accepts a GeoJSON Polygon or MultiPolygon with closed rings
// and returns its geodesic area in square meters.
func ParseBoundary(raw json.RawMessage) (float64, error) {
	g, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeValidation, "boundary must be a GeoJSON geometry")
	}

	var polygons orb.MultiPolygon
	switch geom := g.Geometry().(type) {
	case orb.Polygon:
		polygons = orb.MultiPolygon{geom}
	case orb.MultiPolygon:
		polygons = geom
	default:
		return 0, dErrors.New(dErrors.CodeValidation, "boundary must be a Polygon or MultiPolygon")
	}
	if len(polygons) == 0 {
		return 0, dErrors.New(dErrors.CodeValidation, "boundary has no polygons")
	}
	for _, poly := range polygons {
		if len(poly) == 0 {
			return 0, dErrors.New(dErrors.CodeValidation, "boundary polygon has no rings")
		}
		for _, ring := range poly {
			if len(ring) < 4 || !ring.Closed() {
				return 0, dErrors.New(dErrors.CodeValidation, "boundary rings must be closed with at least four points")
			}
		}
	}

	area := geo.Area(polygons)
	if area <= 0 {
		return 0, dErrors.New(dErrors.CodeValidation, "boundary encloses no area")
	}
	return area, nil
}

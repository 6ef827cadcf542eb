package zone

import (
	"encoding/json"
	"strconv"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Stored zone geometry arrives in one of three encodings, normalized here and
// nowhere else. The canonical ring is (lng, lat) ordered.
//
// Axis order is a fixed convention per encoding, never inferred per record:
//   - delimited pairs "(18.61,73.74);(18.61,73.75);..." are latitude-first
//     (legacy admin-panel format) and get swapped;
//   - the GeoJSON object and the bare pair list are longitude-first, per the
//     GeoJSON convention.

// ErrGeometryEmpty is returned for blank geometry columns.
var ErrGeometryEmpty = errs.NewValueIsRequiredError("zone geometry")

// geoJSONGeometry mirrors the subset of GeoJSON the store may contain.
type geoJSONGeometry struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"`
}

// ParseGeometry normalizes a stored geometry value into a validated ring.
//
// Returns an error when the encoding cannot be parsed into at least three
// valid vertices or the ring is irreparably self-intersecting; callers drop
// the zone and log a warning rather than failing the load.
func ParseGeometry(raw string) (kernel.PolygonRing, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return kernel.PolygonRing{}, ErrGeometryEmpty
	}

	switch trimmed[0] {
	case '{':
		return parseGeoJSON(trimmed)
	case '[':
		return parsePairList(trimmed)
	default:
		return parseDelimitedPairs(trimmed)
	}
}

// parseDelimitedPairs handles "(lat,lng);(lat,lng);..." and the older
// "(lat,lng),(lat,lng)" variant. Pairs are latitude-first and swapped into
// the canonical order. Malformed fragments are skipped; the ring constructor
// decides whether enough valid vertices remain.
func parseDelimitedPairs(raw string) (kernel.PolygonRing, error) {
	normalized := strings.ReplaceAll(raw, "),(", ");(")

	var vertices []kernel.GeoPoint
	for _, fragment := range strings.Split(normalized, ";") {
		fragment = strings.TrimSpace(fragment)
		fragment = strings.TrimPrefix(fragment, "(")
		fragment = strings.TrimSuffix(fragment, ")")
		if fragment == "" {
			continue
		}

		parts := strings.Split(fragment, ",")
		if len(parts) != 2 {
			continue
		}

		lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		lng, errLng := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errLat != nil || errLng != nil {
			continue
		}

		pt, err := kernel.NewGeoPoint(lat, lng)
		if err != nil {
			continue
		}
		vertices = append(vertices, pt)
	}

	return kernel.NewPolygonRing(vertices)
}

// parseGeoJSON handles {"type":"Polygon","coordinates":[[[lng,lat],...]]}.
// Only the outer ring is used; holes are not supported by the store.
func parseGeoJSON(raw string) (kernel.PolygonRing, error) {
	var geom geoJSONGeometry
	if err := json.Unmarshal([]byte(raw), &geom); err != nil {
		return kernel.PolygonRing{}, errs.NewValueIsInvalidErrorWithCause("zone geometry", err)
	}

	if !strings.EqualFold(geom.Type, "Polygon") || len(geom.Coordinates) == 0 {
		return kernel.PolygonRing{}, errs.NewValueIsInvalidError("zone geometry: not a polygon")
	}

	return ringFromPairs(geom.Coordinates[0])
}

// parsePairList handles [[lng,lat],[lng,lat],...].
func parsePairList(raw string) (kernel.PolygonRing, error) {
	var pairs [][]float64
	if err := json.Unmarshal([]byte(raw), &pairs); err != nil {
		return kernel.PolygonRing{}, errs.NewValueIsInvalidErrorWithCause("zone geometry", err)
	}

	return ringFromPairs(pairs)
}

func ringFromPairs(pairs [][]float64) (kernel.PolygonRing, error) {
	var vertices []kernel.GeoPoint
	for _, pair := range pairs {
		if len(pair) < 2 {
			continue
		}

		// Longitude-first pair.
		pt, err := kernel.NewGeoPoint(pair[1], pair[0])
		if err != nil {
			continue
		}
		vertices = append(vertices, pt)
	}

	return kernel.NewPolygonRing(vertices)
}

package kernel

import (
	"dispatch/internal/pkg/errs"
)

// MinRingVertices is the minimum number of distinct vertices a service-zone
// ring must have to describe an area.
const MinRingVertices = 3

var (
	// ErrRingTooSmall is returned when a ring has fewer than MinRingVertices
	// distinct vertices after normalization.
	ErrRingTooSmall = errs.NewValueIsInvalidError("polygon ring needs at least 3 distinct vertices")

	// ErrRingNotSimple is returned when a ring still self-intersects after repair.
	ErrRingNotSimple = errs.NewValueIsInvalidError("polygon ring is self-intersecting")
)

// PolygonRing is a simple closed ring of GeoPoints describing a service-zone
// boundary. Vertices are ordered; the closing edge from the last vertex back
// to the first is implicit.
//
// Containment policy: points exactly on an edge or vertex count as inside.
// This inclusive rule is fixed for the whole engine; see Contains.
type PolygonRing struct {
	vertices []GeoPoint
}

// NewPolygonRing builds a validated ring from ordered vertices.
//
// Construction normalizes the ring the way a zero-width buffer would:
// an explicit closing vertex, consecutive duplicates and collinear run-through
// vertices are removed. If fewer than MinRingVertices remain, ErrRingTooSmall
// is returned. If the normalized ring still self-intersects, ErrRingNotSimple
// is returned and the caller is expected to drop the zone.
func NewPolygonRing(vertices []GeoPoint) (PolygonRing, error) {
	for _, v := range vertices {
		if err := v.Validate(); err != nil {
			return PolygonRing{}, err
		}
	}

	ring := normalizeRing(vertices)
	if len(ring) < MinRingVertices {
		return PolygonRing{}, ErrRingTooSmall
	}

	if !isSimpleRing(ring) {
		return PolygonRing{}, ErrRingNotSimple
	}

	return PolygonRing{vertices: ring}, nil
}

// Vertices returns a copy of the normalized ring vertices.
func (r PolygonRing) Vertices() []GeoPoint {
	out := make([]GeoPoint, len(r.vertices))
	copy(out, r.vertices)
	return out
}

// Validate checks that the ring was built via NewPolygonRing.
func (r PolygonRing) Validate() error {
	if len(r.vertices) < MinRingVertices {
		return ErrRingTooSmall
	}
	return nil
}

// Contains reports whether the point lies inside the ring.
//
// The test is an even-odd ray cast on the (lng, lat) plane with an explicit
// boundary check first: a point on any edge or vertex is inside. The inclusive
// rule is deliberate so that an address on a zone border is still serviceable.
func (r PolygonRing) Contains(p GeoPoint) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}
	if err := r.Validate(); err != nil {
		return false, err
	}

	x, y := p.Lng(), p.Lat()
	n := len(r.vertices)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if onSegment(x, y,
			r.vertices[i].Lng(), r.vertices[i].Lat(),
			r.vertices[j].Lng(), r.vertices[j].Lat()) {
			return true, nil
		}
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := r.vertices[i].Lng(), r.vertices[i].Lat()
		xj, yj := r.vertices[j].Lng(), r.vertices[j].Lat()

		if (yi > y) != (yj > y) &&
			x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}

	return inside, nil
}

// normalizeRing drops an explicit closing vertex, consecutive duplicates and
// collinear run-through vertices.
func normalizeRing(vertices []GeoPoint) []GeoPoint {
	ring := make([]GeoPoint, 0, len(vertices))
	for _, v := range vertices {
		if len(ring) > 0 && samePoint(ring[len(ring)-1], v) {
			continue
		}
		ring = append(ring, v)
	}

	// Implicit closure: drop a trailing vertex equal to the first.
	if len(ring) > 1 && samePoint(ring[0], ring[len(ring)-1]) {
		ring = ring[:len(ring)-1]
	}

	return dropCollinear(ring)
}

func dropCollinear(ring []GeoPoint) []GeoPoint {
	if len(ring) < MinRingVertices {
		return ring
	}

	out := make([]GeoPoint, 0, len(ring))
	n := len(ring)
	for i := 0; i < n; i++ {
		prev := ring[(i-1+n)%n]
		cur := ring[i]
		next := ring[(i+1)%n]
		if cross(prev, cur, next) == 0 && between(prev, cur, next) {
			continue
		}
		out = append(out, cur)
	}
	return out
}

// isSimpleRing checks that no two non-adjacent edges intersect.
func isSimpleRing(ring []GeoPoint) bool {
	n := len(ring)
	for i := 0; i < n; i++ {
		a1 := ring[i]
		a2 := ring[(i+1)%n]
		for j := i + 1; j < n; j++ {
			// Skip adjacent edges, they always share a vertex.
			if j == i || (j+1)%n == i || j == (i+1)%n {
				continue
			}
			b1 := ring[j]
			b2 := ring[(j+1)%n]
			if segmentsIntersect(a1, a2, b1, b2) {
				return false
			}
		}
	}
	return true
}

func samePoint(a, b GeoPoint) bool {
	return a.Lat() == b.Lat() && a.Lng() == b.Lng()
}

// cross returns the z component of (b-a) x (c-a) on the (lng, lat) plane.
func cross(a, b, c GeoPoint) float64 {
	return (b.Lng()-a.Lng())*(c.Lat()-a.Lat()) - (b.Lat()-a.Lat())*(c.Lng()-a.Lng())
}

// between reports whether b lies within the bounding box of segment a-c.
func between(a, b, c GeoPoint) bool {
	return minF(a.Lng(), c.Lng()) <= b.Lng() && b.Lng() <= maxF(a.Lng(), c.Lng()) &&
		minF(a.Lat(), c.Lat()) <= b.Lat() && b.Lat() <= maxF(a.Lat(), c.Lat())
}

func onSegment(px, py, ax, ay, bx, by float64) bool {
	crossProd := (bx-ax)*(py-ay) - (by-ay)*(px-ax)
	if crossProd != 0 {
		return false
	}
	return minF(ax, bx) <= px && px <= maxF(ax, bx) &&
		minF(ay, by) <= py && py <= maxF(ay, by)
}

func segmentsIntersect(a1, a2, b1, b2 GeoPoint) bool {
	d1 := cross(b1, b2, a1)
	d2 := cross(b1, b2, a2)
	d3 := cross(a1, a2, b1)
	d4 := cross(a1, a2, b2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	if d1 == 0 && between(b1, a1, b2) {
		return true
	}
	if d2 == 0 && between(b1, a2, b2) {
		return true
	}
	if d3 == 0 && between(a1, b1, a2) {
		return true
	}
	if d4 == 0 && between(a1, b2, a2) {
		return true
	}
	return false
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

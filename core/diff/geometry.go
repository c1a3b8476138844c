package diff

import (
	"fmt"

	"github.com/paulmach/orb"
)

// DefaultXYTolerance is the coordinate tolerance used for shape equality
// when none is configured, in dataset units.
const DefaultXYTolerance = 0.001

// startToleranceSq bounds the squared distance between the first vertices of
// two equal shapes for them to count as starting at the same point.
const startToleranceSq = 1e-6

// GeometryComparator classifies the geometric difference between two shapes.
type GeometryComparator interface {
	Compare(a, b orb.Geometry) ShapeDiff
}

// ShapeComparator tests shapes for equality within an XY tolerance.
// Equality ignores digitizing direction, the start vertex of rings and the
// order of parts; the start vertex check is applied separately by Compare.
type ShapeComparator struct {
	tolerance float64
}

// NewShapeComparator creates a comparator with the given XY tolerance.
func NewShapeComparator(tolerance float64) (*ShapeComparator, error) {
	if tolerance < 0 {
		return nil, fmt.Errorf("%w: negative xy tolerance %v", ErrConfiguration, tolerance)
	}
	return &ShapeComparator{tolerance: tolerance}, nil
}

// Tolerance returns the XY tolerance.
func (s *ShapeComparator) Tolerance() float64 { return s.tolerance }

// Compare returns ShapeDifferent when the shapes are not equal,
// ShapeDifferentStart when they are equal but their first vertices are
// apart, and ShapeSame otherwise.
func (s *ShapeComparator) Compare(a, b orb.Geometry) ShapeDiff {
	if !s.Equal(a, b) {
		return ShapeDifferent
	}

	pa, okA := FirstVertex(a)
	pb, okB := FirstVertex(b)
	if !okA || !okB {
		return ShapeSame
	}
	if distSq(pa, pb) < startToleranceSq {
		return ShapeSame
	}
	return ShapeDifferentStart
}

// Equal reports whether the two shapes are equal within tolerance.
func (s *ShapeComparator) Equal(a, b orb.Geometry) bool {
	a, b = singlePart(a), singlePart(b)
	if isEmpty(a) || isEmpty(b) {
		return isEmpty(a) && isEmpty(b)
	}

	switch x := a.(type) {
	case orb.Point:
		y, ok := b.(orb.Point)
		return ok && s.near(x, y)
	case orb.MultiPoint:
		y, ok := b.(orb.MultiPoint)
		return ok && matchUnordered(len(x), len(y), func(i, j int) bool { return s.near(x[i], y[j]) })
	case orb.LineString:
		y, ok := b.(orb.LineString)
		return ok && s.pathEqual(x, y)
	case orb.Ring:
		y, ok := b.(orb.Ring)
		return ok && s.ringEqual(x, y)
	case orb.Polygon:
		y, ok := b.(orb.Polygon)
		return ok && s.polygonEqual(x, y)
	case orb.MultiLineString:
		y, ok := b.(orb.MultiLineString)
		return ok && matchUnordered(len(x), len(y), func(i, j int) bool { return s.pathEqual(x[i], y[j]) })
	case orb.MultiPolygon:
		y, ok := b.(orb.MultiPolygon)
		return ok && matchUnordered(len(x), len(y), func(i, j int) bool { return s.polygonEqual(x[i], y[j]) })
	case orb.Collection:
		y, ok := b.(orb.Collection)
		return ok && matchUnordered(len(x), len(y), func(i, j int) bool { return s.Equal(x[i], y[j]) })
	}
	return false
}

func (s *ShapeComparator) near(p, q orb.Point) bool {
	return distSq(p, q) <= s.tolerance*s.tolerance
}

// pathEqual compares two paths in either direction.
func (s *ShapeComparator) pathEqual(x, y []orb.Point) bool {
	n := len(x)
	if n != len(y) {
		return false
	}
	forward, backward := true, true
	for i := 0; i < n && (forward || backward); i++ {
		forward = forward && s.near(x[i], y[i])
		backward = backward && s.near(x[i], y[n-1-i])
	}
	return forward || backward
}

// ringEqual compares two rings regardless of start vertex and orientation.
func (s *ShapeComparator) ringEqual(x, y orb.Ring) bool {
	xs, ys := s.openRing(x), s.openRing(y)
	n := len(xs)
	if n != len(ys) {
		return false
	}
	if n == 0 {
		return true
	}
	for k := 0; k < n; k++ {
		if !s.near(xs[0], ys[k]) {
			continue
		}
		forward, backward := true, true
		for i := 1; i < n && (forward || backward); i++ {
			forward = forward && s.near(xs[i], ys[(k+i)%n])
			backward = backward && s.near(xs[i], ys[(k-i+n)%n])
		}
		if forward || backward {
			return true
		}
	}
	return false
}

// openRing drops the closing vertex of a closed ring.
func (s *ShapeComparator) openRing(r orb.Ring) []orb.Point {
	if len(r) > 1 && s.near(r[0], r[len(r)-1]) {
		return r[:len(r)-1]
	}
	return r
}

func (s *ShapeComparator) polygonEqual(x, y orb.Polygon) bool {
	if len(x) != len(y) {
		return false
	}
	if len(x) == 0 {
		return true
	}
	if !s.ringEqual(x[0], y[0]) {
		return false
	}
	hx, hy := x[1:], y[1:]
	return matchUnordered(len(hx), len(hy), func(i, j int) bool { return s.ringEqual(hx[i], hy[j]) })
}

// FirstVertex returns the first coordinate of a geometry: the first point of
// a path, the first vertex of the exterior ring, or the first vertex of the
// first non-empty part.
func FirstVertex(g orb.Geometry) (orb.Point, bool) {
	switch x := g.(type) {
	case orb.Point:
		return x, true
	case orb.MultiPoint:
		if len(x) > 0 {
			return x[0], true
		}
	case orb.LineString:
		if len(x) > 0 {
			return x[0], true
		}
	case orb.Ring:
		if len(x) > 0 {
			return x[0], true
		}
	case orb.Polygon:
		if len(x) > 0 {
			return FirstVertex(x[0])
		}
	case orb.MultiLineString:
		for _, part := range x {
			if p, ok := FirstVertex(part); ok {
				return p, true
			}
		}
	case orb.MultiPolygon:
		for _, part := range x {
			if p, ok := FirstVertex(part); ok {
				return p, true
			}
		}
	case orb.Collection:
		for _, part := range x {
			if p, ok := FirstVertex(part); ok {
				return p, true
			}
		}
	case orb.Bound:
		return x.Min, true
	}
	return orb.Point{}, false
}

// singlePart unwraps multi geometries holding exactly one part and turns
// bounds into polygons.
func singlePart(g orb.Geometry) orb.Geometry {
	switch x := g.(type) {
	case orb.Bound:
		return x.ToPolygon()
	case orb.MultiPoint:
		if len(x) == 1 {
			return x[0]
		}
	case orb.MultiLineString:
		if len(x) == 1 {
			return x[0]
		}
	case orb.MultiPolygon:
		if len(x) == 1 {
			return x[0]
		}
	case orb.Collection:
		if len(x) == 1 {
			return singlePart(x[0])
		}
	}
	return g
}

func isEmpty(g orb.Geometry) bool {
	switch x := g.(type) {
	case nil:
		return true
	case orb.MultiPoint:
		return len(x) == 0
	case orb.LineString:
		return len(x) == 0
	case orb.Ring:
		return len(x) == 0
	case orb.Polygon:
		return len(x) == 0
	case orb.MultiLineString:
		return len(x) == 0
	case orb.MultiPolygon:
		return len(x) == 0
	case orb.Collection:
		return len(x) == 0
	}
	return false
}

// matchUnordered pairs every element of one list with a distinct equal
// element of the other.
func matchUnordered(n, m int, eq func(i, j int) bool) bool {
	if n != m {
		return false
	}
	used := make([]bool, m)
	for i := 0; i < n; i++ {
		found := false
		for j := 0; j < m; j++ {
			if !used[j] && eq(i, j) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func distSq(p, q orb.Point) float64 {
	dx, dy := q[0]-p[0], q[1]-p[1]
	return dx*dx + dy*dy
}

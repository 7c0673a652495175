// Package polygon implements straight-edged polygons in the plane, used to
// approximate hyperbolic tiles for area computations and overlap checks.
//
// Polygons are built in the style of paths:
//
//	pg := polygon.NullPolygon().Knot(p1).Knot(p2).Knot(p3).Cycle()
//
// Boolean operations are delegated to polyclip.
/*

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package polygon

import (
	"fmt"
	"math"
	"strings"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/poincare"
	"github.com/npillmayer/poincare/tile"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'poincare.polygon'
func tracer() tracing.Trace {
	return tracing.Select("poincare.polygon")
}

// Polygon is a closed polygon, given by its knots in boundary order.
type Polygon struct {
	knots []poincare.Pair
}

// Builder collects knots for a polygon.
type Builder struct {
	knots []poincare.Pair
}

// NullPolygon starts an empty polygon.
func NullPolygon() *Builder {
	return &Builder{}
}

// Knot appends a knot. Knots equal to their predecessor are dropped.
func (b *Builder) Knot(p poincare.Pair) *Builder {
	if n := len(b.knots); n > 0 && b.knots[n-1].Equal(p) {
		return b
	}
	b.knots = append(b.knots, p)
	return b
}

// Cycle closes the polygon. A closing knot equal to the first one is dropped.
func (b *Builder) Cycle() Polygon {
	k := b.knots
	if n := len(k); n > 1 && k[n-1].Equal(k[0]) {
		k = k[:n-1]
	}
	pg := Polygon{knots: make([]poincare.Pair, len(k))}
	copy(pg.knots, k)
	return pg
}

// Box creates an axis-aligned rectangle with opposite corners a and b.
func Box(a, b poincare.Pair) Polygon {
	x0, x1 := math.Min(a.X(), b.X()), math.Max(a.X(), b.X())
	y0, y1 := math.Min(a.Y(), b.Y()), math.Max(a.Y(), b.Y())
	return NullPolygon().Knot(poincare.P(x0, y0)).Knot(poincare.P(x1, y0)).
		Knot(poincare.P(x1, y1)).Knot(poincare.P(x0, y1)).Cycle()
}

// FromTile approximates a tile by sampling each of its edges with segments
// straight segments.
func FromTile(t tile.Tile, segments int) Polygon {
	b := NullPolygon()
	for _, e := range t.Oriented() {
		pts := e.Points(segments)
		for _, p := range pts[:len(pts)-1] {
			b.Knot(p)
		}
	}
	return b.Cycle()
}

// N returns the number of knots.
func (pg Polygon) N() int {
	return len(pg.knots)
}

// Z returns knot i, with i taken modulo N.
func (pg Polygon) Z(i int) poincare.Pair {
	n := len(pg.knots)
	return pg.knots[((i%n)+n)%n]
}

// Area returns the (unsigned) area of pg.
func (pg Polygon) Area() float64 {
	return math.Abs(signedArea(pg.Contour()))
}

// IsCounterClockwise is a predicate: are the knots of pg oriented
// counter-clockwise?
func (pg Polygon) IsCounterClockwise() bool {
	return signedArea(pg.Contour()) > 0
}

// Contour converts pg to a polyclip contour.
func (pg Polygon) Contour() polyclip.Contour {
	c := make(polyclip.Contour, len(pg.knots))
	for i, k := range pg.knots {
		c[i] = polyclip.Point{X: k.X(), Y: k.Y()}
	}
	return c
}

// Polyclip converts pg to a single-contour polyclip polygon.
func (pg Polygon) Polyclip() polyclip.Polygon {
	return polyclip.Polygon{pg.Contour()}
}

// Bounds returns the bounding box of pg as a pair of corners.
func (pg Polygon) Bounds() (min, max poincare.Pair) {
	if len(pg.knots) == 0 {
		return
	}
	r := pg.Contour().BoundingBox()
	return poincare.P(r.Min.X, r.Min.Y), poincare.P(r.Max.X, r.Max.Y)
}

// shoelace formula, summed over all contours
func signedArea(contours ...polyclip.Contour) float64 {
	a := 0.0
	for _, c := range contours {
		for i := range c {
			j := (i + 1) % len(c)
			a += c[i].X*c[j].Y - c[j].X*c[i].Y
		}
	}
	return a / 2
}

// IntersectionArea returns the area of the intersection of a and b.
func IntersectionArea(a, b Polygon) float64 {
	if a.N() < 3 || b.N() < 3 {
		return 0
	}
	area := 0.0
	for _, c := range a.Polyclip().Construct(polyclip.INTERSECTION, b.Polyclip()) {
		area += signedArea(c)
	}
	return math.Abs(area)
}

// Overlaps is a predicate: do a and b overlap by more than a fraction
// tolerance of the smaller one's area? Polygons sharing edges or single
// points only do not overlap.
func Overlaps(a, b Polygon, tolerance float64) bool {
	ia := IntersectionArea(a, b)
	limit := tolerance * math.Min(a.Area(), b.Area())
	if ia > limit {
		tracer().Debugf("polygons overlap: intersection area %g > %g", ia, limit)
		return true
	}
	return false
}

// AsString returns a polygon's knots as a (debugging) string.
//
// Example:
//
//	(0,0) -- (1,3) -- (3,0) -- cycle
func AsString(pg Polygon) string {
	var sb strings.Builder
	for i, k := range pg.knots {
		if i > 0 {
			sb.WriteString(" -- ")
		}
		sb.WriteString(fmt.Sprintf("(%.4g,%.4g)", k.X(), k.Y()))
	}
	sb.WriteString(" -- cycle")
	return sb.String()
}

func (pg Polygon) String() string {
	return fmt.Sprintf("polygon{%d}%s", len(pg.knots), AsString(pg))
}

// Package geodesic implements bounded circular arcs, which represent the
// edges of tiles in the Poincaré disk.
//
// A Geodesic is held both as a pair of boundary points on its circle and in
// polar form (start angle and counter-clockwise sweep). The polar form always
// describes the shorter of the two arcs between the boundary points.
//
// Hyperbolic lines through the center of the disk are diameters. Geodesics on
// them are straight: they have a Line as their carrier instead of a circle and
// no polar form.
package geodesic

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
	"github.com/npillmayer/poincare"
	"github.com/npillmayer/poincare/circle"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'poincare.geodesic'
func tracer() tracing.Trace {
	return tracing.Select("poincare.geodesic")
}

// StraightEpsilon bounds the collinearity (see circle.Collinearity) below which
// three points on a geodesic are taken to lie on a straight line.
var StraightEpsilon = 1e-9

// Geodesic is an immutable arc of a circle, or a straight segment, bounded by
// start and end point.
type Geodesic struct {
	c          circle.Circle
	line       circle.Line // carrier of straight geodesics
	straight   bool
	start, end poincare.Pair
	startAngle s1.Angle // canonical start, in [0,2π)
	sweep      s1.Angle // counter-clockwise, in [0,π]
}

// New creates a geodesic on c between start and end. Both points are
// expected to lie on c; the polar form is derived from them.
func New(c circle.Circle, start, end poincare.Pair) Geodesic {
	g := Geodesic{c: c, start: start, end: end}
	g.startAngle, g.sweep = canonicalArc(circle.ToPolar(c, start), circle.ToPolar(c, end))
	return g
}

// NewStraight creates a straight geodesic between start and end.
func NewStraight(start, end poincare.Pair) (Geodesic, error) {
	l, err := circle.NewLine(start, end)
	if err != nil {
		return Geodesic{}, err
	}
	return Geodesic{line: l, straight: true, start: start, end: end}, nil
}

// Between returns the geodesic from a to b, two distinct points inside the
// disk unit. If a and b lie on a diameter, the geodesic is straight.
func Between(a, b poincare.Pair, unit circle.Circle) (Geodesic, error) {
	src := a
	if poincare.Dist(a, unit.Center()) < poincare.Dist(b, unit.Center()) {
		src = b
	}
	inv, err := circle.Invert(src, unit)
	if err != nil { // both points at the center
		return Geodesic{}, err
	}
	if circle.Collinearity(a, b, inv) < StraightEpsilon {
		return NewStraight(a, b)
	}
	c, err := circle.FromThreePoints(a, b, inv)
	if err != nil {
		return Geodesic{}, err
	}
	return New(c, a, b), nil
}

// FromAngles creates a geodesic on c from a start angle and a sweep angle,
// both given in degrees. The boundary points are derived from the angles.
func FromAngles(c circle.Circle, startDeg, sweepDeg float64) Geodesic {
	a := float64(s1.Angle(startDeg) * s1.Degree)
	s := float64(s1.Angle(sweepDeg) * s1.Degree)
	return New(c, circle.FromPolar(c, a), circle.FromPolar(c, a+s))
}

// canonicalArc selects the shorter arc between two polar angles. The arc runs
// counter-clockwise from the smaller angle, unless the gap exceeds π; then it
// starts at the larger angle and wraps through 2π.
func canonicalArc(a0, a1 float64) (s1.Angle, s1.Angle) {
	lo, hi := math.Min(a0, a1), math.Max(a0, a1)
	gap := hi - lo
	if gap <= math.Pi {
		return s1.Angle(lo), s1.Angle(gap)
	}
	return s1.Angle(hi), s1.Angle(2*math.Pi - gap)
}

// Circle returns the circle carrying g. For straight geodesics this is the
// zero circle.
func (g Geodesic) Circle() circle.Circle {
	return g.c
}

// IsStraight is a predicate: is g a straight segment?
func (g Geodesic) IsStraight() bool {
	return g.straight
}

// Line returns the line carrying a straight geodesic. For arcs this is the
// zero line.
func (g Geodesic) Line() circle.Line {
	return g.line
}

// Mirror returns the carrier of g, to reflect other geodesics across.
func (g Geodesic) Mirror() circle.Mirror {
	if g.straight {
		return g.line
	}
	return g.c
}

// Start returns the start point of g.
func (g Geodesic) Start() poincare.Pair {
	return g.start
}

// End returns the end point of g.
func (g Geodesic) End() poincare.Pair {
	return g.end
}

// StartAngle returns the canonical start angle of g's arc, in radians.
func (g Geodesic) StartAngle() float64 {
	return g.startAngle.Radians()
}

// Sweep returns the counter-clockwise sweep of g's arc, in radians.
func (g Geodesic) Sweep() float64 {
	return g.sweep.Radians()
}

// StartAngleDegrees returns the canonical start angle of g's arc, in degrees.
func (g Geodesic) StartAngleDegrees() float64 {
	return g.startAngle.Degrees()
}

// SweepAngleDegrees returns the counter-clockwise sweep of g's arc, in degrees.
func (g Geodesic) SweepAngleDegrees() float64 {
	return g.sweep.Degrees()
}

// Mid returns the point at the angular middle of g's (shorter) arc.
func (g Geodesic) Mid() poincare.Pair {
	if g.straight {
		return g.start.Mid(g.end)
	}
	return circle.FromPolar(g.c, float64(g.startAngle+g.sweep/2))
}

// Reversed returns a copy of g with start and end point swapped.
// The arc itself is unchanged.
func (g Geodesic) Reversed() Geodesic {
	return Geodesic{
		c:          g.c,
		line:       g.line,
		straight:   g.straight,
		start:      g.end,
		end:        g.start,
		startAngle: g.startAngle,
		sweep:      g.sweep,
	}
}

// ReflectAcross reflects g through a mirror, usually a circle (circle
// inversion).
//
// Start, mid and end point of g are reflected, a new circle is fitted through
// the three images and the new arc is derived from the images' positions on
// it. If the images lie on a straight line, the result is a straight geodesic.
// Reflection reverses orientation: the image of g's end point becomes the
// new start point, and vice versa.
func (g Geodesic) ReflectAcross(rc circle.Mirror) (Geodesic, error) {
	s, err := rc.Reflect(g.start)
	if err != nil {
		return Geodesic{}, err
	}
	m, err := rc.Reflect(g.Mid())
	if err != nil {
		return Geodesic{}, err
	}
	e, err := rc.Reflect(g.end)
	if err != nil {
		return Geodesic{}, err
	}
	if circle.Collinearity(s, m, e) < StraightEpsilon {
		r, err := NewStraight(e, s)
		if err != nil {
			return Geodesic{}, fmt.Errorf("%w: reflection of %s", err, g)
		}
		tracer().Debugf("reflect %s across %s → straight %s", g, rc, r)
		return r, nil
	}
	c, err := circle.FromThreePoints(s, m, e)
	if err != nil {
		return Geodesic{}, err
	}
	r := New(c, e, s)
	tracer().Debugf("reflect %s across %s → %s", g, rc, r)
	return r, nil
}

// Equal is a predicate: do g and o lie on the same circle and connect the
// same points (in either direction)?
func (g Geodesic) Equal(o Geodesic) bool {
	if g.straight != o.straight {
		return false
	}
	if !g.straight && !g.c.Equal(o.c) {
		return false
	}
	return (g.start.Equal(o.start) && g.end.Equal(o.end)) ||
		(g.start.Equal(o.end) && g.end.Equal(o.start))
}

// Connects is a predicate: does g share an endpoint with o?
func (g Geodesic) Connects(o Geodesic) bool {
	return g.start.Equal(o.start) || g.start.Equal(o.end) ||
		g.end.Equal(o.start) || g.end.Equal(o.end)
}

// Points samples n+1 points on g, running from Start to End along the
// shorter arc. For n < 1, only the two boundary points are returned.
func (g Geodesic) Points(n int) []poincare.Pair {
	if n < 1 {
		n = 1
	}
	from, sweep := float64(g.startAngle), float64(g.sweep)
	if !g.straight && !g.start.Equal(circle.FromPolar(g.c, from)) { // arc runs backwards from start
		from, sweep = from+sweep, -sweep
	}
	pts := make([]poincare.Pair, n+1)
	pts[0] = g.start
	for i := 1; i < n; i++ {
		if g.straight {
			pts[i] = g.start + (g.end-g.start)*poincare.Pair(complex(float64(i)/float64(n), 0))
			continue
		}
		pts[i] = circle.FromPolar(g.c, from+sweep*float64(i)/float64(n))
	}
	pts[n] = g.end
	return pts
}

// Degenerate is a predicate: is g unfit for drawing? This is the case for
// NaN/Inf values and for arcs of (practically) zero length.
func (g Geodesic) Degenerate() bool {
	if g.start.IsNaN() || g.end.IsNaN() {
		return true
	}
	if g.straight {
		return poincare.Dist(g.start, g.end) < 1e-9
	}
	if g.c.IsZero() {
		return true
	}
	sw := float64(g.sweep)
	if math.IsNaN(sw) || math.IsNaN(float64(g.startAngle)) {
		return true
	}
	return sw*g.c.Radius() < 1e-9
}

// Arc is the drawing view of a geodesic: a circle and a counter-clockwise
// arc on it, angles in degrees.
type Arc struct {
	CenterX, CenterY float64
	Radius           float64
	StartAngle       float64
	Sweep            float64
}

// Arc returns the values a renderer needs to draw g directly. Straight
// geodesics have no arc; for them the zero Arc is returned and renderers
// draw a line from Start to End.
func (g Geodesic) Arc() Arc {
	if g.straight {
		return Arc{}
	}
	x, y := g.c.Center().F()
	return Arc{
		CenterX:    x,
		CenterY:    y,
		Radius:     g.c.Radius(),
		StartAngle: g.StartAngleDegrees(),
		Sweep:      g.SweepAngleDegrees(),
	}
}

func (g Geodesic) String() string {
	if g.straight {
		return fmt.Sprintf("%s→%s straight", g.start, g.end)
	}
	return fmt.Sprintf("%s→%s on %s [%.4g°+%.4g°]", g.start, g.end, g.c,
		g.StartAngleDegrees(), g.SweepAngleDegrees())
}

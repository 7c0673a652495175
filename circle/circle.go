// Package circle implements the geometry kernel for the Poincaré disk: circles,
// circle inversion, circles through three points and the constructions needed
// to move the disk center (orthogonal circles and hyperbolic bisectors).
//
// All values are immutable. Degenerate configurations (inverting a circle's
// own center, fitting a circle through collinear points) are reported as
// errors, never patched with a substituted epsilon. Callers that really need
// to invert a center must perturb it explicitly, see InvertCenter.
/*

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package circle

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/poincare"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'poincare.circle'
func tracer() tracing.Trace {
	return tracing.Select("poincare.circle")
}

// InversionEpsilon is the minimal distance of a point from a circle's center
// for an inversion to be well defined.
var InversionEpsilon = 0.000001

// CollinearEpsilon bounds the normalised determinant below which three points
// are considered collinear.
var CollinearEpsilon = 1e-12

var (
	// ErrNonPositiveRadius indicates a radius r ≤ 0 or NaN.
	ErrNonPositiveRadius = errors.New("circle radius must be positive")
	// ErrInvertCenter indicates an attempt to invert the center of a circle.
	ErrInvertCenter = errors.New("cannot invert the center of a circle")
	// ErrCollinear indicates that no circle passes through the given points.
	ErrCollinear = errors.New("points are collinear")
	// ErrNegativeDiscriminant indicates a quadratic without real roots.
	ErrNegativeDiscriminant = errors.New("negative discriminant")
	// ErrNotQuadratic indicates a quadratic coefficient of 0.
	ErrNotQuadratic = errors.New("leading coefficient is zero")
	// ErrNotExterior indicates a point which should lie outside a circle, but does not.
	ErrNotExterior = errors.New("point is not exterior to circle")
	// ErrOutsideDisk indicates a point which should lie inside a circle, but does not.
	ErrOutsideDisk = errors.New("point is not inside disk")
)

// Circle is an immutable circle with center and radius r > 0.
type Circle struct {
	center poincare.Pair
	r      float64
}

// New creates a circle. It fails for a radius which is not positive.
func New(center poincare.Pair, r float64) (Circle, error) {
	if !(r > 0) || math.IsInf(r, 0) {
		return Circle{}, fmt.Errorf("%w: r = %g", ErrNonPositiveRadius, r)
	}
	if center.IsNaN() {
		return Circle{}, fmt.Errorf("invalid circle center %v", center)
	}
	return Circle{center: center, r: r}, nil
}

// MustNew is a compatibility helper which panics on invalid circles.
func MustNew(center poincare.Pair, r float64) Circle {
	c, err := New(center, r)
	if err != nil {
		panic(err)
	}
	return c
}

// Center returns the center point of c.
func (c Circle) Center() poincare.Pair {
	return c.center
}

// Radius returns the radius of c.
func (c Circle) Radius() float64 {
	return c.r
}

// IsZero is a predicate: is c the zero value (not a valid circle)?
func (c Circle) IsZero() bool {
	return c.r == 0
}

// Equal compares two circles on center and radius, with tolerance poincare.Epsilon.
func (c Circle) Equal(o Circle) bool {
	return c.center.Equal(o.center) && poincare.NearlyEqual(c.r, o.r)
}

// Contains is a predicate: does p lie strictly inside c?
func (c Circle) Contains(p poincare.Pair) bool {
	return poincare.Dist(p, c.center) < c.r-poincare.Epsilon
}

// On is a predicate: does p lie on c (within poincare.Epsilon)?
func (c Circle) On(p poincare.Pair) bool {
	return poincare.NearlyEqual(poincare.Dist(p, c.center), c.r)
}

func (c Circle) String() string {
	return fmt.Sprintf("circle(%s, r=%g)", c.center, c.r)
}

// === Polar coordinates =====================================================

// NormalizeAngle maps an angle onto [0,2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi { // -tiny + 2π may round up
		a = 0
	}
	return a
}

// ToPolar converts a point on c to its angle relative to c's center.
// The result lies in [0,2π).
func ToPolar(c Circle, p poincare.Pair) float64 {
	return NormalizeAngle((p - c.center).Phase())
}

// FromPolar returns the point on c at the given angle.
func FromPolar(c Circle, angle float64) poincare.Pair {
	return c.center + poincare.Polar(c.r, angle)
}

// === Inversion =============================================================

// Invert performs circle inversion of point through c: the result lies on the
// ray from c's center through point, with |OP|·|OP'| = r².
//
// see https://www.malinc.se/noneuclidean/en/circleinversion.php
//
// Inverting the center itself (within InversionEpsilon) fails with ErrInvertCenter.
func Invert(point poincare.Pair, c Circle) (poincare.Pair, error) {
	v := point - c.center
	d := v.Abs()
	if d < InversionEpsilon {
		return poincare.Origin, fmt.Errorf("%w: %v in %v", ErrInvertCenter, point, c)
	}
	return c.center + poincare.Polar(c.r*c.r/d, v.Phase()), nil
}

// InvertCenter inverts a point at distance offset from c's center, in
// direction towards (radians). This is the explicit perturbation callers
// have to choose when they need the image of a center.
func InvertCenter(c Circle, towards, offset float64) (poincare.Pair, error) {
	return Invert(c.center+poincare.Polar(offset, towards), c)
}

// Reflect is circle inversion of p through c. It makes c a Mirror.
func (c Circle) Reflect(p poincare.Pair) (poincare.Pair, error) {
	return Invert(p, c)
}

// === Constructions =========================================================

// FromThreePoints returns the circle through p1, p2 and p3. The circumcenter
// is found by solving a 2×2 linear system with Cramer's rule. Collinear
// points (and coinciding points) result in ErrCollinear.
func FromThreePoints(p1, p2, p3 poincare.Pair) (Circle, error) {
	a, b := p1.F()
	c, d := p2.F()
	e, f := p3.F()
	a1, b1 := 2*(a-c), 2*(b-d)
	c1 := a*a + b*b - c*c - d*d
	a2, b2 := 2*(a-e), 2*(b-f)
	c2 := a*a + b*b - e*e - f*f
	det := a1*b2 - b1*a2
	if Collinearity(p1, p2, p3) < CollinearEpsilon {
		return Circle{}, fmt.Errorf("%w: %v, %v, %v", ErrCollinear, p1, p2, p3)
	}
	center := poincare.P((c1*b2-b1*c2)/det, (a1*c2-c1*a2)/det)
	return New(center, poincare.Dist(p1, center))
}

// Collinearity returns |sin φ|, φ being the angle between p1→p2 and p1→p3.
// Collinear points, as well as coinciding points, have collinearity 0.
func Collinearity(p1, p2, p3 poincare.Pair) float64 {
	u, v := p2-p1, p3-p1
	nu, nv := u.Abs(), v.Abs()
	if nu == 0 || nv == 0 {
		return 0
	}
	return math.Abs(u.X()*v.Y()-u.Y()*v.X()) / (nu * nv)
}

// SolveQuadratic returns both real roots of a·x² + b·x + c = 0,
// the smaller one first.
func SolveQuadratic(a, b, c float64) (float64, float64, error) {
	if a == 0 {
		return 0, 0, ErrNotQuadratic
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, 0, fmt.Errorf("%w: %g", ErrNegativeDiscriminant, disc)
	}
	s := math.Sqrt(disc)
	x1, x2 := (-b-s)/(2*a), (-b+s)/(2*a)
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	return x1, x2, nil
}

// Intersect returns the intersection points of two circles. Only circles with
// exactly two intersections (|r1-r2| < d < r1+r2) produce a result; all
// other configurations return nil, which is a regular non-match.
func Intersect(c1, c2 Circle) []poincare.Pair {
	v := c2.center - c1.center
	d := v.Abs()
	if !(d > math.Abs(c1.r-c2.r) && d < c1.r+c2.r) {
		return nil
	}
	// foot of the radical line on the line of centers
	a := (c1.r*c1.r - c2.r*c2.r + d*d) / (2 * d)
	u := v / poincare.Pair(complex(d, 0))
	foot := c1.center + u*poincare.Pair(complex(a, 0))
	n := u * poincare.P(0, 1)
	// |foot + t·n - c1|² = r1²  ⇒  t² + a² - r1² = 0
	t1, t2, err := SolveQuadratic(1, 0, a*a-c1.r*c1.r)
	if err != nil { // cannot happen for the guarded configuration, barring rounding
		tracer().Debugf("circle intersection: %v", err)
		return nil
	}
	return []poincare.Pair{
		foot + n*poincare.Pair(complex(t1, 0)),
		foot + n*poincare.Pair(complex(t2, 0)),
	}
}

// Orthogonal returns the circle centered at exterior which intersects unit at
// right angles. The touching points are found by intersecting unit with the
// Thales circle over the unit center and exterior.
func Orthogonal(unit Circle, exterior poincare.Pair) (Circle, error) {
	if poincare.Dist(exterior, unit.center) <= unit.r+poincare.Epsilon {
		return Circle{}, fmt.Errorf("%w: %v, %v", ErrNotExterior, exterior, unit)
	}
	thales, err := New(unit.center.Mid(exterior), poincare.Dist(unit.center, exterior)/2)
	if err != nil {
		return Circle{}, err
	}
	touch := Intersect(thales, unit)
	if len(touch) != 2 {
		return Circle{}, fmt.Errorf("%w: no tangent points for %v", ErrNotExterior, exterior)
	}
	return New(exterior, poincare.Dist(exterior, touch[0]))
}

// HyperbolicBisector returns the circle orthogonal to unit whose inversion
// swaps the center of unit and point, i.e. the hyperbolic perpendicular
// bisector of both. Inverting through it is the isometry which moves the
// disk center onto point.
func HyperbolicBisector(point poincare.Pair, unit Circle) (Circle, error) {
	if !unit.Contains(point) {
		return Circle{}, fmt.Errorf("%w: %v, %v", ErrOutsideDisk, point, unit)
	}
	inv, err := Invert(point, unit)
	if err != nil {
		return Circle{}, err
	}
	return Orthogonal(unit, inv)
}

// ThroughInDisk returns the circle carrying the hyperbolic line through a and
// b, two distinct points inside unit. The circle passes through a, b and the
// inversion of a through unit, which makes it orthogonal to unit.
//
// If a is the disk center, b is used for the inversion. Lines through the
// center are diameters; they result in ErrCollinear.
func ThroughInDisk(a, b poincare.Pair, unit Circle) (Circle, error) {
	src := a
	if poincare.Dist(a, unit.center) < InversionEpsilon {
		src = b
	}
	inv, err := Invert(src, unit)
	if err != nil {
		return Circle{}, err
	}
	return FromThreePoints(a, b, inv)
}

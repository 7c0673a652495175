/*
Package poincare generates regular tilings of the hyperbolic plane, drawn in
the Poincaré disk model.

The root package holds the numeric basics shared by all sub-packages: points,
approximate comparison and a small set of affine transformations. The geometry
proper lives in sub-packages:

	circle    circles, circle inversion, bisectors
	geodesic  circular arcs representing tile edges
	tile      closed cycles of geodesics
	holonomy  the legal-step automaton for the {4,5} tiling
	tiling    the tiling generator
	polygon   flattened tile outlines
	render    PNG and SVG output

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package poincare

import (
	"fmt"
	"math"
	"math/cmplx"
)

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
var Deg2Rad float64 = math.Pi / 180

// Epsilon : numbers below ε are considered 0. Circles, arcs and points are
// compared with this tolerance.
var Epsilon float64 = 0.0001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// NearlyEqual is a predicate: is |a-b| ≤ ε ?
func NearlyEqual(a, b float64) bool {
	if a == b {
		return true
	}
	return Is0(a - b)
}

// Round rounds n to a multiple of quantum q. For q ≤ 0, n is returned unchanged.
func Round(n, q float64) float64 {
	if q <= 0 {
		return n
	}
	return math.Round(n/q) * q
}

// === Pair Data Type ========================================================

// Pair is the type for 2D-points and vectors.
type Pair complex128

// Origin represents the frequently used constant (0,0).
var Origin = P(0, 0)

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// C returns a Pair as a complex number.
func (p Pair) C() complex128 {
	return complex128(p)
}

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// Polar constructs a pair from a radius and an angle (in radians).
func Polar(r, theta float64) Pair {
	return Pair(cmplx.Rect(r, theta))
}

// F is a quick notation for getting float values from a pair.
func (p Pair) F() (float64, float64) {
	return real(p), imag(p)
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p)
}

// Y is the y-part of a pair.
func (p Pair) Y() float64 {
	return imag(p)
}

// Abs is the distance of p from the origin.
func (p Pair) Abs() float64 {
	return cmplx.Abs(p.C())
}

// Phase is the angle of p, in radians in (-π,π].
func (p Pair) Phase() float64 {
	return cmplx.Phase(p.C())
}

// IsNaN is a predicate: does either coordinate hold NaN or ±Inf?
func (p Pair) IsNaN() bool {
	return cmplx.IsNaN(p.C()) || cmplx.IsInf(p.C())
}

// IsOrigin is a predicate: is this pair origin?
func (p Pair) IsOrigin() bool {
	return p.Equal(Origin)
}

// Equal compares two pairs, with tolerance Epsilon per coordinate.
func (p Pair) Equal(p2 Pair) bool {
	return NearlyEqual(p.X(), p2.X()) && NearlyEqual(p.Y(), p2.Y())
}

// Mid returns the midpoint between p and p2.
func (p Pair) Mid(p2 Pair) Pair {
	return (p + p2) / 2
}

// Rotated returns a new pair rotated around origin by theta (counterclockwise).
func (p Pair) Rotated(theta float64) Pair {
	T := Rotation(theta)
	return T.Transform(p)
}

// Dist is the Euclidean distance between p1 and p2.
func Dist(p1, p2 Pair) float64 {
	return math.Hypot(p1.X()-p2.X(), p1.Y()-p2.Y())
}

// === Affine Transformations ================================================

// AT is an affine transform, a matrix type used for transforming vectors.
type AT []float64 // a 3x3 matrix, flattened by rows

// Internal constructor. Clients implicitely use this as a starting point for
// transform combinations.
func newAT() AT {
	return make([]float64, 9)
}

func (m AT) set(row, col int, value float64) {
	m[row*3+col] = value
}

func (m AT) row(row int) []float64 {
	return m[row*3 : (row+1)*3]
}

func (m AT) col(col int) []float64 {
	return []float64{m[col], m[3+col], m[6+col]}
}

// Identity transform. Will transform a point onto itself.
func Identity() AT {
	m := newAT()
	m.set(0, 0, 1.0)
	m.set(1, 1, 1.0)
	m.set(2, 2, 1.0)
	return m
}

// Translation transform. Translate a point by (dx,dy).
func Translation(p Pair) AT {
	m := Identity()
	m.set(0, 2, p.X())
	m.set(1, 2, p.Y())
	return m
}

// Rotation transform. Rotate a point counter-clockwise around the origin.
// Argument is in radians.
func Rotation(theta float64) AT {
	m := newAT()
	sin, cos := math.Sincos(theta)
	m.set(0, 0, cos)
	m.set(0, 1, -sin)
	m.set(1, 0, sin)
	m.set(1, 1, cos)
	m.set(2, 2, 1.0)
	return m
}

// ScalingXY transform. Scale x by sx and y by sy, relative to the origin.
// A negative factor mirrors at the respective axis.
func ScalingXY(sx, sy float64) AT {
	m := newAT()
	m.set(0, 0, sx)
	m.set(1, 1, sy)
	m.set(2, 2, 1.0)
	return m
}

// Debug Stringer for an affine transform.
func (m AT) String() string {
	return fmt.Sprintf("[%g,%g,%g|%g,%g,%g|%g,%g,%g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
}

// v1 × v2, v.n = [a,b,c]
func dotProd(vec1, vec2 []float64) float64 {
	return vec1[0]*vec2[0] + vec1[1]*vec2[1] + vec1[2]*vec2[2]
}

// Combine 2 affine transformation to a new one. Returns a new transformation
// without changing the argument(s). The resulting transform applies m first,
// then n.
func (m AT) Combine(n AT) AT {
	o := newAT()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			o.set(row, col, dotProd(n.row(row), m.col(col)))
		}
	}
	return o
}

// Transform a 2D-point. The argument is unchanged and a new pair is returned.
func (m AT) Transform(p Pair) Pair {
	v := []float64{p.X(), p.Y(), 1.0}
	return P(dotProd(m.row(0), v), dotProd(m.row(1), v))
}

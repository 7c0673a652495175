package circle

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/poincare"
)

// Mirror is implemented by the carriers of hyperbolic lines: circles
// (reflection is circle inversion) and straight lines (Euclidean reflection).
// In the Poincaré disk straight carriers are diameters.
type Mirror interface {
	Reflect(p poincare.Pair) (poincare.Pair, error)
}

var (
	_ Mirror = Circle{}
	_ Mirror = Line{}
)

// ErrCoincident is returned when a line is constructed from two equal points.
var ErrCoincident = errors.New("points coincide")

// Line is an immutable straight line, given by a point on it and a unit
// direction vector.
type Line struct {
	p   poincare.Pair
	dir poincare.Pair
}

// NewLine returns the line through a and b.
func NewLine(a, b poincare.Pair) (Line, error) {
	d := poincare.Dist(a, b)
	if d < InversionEpsilon || math.IsNaN(d) {
		return Line{}, fmt.Errorf("%w: line through %v and %v", ErrCoincident, a, b)
	}
	return Line{p: a, dir: (b - a) / poincare.Pair(complex(d, 0))}, nil
}

// Point returns the point the line has been constructed with.
func (l Line) Point() poincare.Pair {
	return l.p
}

// Direction returns the unit direction vector of l.
func (l Line) Direction() poincare.Pair {
	return l.dir
}

// IsZero is a predicate: is l the zero value (not a valid line)?
func (l Line) IsZero() bool {
	return l.dir == 0
}

// Distance returns the distance of p from l.
func (l Line) Distance(p poincare.Pair) float64 {
	v := p - l.p
	return math.Abs(l.dir.X()*v.Y() - l.dir.Y()*v.X())
}

// On is a predicate: does p lie on l (within poincare.Epsilon)?
func (l Line) On(p poincare.Pair) bool {
	return poincare.Is0(l.Distance(p))
}

// Equal is a predicate: do l and o describe the same line?
func (l Line) Equal(o Line) bool {
	return l.On(o.p) && l.On(o.p+o.dir)
}

// Reflect mirrors p at l. It never fails.
func (l Line) Reflect(p poincare.Pair) (poincare.Pair, error) {
	v := (p - l.p).C()
	u := l.dir.C()
	return l.p + poincare.Pair(u*u*complex(real(v), -imag(v))), nil
}

func (l Line) String() string {
	return fmt.Sprintf("line(%s, dir=%s)", l.p, l.dir)
}

package tiling

import (
	"fmt"

	"github.com/npillmayer/poincare/holonomy"
)

// DefaultTolerance is the default match tolerance of the generic strategy,
// as a fraction of a tile's size.
const DefaultTolerance = 0.2

// Strategy selects how tiles are generated. It is either Generic or Holonomy.
type Strategy interface {
	check(p, q int) error
	fmt.Stringer
}

// Generic is the strategy for arbitrary hyperbolic pairs: every reflection of a
// tile is generated and tiles which are already known are discarded.
//
// A reflected tile is known if the centroid of a known tile lies closer to its
// centroid than Tolerance times its size (DefaultTolerance if ≤ 0). The root
// tile's distance from the center is rounded, so q tiles around a vertex do
// not close exactly, and a tile reached along another path comes out slightly
// displaced.
type Generic struct {
	Tolerance float64
}

func (g Generic) check(p, q int) error {
	return nil
}

func (g Generic) tolerance() float64 {
	if g.Tolerance <= 0 {
		return DefaultTolerance
	}
	return g.Tolerance
}

func (g Generic) String() string {
	return fmt.Sprintf("generic(tolerance=%g)", g.tolerance())
}

// Holonomy is the strategy for {4,5}: only reflections which are legal for
// the step automaton are generated. Turn maps a tile's forward direction and a
// step to the edge to reflect into; holonomy.Turn if nil.
type Holonomy struct {
	Turn holonomy.TurnFunc
}

func (h Holonomy) check(p, q int) error {
	if p != 4 || q != 5 {
		return fmt.Errorf("%w: holonomy strategy for {%d,%d}, needs {4,5}", ErrStrategyMismatch, p, q)
	}
	return nil
}

func (h Holonomy) turn() holonomy.TurnFunc {
	if h.Turn == nil {
		return holonomy.Turn
	}
	return h.Turn
}

func (h Holonomy) String() string {
	return "holonomy"
}

// DefaultStrategy returns Holonomy for {4,5} and Generic for all other pairs.
func DefaultStrategy(p, q int) Strategy {
	if p == 4 && q == 5 {
		return Holonomy{}
	}
	return Generic{Tolerance: DefaultTolerance}
}

// Option configures a Tiling at construction time.
type Option func(t *Tiling)

// WithStrategy overrides the default strategy.
func WithStrategy(s Strategy) Option {
	return func(t *Tiling) { t.strategy = s }
}

// WithTolerance selects the generic strategy with match tolerance tol.
func WithTolerance(tol float64) Option {
	return func(t *Tiling) { t.strategy = Generic{Tolerance: tol} }
}

// WithWorkers sets the number of goroutines which reflect the edges of a tile
// concurrently. The generated tiles do not depend on it. n < 1 means 1.
func WithWorkers(n int) Option {
	return func(t *Tiling) {
		if n < 1 {
			n = 1
		}
		t.workers = n
	}
}

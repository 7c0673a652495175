package holonomy

import (
	"errors"
	"fmt"

	"github.com/npillmayer/poincare/geodesic"
	"github.com/npillmayer/poincare/tile"
)

var (
	// ErrNotQuadrilateral is returned for tiles which do not have exactly 4 edges.
	ErrNotQuadrilateral = errors.New("holonomy tiles must have 4 edges")
	// ErrInvalidDirection is returned for reflections into Origin.
	ErrInvalidDirection = errors.New("invalid direction")
)

// Tile is a square tile with its edges addressed by direction, together with
// the automaton state and the path it has been reached by.
//
// Edge slot d of the underlying tile.Tile is the edge in direction d.
type Tile struct {
	tile    tile.Tile
	forward Direction
	state   State
	path    string
}

// NewRoot wraps a square tile as the root of a holonomy tiling. Edge 0 of t
// becomes the north edge, followed by west, south and east.
func NewRoot(t tile.Tile) (Tile, error) {
	if t.N() != 4 {
		return Tile{}, fmt.Errorf("%w: got %d", ErrNotQuadrilateral, t.N())
	}
	return Tile{tile: t, forward: Origin, state: RootState()}, nil
}

// Tile returns the underlying tile.
func (h Tile) Tile() tile.Tile {
	return h.tile
}

// Edge returns the edge in direction d.
func (h Tile) Edge(d Direction) geodesic.Geodesic {
	return h.tile.Edge(int(d))
}

// Forward returns the direction in which h has been entered.
func (h Tile) Forward() Direction {
	return h.forward
}

// State returns the automaton state of h.
func (h Tile) State() State {
	return h.state
}

// Path returns the path from the root tile to h: the initial direction,
// followed by the steps taken. The root tile has the empty path.
func (h Tile) Path() string {
	return h.path
}

// IsRoot is a predicate: is h the root tile?
func (h Tile) IsRoot() bool {
	return h.state.IsRoot()
}

// remap tells for a reflection into direction d (first index), which edge of
// the reflected tile has to be placed into an edge slot (second index).
// The source slot d itself stands for the mirror edge, which is not reflected
// but reversed.
var remap = [4][4]Direction{
	N: {N: S, W: W, S: N, E: E},
	W: {N: N, W: E, S: S, E: W},
	S: {N: S, W: W, S: N, E: E},
	E: {N: N, W: E, S: S, E: W},
}

// ReflectIntoDirection reflects h through its edge in direction dir, taking
// step. The reflected tile has dir as its forward direction: its edge slot dir
// is the image of h's opposite edge, while the mirror edge itself, reversed,
// becomes its opposite edge. The orthogonal edges are reflected in place.
//
// The step has to be legal for h's state (for the root: DontCare); otherwise
// ErrIllegalStep is returned. Geometric failures are returned as well.
func (h Tile) ReflectIntoDirection(dir Direction, step Step) (Tile, error) {
	if !dir.Valid() {
		return Tile{}, fmt.Errorf("%w: reflect into %s", ErrInvalidDirection, dir)
	}
	next, err := h.state.Next(step)
	if err != nil {
		return Tile{}, err
	}
	mirror := h.Edge(dir)
	var reflected [4]geodesic.Geodesic
	for _, d := range Directions {
		if d == dir {
			reflected[d] = mirror.Reversed()
			continue
		}
		if reflected[d], err = h.Edge(d).ReflectAcross(mirror.Mirror()); err != nil {
			return Tile{}, fmt.Errorf("reflect %s edge into %s: %w", d, dir, err)
		}
	}
	edges := make([]geodesic.Geodesic, 4)
	for _, slot := range Directions {
		edges[slot] = reflected[remap[dir][slot]]
	}
	t, err := tile.New(edges)
	if err != nil {
		return Tile{}, fmt.Errorf("reflect into %s: %w", dir, err)
	}
	r := Tile{tile: t, forward: dir, state: next}
	if h.IsRoot() {
		r.path = dir.String()
	} else {
		r.path = h.path + step.String()
	}
	tracer().Debugf("holonomy tile %s → %s (%s)", h.path, r.path, r.state)
	return r, nil
}

func (h Tile) String() string {
	if h.IsRoot() {
		return "holonomy<root>"
	}
	return fmt.Sprintf("holonomy<%s>", h.path)
}

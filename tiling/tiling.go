// Package tiling generates regular tilings {p,q} of the hyperbolic plane in the
// Poincaré disk.
/*

A Tiling is configured once from a Schläfli pair {p,q}, a resolution and an
initial rotation. Its root tile is a regular p-gon centered in the disk, sized
so that q of them meet at every vertex. Generate expands the root tile
breadth-first by reflecting tiles into their edges, until a target number of
tiles is known.

Two strategies are available. The generic one works for every hyperbolic pair
and discards tiles which are already known, using a canonical key of rounded
vertex coordinates. For {4,5} the holonomy strategy uses a legal-step automaton
(package holonomy) that reaches every tile exactly once, without any
geometric comparison.

	t, err := tiling.New(4, 5, 800, math.Pi/4)
	...
	err = t.Generate(400)
	for _, entry := range t.Tiles() {
		... entry.Tile.Edges() ...
	}

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package tiling

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/poincare"
	"github.com/npillmayer/poincare/circle"
	"github.com/npillmayer/poincare/tile"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'poincare.tiling'
func tracer() tracing.Trace {
	return tracing.Select("poincare.tiling")
}

var (
	// ErrInvalidSchlaefli is returned for p < 3 or q < 3.
	ErrInvalidSchlaefli = errors.New("invalid Schläfli pair")
	// ErrNotHyperbolic is returned for pairs with (p-2)(q-2) ≤ 4, which tile the
	// sphere or the Euclidean plane.
	ErrNotHyperbolic = errors.New("Schläfli pair is not hyperbolic")
	// ErrResolution is returned for a resolution ≤ 0.
	ErrResolution = errors.New("resolution must be positive")
	// ErrStrategyMismatch is returned when the holonomy strategy is requested
	// for anything but {4,5}.
	ErrStrategyMismatch = errors.New("strategy not applicable")
	// ErrTargetCount is returned for a target tile count ≤ 0.
	ErrTargetCount = errors.New("target tile count must be positive")
	// ErrExhausted is returned when no more tiles can be generated before the
	// target count is reached.
	ErrExhausted = errors.New("tiling exhausted")
)

// Entry is a generated tile, together with the path it has been generated by
// and its distance (in reflections) from the root tile.
//
// Paths are stable per tile and deterministic. Renderers may use them as
// opaque identifiers, e.g. for colouring.
type Entry struct {
	Tile  tile.Tile
	Path  string
	Depth int
}

// Tiling is a generator for a regular tiling {p,q}. It is not safe for
// concurrent use.
type Tiling struct {
	p, q       int
	resolution float64
	rotation   float64
	unit       circle.Circle
	pristine   []poincare.Pair // root vertices before any re-centering
	center     poincare.Pair   // current re-centering target
	root       tile.Tile
	strategy   Strategy
	workers    int
	entries    []Entry
	skipped    int // reflections skipped during the last generation
}

// New creates a tiling generator for {p,q}. resolution is the diameter of the
// disk (the disk is centered at the origin, with radius resolution/2), rotation
// is the angle of the first vertex of the root tile, in radians.
//
// Construction fails for invalid or non-hyperbolic pairs.
func New(p, q int, resolution, rotation float64, opts ...Option) (*Tiling, error) {
	if p < 3 || q < 3 {
		return nil, fmt.Errorf("%w: {%d,%d}", ErrInvalidSchlaefli, p, q)
	}
	if (p-2)*(q-2) <= 4 {
		return nil, fmt.Errorf("%w: {%d,%d}, (p-2)(q-2) = %d", ErrNotHyperbolic, p, q, (p-2)*(q-2))
	}
	if !(resolution > 0) || math.IsInf(resolution, 0) {
		return nil, fmt.Errorf("%w: %g", ErrResolution, resolution)
	}
	t := &Tiling{
		p:          p,
		q:          q,
		resolution: resolution,
		rotation:   rotation,
		workers:    1,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.strategy == nil {
		t.strategy = DefaultStrategy(p, q)
	}
	if err := t.strategy.check(p, q); err != nil {
		return nil, err
	}
	unit, err := circle.New(poincare.Origin, resolution/2)
	if err != nil {
		return nil, err
	}
	t.unit = unit
	d := InitialDistance(p, q, resolution)
	t.pristine = make([]poincare.Pair, p)
	for k := range t.pristine {
		t.pristine[k] = poincare.P(d, 0).Rotated(rotation + float64(k)*2*math.Pi/float64(p))
	}
	if t.root, err = tile.FromVertices(t.pristine, unit); err != nil {
		return nil, fmt.Errorf("root tile of {%d,%d}: %w", p, q, err)
	}
	tracer().Debugf("tiling {%d,%d}: disk radius %g, root at distance %g, strategy %s",
		p, q, unit.Radius(), d, t.strategy)
	return t, nil
}

// InitialDistance returns the distance of the root tile's vertices from the
// center of a disk with diameter resolution, such that q regular p-gons meet at
// every vertex. The result is rounded to an integer.
func InitialDistance(p, q int, resolution float64) float64 {
	a := math.Tan(math.Pi/2 - math.Pi/float64(q))
	b := math.Tan(math.Pi / float64(p))
	return math.Round(math.Sqrt((a-b)/(a+b)) * resolution / 2)
}

// P returns the number of edges of each tile.
func (t *Tiling) P() int {
	return t.p
}

// Q returns the number of tiles meeting at each vertex.
func (t *Tiling) Q() int {
	return t.q
}

// Unit returns the disk boundary.
func (t *Tiling) Unit() circle.Circle {
	return t.unit
}

// Resolution returns the diameter of the disk.
func (t *Tiling) Resolution() float64 {
	return t.resolution
}

// Rotation returns the initial rotation of the root tile.
func (t *Tiling) Rotation() float64 {
	return t.rotation
}

// Strategy returns the generation strategy in use.
func (t *Tiling) Strategy() Strategy {
	return t.strategy
}

// Root returns the current root tile.
func (t *Tiling) Root() tile.Tile {
	return t.root
}

// Center returns the point the root tile has been moved to,
// see MoveInitialTile.
func (t *Tiling) Center() poincare.Pair {
	return t.center
}

// Tiles returns the known tiles, in generation order. The first entry is the
// root tile. Before the first call to Generate, and after re-centering, there
// are no known tiles.
func (t *Tiling) Tiles() []Entry {
	e := make([]Entry, len(t.entries))
	copy(e, t.entries)
	return e
}

// Len returns the number of known tiles.
func (t *Tiling) Len() int {
	return len(t.entries)
}

// MoveInitialTile moves the root tile onto target, an isometry of the
// hyperbolic plane. The vertices of the pristine root tile are inverted
// through the hyperbolic bisector of the disk center and target, and the root
// tile is rebuilt from them. Moves are absolute: target at the origin restores
// the pristine root tile.
//
// All known tiles are discarded; Generate has to be called again.
func (t *Tiling) MoveInitialTile(target poincare.Pair) error {
	vertices := t.pristine
	if !target.IsOrigin() {
		bisector, err := circle.HyperbolicBisector(target, t.unit)
		if err != nil {
			return fmt.Errorf("move root tile to %v: %w", target, err)
		}
		vertices = make([]poincare.Pair, len(t.pristine))
		for i, v := range t.pristine {
			if vertices[i], err = circle.Invert(v, bisector); err != nil {
				return fmt.Errorf("move root tile to %v: %w", target, err)
			}
		}
	}
	root, err := tile.FromVertices(vertices, t.unit)
	if err != nil {
		return fmt.Errorf("move root tile to %v: %w", target, err)
	}
	t.root, t.center = root, target
	t.entries, t.skipped = nil, 0
	tracer().Infof("root tile moved to %v", target)
	return nil
}

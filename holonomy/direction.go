// Package holonomy implements the legal-step automaton for generating the
// {4,5} tiling (squares, five of them meeting at each vertex).
/*

Every square of the tiling has its edges labelled by cardinal directions
N, W, S and E. Starting from the root tile, a tile is reached by an initial
direction followed by a sequence of steps: forward (F), left (L) and right (R),
relative to the direction the path came from. Not every sequence of steps is
allowed. The automaton prunes the sequences so that each tile is reached along
exactly one path:

  - no two consecutive right steps
  - no two left steps without a right step in between,
    except for the very first left step

See https://math.stackexchange.com/questions/2222314 for a description of the
order-5 square tiling as a graph.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package holonomy

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'poincare.holonomy'
func tracer() tracing.Trace {
	return tracing.Select("poincare.holonomy")
}

// Direction labels an edge slot of a square tile.
type Direction int8

// Edge slots of a square tile. Origin is the forward direction of the root tile,
// which has not been reached from anywhere.
const (
	N      Direction = 0 // north, the top edge
	W      Direction = 1 // west
	S      Direction = 2 // south
	E      Direction = 3 // east
	Origin Direction = -1
)

// Directions lists the four cardinal directions in edge slot order.
var Directions = [4]Direction{N, W, S, E}

// Valid is a predicate: is d one of N, W, S, E?
func (d Direction) Valid() bool {
	return d >= N && d <= E
}

// Opposite returns the direction opposite of d. Origin is its own opposite.
func (d Direction) Opposite() Direction {
	if !d.Valid() {
		return Origin
	}
	return (d + 2) % 4
}

var orthogonals = [4][2]Direction{
	N: {W, E},
	W: {N, S},
	S: {W, E},
	E: {N, S},
}

// Orthogonals returns the two directions at right angles to d.
func (d Direction) Orthogonals() (Direction, Direction) {
	if !d.Valid() {
		return Origin, Origin
	}
	o := orthogonals[d]
	return o[0], o[1]
}

func (d Direction) String() string {
	switch d {
	case N:
		return "N"
	case W:
		return "W"
	case S:
		return "S"
	case E:
		return "E"
	}
	return "O"
}

// Step is a move from one tile to a neighbour, relative to the direction
// in which the tile has been entered.
type Step int8

// Steps. DontCare is the pseudo-step used for the four neighbours of the root
// tile, where no direction is meaningful yet.
const (
	F        Step = 0 // forward
	L        Step = 1 // left
	R        Step = 2 // right
	DontCare Step = -1
)

// Steps lists the regular steps in the order they are tried.
var Steps = [3]Step{F, L, R}

func (s Step) String() string {
	switch s {
	case F:
		return "F"
	case L:
		return "L"
	case R:
		return "R"
	}
	return "Dc"
}

// TurnFunc maps the forward direction of a tile and a step to the direction
// to reflect into.
type TurnFunc func(forward Direction, step Step) Direction

// turns is indexed by forward direction, then by step.
var turns = [4][3]Direction{
	N: {F: N, L: W, R: E},
	W: {F: W, L: S, R: N},
	S: {F: S, L: E, R: W},
	E: {F: E, L: N, R: S},
}

// Turn is the TurnFunc for the {4,5} tiling, derived from its edge adjacency.
// Combinations without meaning (Origin, DontCare) return Origin.
func Turn(forward Direction, step Step) Direction {
	if !forward.Valid() || step < F || step > R {
		return Origin
	}
	return turns[forward][step]
}

var _ TurnFunc = Turn

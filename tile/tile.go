// Package tile implements tiles of a hyperbolic tiling: closed cycles of
// geodesic arcs.
/*

A tile with p edges is a hyperbolic p-gon in the Poincaré disk. Its edges are
held in creation order; edge i connects to edge i+1 (mod p), sharing one
endpoint. Edges do not have to agree in orientation: reflecting a tile reverses
the direction of every edge, and tiles produced along different paths may
enumerate their edges differently. Operations which need a consistently
oriented cycle use Oriented().

Tiles are immutable. Reflection returns a new tile.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package tile

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/npillmayer/poincare"
	"github.com/npillmayer/poincare/circle"
	"github.com/npillmayer/poincare/geodesic"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'poincare.tile'
func tracer() tracing.Trace {
	return tracing.Select("poincare.tile")
}

var (
	// ErrTooFewEdges is returned for tiles with less than 3 edges.
	ErrTooFewEdges = errors.New("a tile needs at least 3 edges")
	// ErrOpenBoundary is returned if consecutive edges do not connect.
	ErrOpenBoundary = errors.New("tile boundary is not closed")
)

// Tile is an immutable cycle of geodesics.
type Tile struct {
	edges []geodesic.Geodesic
}

// New creates a tile from a sequence of edges. Consecutive edges (including
// last and first) have to share an endpoint, in either orientation.
func New(edges []geodesic.Geodesic) (Tile, error) {
	if len(edges) < 3 {
		return Tile{}, fmt.Errorf("%w: got %d", ErrTooFewEdges, len(edges))
	}
	for i := range edges {
		next := edges[(i+1)%len(edges)]
		if !edges[i].Connects(next) {
			return Tile{}, fmt.Errorf("%w: edge %d does not connect to edge %d",
				ErrOpenBoundary, i, (i+1)%len(edges))
		}
	}
	t := Tile{edges: make([]geodesic.Geodesic, len(edges))}
	copy(t.edges, edges)
	return t, nil
}

// FromVertices creates a tile from p ordered vertices inside the disk unit.
// Edge i is the hyperbolic line segment from vertex i to vertex i+1 (mod p),
// carried by the circle through both vertices and the inversion of one of them
// (or by a diameter of unit).
func FromVertices(vertices []poincare.Pair, unit circle.Circle) (Tile, error) {
	if len(vertices) < 3 {
		return Tile{}, fmt.Errorf("%w: got %d vertices", ErrTooFewEdges, len(vertices))
	}
	edges := make([]geodesic.Geodesic, len(vertices))
	for i, v := range vertices {
		e, err := geodesic.Between(v, vertices[(i+1)%len(vertices)], unit)
		if err != nil {
			return Tile{}, fmt.Errorf("edge %d of tile: %w", i, err)
		}
		edges[i] = e
	}
	return New(edges)
}

// MustFromVertices is like FromVertices, but panics on error.
func MustFromVertices(vertices []poincare.Pair, unit circle.Circle) Tile {
	t, err := FromVertices(vertices, unit)
	if err != nil {
		panic(err)
	}
	return t
}

// --- Builder ---------------------------------------------------------------

// Builder collects the vertices of a tile. It is created by Skeleton.
type Builder struct {
	unit     circle.Circle
	vertices []poincare.Pair
}

// Skeleton starts building a tile inside the disk unit, to be extended by
// subsequent builder calls. The following example builds a hyperbolic triangle:
//
//	t, err := Skeleton(unit).Vertex(p1).Vertex(p2).Vertex(p3).Cycle()
//
// Calling Cycle() connects the vertices by geodesics and returns the tile.
func Skeleton(unit circle.Circle) *Builder {
	return &Builder{unit: unit}
}

// Vertex adds a vertex. Part of builder functionality.
func (b *Builder) Vertex(p poincare.Pair) *Builder {
	b.vertices = append(b.vertices, p)
	return b
}

// Cycle closes the boundary and creates the tile. Part of builder functionality.
func (b *Builder) Cycle() (Tile, error) {
	return FromVertices(b.vertices, b.unit)
}

// --- Accessors -------------------------------------------------------------

// N returns the number of edges (and vertices) of t.
func (t Tile) N() int {
	return len(t.edges)
}

// IsZero is a predicate: is t the zero value (not a valid tile)?
func (t Tile) IsZero() bool {
	return len(t.edges) == 0
}

// Edge returns edge i of t, with i taken modulo N.
func (t Tile) Edge(i int) geodesic.Geodesic {
	n := len(t.edges)
	return t.edges[((i%n)+n)%n]
}

// Edges returns a copy of the edges of t, in creation order.
func (t Tile) Edges() []geodesic.Geodesic {
	e := make([]geodesic.Geodesic, len(t.edges))
	copy(e, t.edges)
	return e
}

// Oriented returns the edges of t in creation order, each one flipped as
// necessary so that every edge ends where the next one starts. The first edge
// keeps its orientation.
func (t Tile) Oriented() []geodesic.Geodesic {
	if len(t.edges) == 0 {
		return nil
	}
	o := make([]geodesic.Geodesic, len(t.edges))
	o[0] = t.edges[0]
	if n := t.edges[1]; !o[0].End().Equal(n.Start()) && !o[0].End().Equal(n.End()) {
		o[0] = o[0].Reversed()
	}
	for i := 1; i < len(t.edges); i++ {
		e := t.edges[i]
		if !e.Start().Equal(o[i-1].End()) {
			e = e.Reversed()
		}
		o[i] = e
	}
	return o
}

// Vertices returns the vertices of t, in boundary order. Vertex i is the
// start point of oriented edge i.
func (t Tile) Vertices() []poincare.Pair {
	o := t.Oriented()
	v := make([]poincare.Pair, len(o))
	for i, e := range o {
		v[i] = e.Start()
	}
	return v
}

// Vertex returns vertex i of t, with i taken modulo N.
func (t Tile) Vertex(i int) poincare.Pair {
	v := t.Vertices()
	n := len(v)
	return v[((i%n)+n)%n]
}

// Centroid returns the average of the vertices of t. For a regular tile
// centered at the disk's center this is the disk's center.
func (t Tile) Centroid() poincare.Pair {
	var c poincare.Pair
	for _, v := range t.Vertices() {
		c += v
	}
	return c / poincare.Pair(complex(float64(len(t.edges)), 0))
}

// Size returns the largest distance of a vertex of t from its centroid.
func (t Tile) Size() float64 {
	c, size := t.Centroid(), 0.0
	for _, v := range t.Vertices() {
		size = math.Max(size, poincare.Dist(c, v))
	}
	return size
}

// --- Operations ------------------------------------------------------------

// ReflectIntoEdge reflects every edge of t through the carrier of edge i,
// which results in the neighbour tile across edge i. Edge i itself becomes its
// reversed copy. Edge indices are kept: edge j of the result is the image of
// edge j of t.
func (t Tile) ReflectIntoEdge(i int) (Tile, error) {
	if i < 0 || i >= len(t.edges) {
		return Tile{}, fmt.Errorf("no edge %d in tile with %d edges", i, len(t.edges))
	}
	mirror := t.edges[i].Mirror()
	edges := make([]geodesic.Geodesic, len(t.edges))
	for j, e := range t.edges {
		if j == i {
			edges[j] = e.Reversed()
			continue
		}
		r, err := e.ReflectAcross(mirror)
		if err != nil {
			return Tile{}, fmt.Errorf("reflect edge %d into edge %d: %w", j, i, err)
		}
		edges[j] = r
	}
	r, err := New(edges)
	if err != nil {
		return Tile{}, fmt.Errorf("reflect into edge %d: %w", i, err)
	}
	tracer().Debugf("reflected tile into edge %d", i)
	return r, nil
}

// Equal is a predicate: do t and o have matching edge sets, independent of
// edge order and orientation?
func (t Tile) Equal(o Tile) bool {
	if len(t.edges) != len(o.edges) {
		return false
	}
	used := make([]bool, len(o.edges))
	for _, e := range t.edges {
		found := false
		for j, f := range o.edges {
			if !used[j] && e.Equal(f) {
				used[j], found = true, true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Key returns a canonical key for t, suitable for hash-based deduplication.
// Vertex coordinates are rounded to multiples of quantum and sorted, which
// makes the key independent of edge order and orientation.
func (t Tile) Key(quantum float64) string {
	if quantum <= 0 {
		quantum = poincare.Epsilon
	}
	vs := t.Vertices()
	ks := make([]string, len(vs))
	for i, v := range vs {
		ks[i] = fmt.Sprintf("%d:%d", quantise(v.X(), quantum), quantise(v.Y(), quantum))
	}
	sort.Strings(ks)
	return strings.Join(ks, "|")
}

func quantise(x, q float64) int64 {
	return int64(math.Round(x / q))
}

// AsString returns a tile's vertices as a (debugging) string,
// in boundary order.
//
// Example:
//
//	(28.28,28.28) .. (-28.28,28.28) .. (-28.28,-28.28) .. (28.28,-28.28) .. cycle
func AsString(t Tile) string {
	var sb strings.Builder
	for i, v := range t.Vertices() {
		if i > 0 {
			sb.WriteString(" .. ")
		}
		sb.WriteString(fmt.Sprintf("(%.4g,%.4g)", v.X(), v.Y()))
	}
	sb.WriteString(" .. cycle")
	return sb.String()
}

func (t Tile) String() string {
	return fmt.Sprintf("tile{%d}%s", len(t.edges), AsString(t))
}

package tiling

import (
	"math"

	"github.com/npillmayer/poincare"
)

// nearIndex finds points inserted earlier within a tolerance of a query point.
//
// Points are filed in square cells of rounded coordinates. The cell size is
// the power of two at or above the point's tolerance, and every point is
// filed on that level and the next coarser one. Two points whose tolerances
// differ by less than a factor of 2 therefore share a level with cells at
// least as large as the query tolerance, and a match lies in the query's cell
// or one of its 8 neighbours.
type nearIndex struct {
	cells  map[cellKey][]int
	points []poincare.Pair
}

type cellKey struct {
	level int
	x, y  int64
}

func newNearIndex() *nearIndex {
	return &nearIndex{cells: make(map[cellKey][]int)}
}

// minTolerance keeps cell levels finite for degenerate input.
const minTolerance = 1e-9

func cellLevel(tol float64) int {
	return int(math.Ceil(math.Log2(math.Max(tol, minTolerance))))
}

func cellOf(p poincare.Pair, level int) cellKey {
	size := math.Ldexp(1, level)
	return cellKey{
		level: level,
		x:     int64(math.Floor(p.X() / size)),
		y:     int64(math.Floor(p.Y() / size)),
	}
}

// insert files p and returns its index, counting from 0 in insertion order.
func (ix *nearIndex) insert(p poincare.Pair, tol float64) int {
	id := len(ix.points)
	ix.points = append(ix.points, p)
	l := cellLevel(tol)
	for _, level := range []int{l, l + 1} {
		k := cellOf(p, level)
		ix.cells[k] = append(ix.cells[k], id)
	}
	return id
}

// find returns the index of the point nearest to p, if it is closer than tol.
func (ix *nearIndex) find(p poincare.Pair, tol float64) (int, bool) {
	best, bestDist := -1, math.Inf(1)
	l := cellLevel(tol)
	for _, level := range []int{l, l + 1} {
		c := cellOf(p, level)
		for dx := int64(-1); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				for _, id := range ix.cells[cellKey{level: level, x: c.x + dx, y: c.y + dy}] {
					if d := poincare.Dist(p, ix.points[id]); d < tol && d < bestDist {
						best, bestDist = id, d
					}
				}
			}
		}
	}
	return best, best >= 0
}

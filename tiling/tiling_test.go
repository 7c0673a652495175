package tiling

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/npillmayer/poincare"
	"github.com/npillmayer/poincare/circle"
	"github.com/npillmayer/poincare/holonomy"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialDistance(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Equal(t, 40.0, InitialDistance(4, 5, 200))
	assert.Equal(t, 199.0, InitialDistance(4, 5, 1000))
	for _, pq := range [][2]int{{3, 7}, {5, 4}, {7, 3}, {6, 6}} {
		d := InitialDistance(pq[0], pq[1], 600)
		assert.Greater(t, d, 0.0)
		assert.Less(t, d, 300.0)
	}
}

func TestNewValidates(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := New(3, 3, 200, 0)
	assert.True(t, errors.Is(err, ErrNotHyperbolic))
	_, err = New(4, 4, 200, 0)
	assert.True(t, errors.Is(err, ErrNotHyperbolic))
	_, err = New(6, 3, 200, 0)
	assert.True(t, errors.Is(err, ErrNotHyperbolic))
	_, err = New(2, 9, 200, 0)
	assert.True(t, errors.Is(err, ErrInvalidSchlaefli))
	_, err = New(5, 4, 0, 0)
	assert.True(t, errors.Is(err, ErrResolution))
	_, err = New(7, 3, 200, 0, WithStrategy(Holonomy{}))
	assert.True(t, errors.Is(err, ErrStrategyMismatch))
}

func TestDefaultStrategy(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	t45, err := New(4, 5, 200, math.Pi/4)
	require.NoError(t, err)
	assert.IsType(t, Holonomy{}, t45.Strategy())
	t54, err := New(5, 4, 200, 0)
	require.NoError(t, err)
	assert.Equal(t, Generic{Tolerance: DefaultTolerance}, t54.Strategy())
	tq, err := New(4, 5, 200, 0, WithTolerance(0.1))
	require.NoError(t, err)
	assert.Equal(t, Generic{Tolerance: 0.1}, tq.Strategy())
	assert.Equal(t, "generic(tolerance=0.2)", Generic{}.String())
}

func TestScenario45(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tl, err := New(4, 5, 200, math.Pi/4)
	require.NoError(t, err)
	assert.Equal(t, 0, tl.Len())
	require.NoError(t, tl.Generate(5))
	tiles := tl.Tiles()
	require.Len(t, tiles, 5)
	root := tiles[0]
	assert.True(t, root.Tile.Equal(tl.Root()))
	assert.Equal(t, "", root.Path)
	for k, v := range root.Tile.Vertices() {
		assert.InDelta(t, 40, v.Abs(), 1e-9)
		assert.InDelta(t, math.Pi/4+float64(k)*math.Pi/2, circle.ToPolar(tl.Unit(), v), 1e-9)
	}
	var paths []string
	for _, e := range tiles[1:] {
		paths = append(paths, e.Path)
		assert.Equal(t, 1, e.Depth)
	}
	assert.Equal(t, []string{"N", "W", "S", "E"}, paths)
	assert.Equal(t, 0, tl.Skipped())
}

func TestGenerateTargets(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tl, err := New(5, 4, 200, 0)
	require.NoError(t, err)
	assert.True(t, errors.Is(tl.Generate(0), ErrTargetCount))
	require.NoError(t, tl.Generate(1))
	assert.Equal(t, 1, tl.Len())
	require.NoError(t, tl.Generate(23))
	assert.Equal(t, 23, tl.Len())
	// every call starts over
	require.NoError(t, tl.Generate(7))
	assert.Equal(t, 7, tl.Len())
}

// legalSteps checks a step word against the pruning rules of the automaton.
func legalSteps(w string) bool {
	if strings.Contains(w, "RR") {
		return false
	}
	seenLeft, rightSince := false, false
	for _, c := range w {
		switch c {
		case 'L':
			if seenLeft && !rightSince {
				return false
			}
			seenLeft, rightSince = true, false
		case 'R':
			rightSince = true
		}
	}
	return true
}

func TestHolonomyPaths(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tl, err := New(4, 5, 1000, math.Pi/4)
	require.NoError(t, err)
	require.NoError(t, tl.Generate(300))
	assert.Equal(t, 0, tl.Skipped())
	paths := make(map[string]bool)
	keys := make(map[string]string)
	for i, e := range tl.Tiles() {
		k := e.Tile.Key(1e-3)
		other, dup := keys[k]
		assert.False(t, dup, "tile %q duplicates %q", e.Path, other)
		keys[k] = e.Path
		assert.False(t, paths[e.Path], "path %q occurs twice", e.Path)
		paths[e.Path] = true
		assert.Equal(t, len(e.Path), e.Depth)
		for _, v := range e.Tile.Vertices() {
			assert.True(t, tl.Unit().Contains(v), "tile %q leaves the disk", e.Path)
		}
		if i == 0 {
			continue
		}
		assert.Contains(t, "NWSE", e.Path[:1])
		assert.NotContains(t, e.Path, "RR")
		assert.True(t, legalSteps(e.Path[1:]), "illegal path %q", e.Path)
	}
}

// closePairs returns the paths of tile pairs whose centroids are closer than
// frac times the larger tile's size.
func closePairs(tiles []Entry, frac float64) [][2]string {
	var close [][2]string
	for i := range tiles {
		ci := tiles[i].Tile.Centroid()
		for j := i + 1; j < len(tiles); j++ {
			size := math.Max(tiles[i].Tile.Size(), tiles[j].Tile.Size())
			if poincare.Dist(ci, tiles[j].Tile.Centroid()) < frac*size {
				close = append(close, [2]string{tiles[i].Path, tiles[j].Path})
			}
		}
	}
	return close
}

func TestGenericTilesAreDistinct(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, res := range []float64{200, 1000} {
		for _, pq := range [][2]int{{3, 7}, {5, 4}, {4, 5}, {6, 4}} {
			tl, err := New(pq[0], pq[1], res, 0.1, WithStrategy(Generic{}))
			require.NoError(t, err)
			require.NoError(t, tl.Generate(120), "{%d,%d}", pq[0], pq[1])
			if res >= 1000 {
				assert.Equal(t, 0, tl.Skipped())
			}
			for _, e := range tl.Tiles() {
				assert.Equal(t, pq[0], e.Tile.N())
			}
			assert.Empty(t, closePairs(tl.Tiles(), 0.25), "{%d,%d} at resolution %g", pq[0], pq[1], res)
		}
	}
}

func depthCounts(tiles []Entry) []int {
	var counts []int
	for _, e := range tiles {
		for len(counts) <= e.Depth {
			counts = append(counts, 0)
		}
		counts[e.Depth]++
	}
	return counts
}

func TestStrategiesAgree(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	rings := []int{1, 4, 12, 28, 64}
	total := 0
	for _, n := range rings {
		total += n
	}
	for _, res := range []float64{1000, 2000} {
		h, err := New(4, 5, res, math.Pi/4)
		require.NoError(t, err)
		require.NoError(t, h.Generate(total))
		assert.Equal(t, rings, depthCounts(h.Tiles()))
		g, err := New(4, 5, res, math.Pi/4, WithStrategy(Generic{}))
		require.NoError(t, err)
		require.NoError(t, g.Generate(total))
		assert.Equal(t, rings, depthCounts(g.Tiles()), "resolution %g", res)
		ix := newNearIndex()
		for _, e := range h.Tiles() {
			ix.insert(e.Tile.Centroid(), DefaultTolerance*e.Tile.Size())
		}
		htiles := h.Tiles()
		for _, e := range g.Tiles() {
			j, ok := ix.find(e.Tile.Centroid(), DefaultTolerance*e.Tile.Size())
			if assert.True(t, ok, "generic tile %q not generated by holonomy", e.Path) {
				assert.Equal(t, e.Depth, htiles[j].Depth, "generic tile %q", e.Path)
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, pq := range [][2]int{{4, 5}, {3, 7}} {
		var runs [3][]Entry
		for i, opt := range []Option{WithWorkers(1), WithWorkers(1), WithWorkers(4)} {
			tl, err := New(pq[0], pq[1], 600, 0.3, opt)
			require.NoError(t, err)
			require.NoError(t, tl.Generate(120))
			runs[i] = tl.Tiles()
		}
		for _, run := range runs[1:] {
			require.Len(t, run, len(runs[0]))
			for i := range run {
				assert.Equal(t, runs[0][i].Path, run[i].Path)
				assert.Equal(t, runs[0][i].Tile.Key(1e-3), run[i].Tile.Key(1e-3))
			}
		}
	}
}

func TestExhausted(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	nowhere := func(holonomy.Direction, holonomy.Step) holonomy.Direction { return holonomy.Origin }
	tl, err := New(4, 5, 200, math.Pi/4, WithStrategy(Holonomy{Turn: nowhere}))
	require.NoError(t, err)
	err = tl.Generate(10)
	assert.True(t, errors.Is(err, ErrExhausted))
	assert.Equal(t, 5, tl.Len())
	assert.Equal(t, 12, tl.Skipped())
}

// hdist is the hyperbolic distance of u and v in a disk of radius r.
func hdist(u, v poincare.Pair, r float64) float64 {
	d := poincare.Dist(u, v)
	return math.Acosh(1 + 2*d*d*r*r/((r*r-u.Abs()*u.Abs())*(r*r-v.Abs()*v.Abs())))
}

func TestMoveInitialTile(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tl, err := New(4, 5, 200, math.Pi/4)
	require.NoError(t, err)
	pristine := tl.Root()
	require.NoError(t, tl.Generate(20))
	target := poincare.P(30, 10)
	require.NoError(t, tl.MoveInitialTile(target))
	assert.Equal(t, 0, tl.Len(), "known tiles are discarded")
	assert.False(t, tl.Root().Equal(pristine))
	assert.True(t, tl.Center().Equal(target))
	// the new root is regular around target
	r := tl.Unit().Radius()
	vs := tl.Root().Vertices()
	d0 := hdist(target, vs[0], r)
	for _, v := range vs {
		assert.InDelta(t, d0, hdist(target, v, r), 1e-6)
		assert.True(t, tl.Unit().Contains(v))
	}
	assert.InDelta(t, hdist(poincare.Origin, pristine.Vertex(0), r), d0, 1e-6)
	require.NoError(t, tl.Generate(60))
	assert.Equal(t, 60, tl.Len())
	// moves are absolute
	require.NoError(t, tl.MoveInitialTile(poincare.P(-20, 40)))
	require.NoError(t, tl.MoveInitialTile(poincare.Origin))
	assert.True(t, tl.Root().Equal(pristine))
	// targets outside the disk are rejected, the root stays
	err = tl.MoveInitialTile(poincare.P(150, 0))
	assert.True(t, errors.Is(err, circle.ErrOutsideDisk))
	assert.True(t, tl.Root().Equal(pristine))
}

func TestAdjacency(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tl, err := New(4, 5, 400, math.Pi/4)
	require.NoError(t, err)
	require.NoError(t, tl.Generate(17))
	adj, err := tl.Adjacency()
	require.NoError(t, err)
	assert.Equal(t, 17, adj.Len())
	assert.Equal(t, 17, adj.Graph().VertexCount())
	n, err := adj.Neighbors(0)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, n)
	layers, err := adj.Layers()
	require.NoError(t, err)
	for i, e := range tl.Tiles() {
		assert.Equal(t, e.Depth, layers[i], "tile %q", e.Path)
	}
	// pentagons with four tiles at every vertex
	p, err := New(5, 4, 400, 0)
	require.NoError(t, err)
	require.NoError(t, p.Generate(6))
	adj, err = p.Adjacency()
	require.NoError(t, err)
	n, err = adj.Neighbors(0)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, n)
	for i := 1; i <= 5; i++ {
		n, err = adj.Neighbors(i)
		require.NoError(t, err)
		assert.Contains(t, n, 0)
	}
	_, err = adj.Neighbors(42)
	assert.Error(t, err)
}

func TestGenericAdjacency(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, pq := range [][2]int{{5, 4}, {3, 7}, {4, 5}} {
		tl, err := New(pq[0], pq[1], 200, 0, WithStrategy(Generic{}))
		require.NoError(t, err)
		require.NoError(t, tl.Generate(120))
		adj, err := tl.Adjacency()
		require.NoError(t, err)
		layers, err := adj.Layers()
		require.NoError(t, err)
		for i, e := range tl.Tiles() {
			assert.Equal(t, e.Depth, layers[i], "{%d,%d}: tile %q", pq[0], pq[1], e.Path)
			n, err := adj.Neighbors(i)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(n), pq[0], "{%d,%d}: tile %q", pq[0], pq[1], e.Path)
		}
		n, err := adj.Neighbors(0)
		require.NoError(t, err)
		assert.Len(t, n, pq[0])
	}
}

package tile

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/poincare"
	"github.com/npillmayer/poincare/circle"
	"github.com/npillmayer/poincare/geodesic"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unit = circle.MustNew(poincare.Origin, 100)

func regular(p int, d, rot float64) []poincare.Pair {
	v := make([]poincare.Pair, p)
	for k := range v {
		v[k] = poincare.Polar(d, rot+float64(k)*2*math.Pi/float64(p))
	}
	return v
}

func TestFromVertices(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	vs := regular(4, 40, math.Pi/4)
	tl, err := FromVertices(vs, unit)
	require.NoError(t, err)
	assert.Equal(t, 4, tl.N())
	for i, v := range tl.Vertices() {
		assert.True(t, v.Equal(vs[i]), "vertex %d: %v ≠ %v", i, v, vs[i])
	}
	for i := 0; i < tl.N(); i++ {
		e := tl.Edge(i)
		// every edge is a hyperbolic line: orthogonal to the disk
		d := e.Circle().Center().Abs()
		r := e.Circle().Radius()
		assert.InDelta(t, d*d, 100*100+r*r, 1e-6*d*d)
	}
	assert.True(t, tl.Edge(-1).Equal(tl.Edge(3)))
	assert.True(t, tl.Centroid().IsOrigin())
	assert.InDelta(t, 40, tl.Size(), 1e-9)
}

func TestNewFailures(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := FromVertices(regular(2, 40, 0.1), unit)
	assert.True(t, errors.Is(err, ErrTooFewEdges))
	tl := MustFromVertices(regular(4, 40, 0.1), unit)
	_, err = New([]geodesic.Geodesic{tl.Edge(0), tl.Edge(2), tl.Edge(1), tl.Edge(3)})
	assert.True(t, errors.Is(err, ErrOpenBoundary))
	_, err = New([]geodesic.Geodesic{tl.Edge(0), tl.Edge(1), tl.Edge(3)})
	assert.True(t, errors.Is(err, ErrOpenBoundary))
	_, err = New([]geodesic.Geodesic{tl.Edge(0).Reversed(), tl.Edge(1), tl.Edge(2).Reversed(), tl.Edge(3)})
	assert.NoError(t, err, "orientation does not matter")
	assert.Panics(t, func() { MustFromVertices(regular(2, 40, 0), unit) })
}

func TestBuilder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tl, err := Skeleton(unit).Vertex(poincare.P(10, 5)).Vertex(poincare.P(-20, 30)).
		Vertex(poincare.P(-10, -40)).Cycle()
	require.NoError(t, err)
	tracer().Infof("tl = %s", AsString(tl))
	assert.Equal(t, 3, tl.N())
	_, err = Skeleton(unit).Vertex(poincare.P(10, 5)).Cycle()
	assert.True(t, errors.Is(err, ErrTooFewEdges))
}

func TestReflectIntoEdgeIsInvolution(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, p := range []int{3, 4, 5, 7} {
		tl := MustFromVertices(regular(p, 35, 0.3), unit)
		for i := 0; i < p; i++ {
			r, err := tl.ReflectIntoEdge(i)
			require.NoError(t, err, "p = %d, edge %d", p, i)
			assert.False(t, r.Equal(tl))
			assert.True(t, r.Edge(i).Equal(tl.Edge(i)), "shared edge")
			rr, err := r.ReflectIntoEdge(i)
			require.NoError(t, err)
			assert.True(t, rr.Equal(tl), "p = %d, edge %d: %s ≠ %s", p, i, AsString(rr), AsString(tl))
			assert.Equal(t, tl.Key(1e-3), rr.Key(1e-3))
		}
	}
	_, err := MustFromVertices(regular(4, 35, 0.3), unit).ReflectIntoEdge(4)
	assert.Error(t, err)
}

func TestReflectedTileStaysInDisk(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tl := MustFromVertices(regular(4, 40, math.Pi/4), unit)
	for i := 0; i < 4; i++ {
		r, err := tl.ReflectIntoEdge(i)
		require.NoError(t, err)
		for _, v := range r.Vertices() {
			assert.True(t, unit.Contains(v), "%v outside disk", v)
		}
		// the neighbour tile lies across edge i, hence its centroid does too
		assert.Greater(t, r.Centroid().Abs(), tl.Edge(i).Mid().Abs())
	}
}

func TestOriented(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tl := MustFromVertices(regular(5, 30, 0), unit)
	r, err := tl.ReflectIntoEdge(2)
	require.NoError(t, err)
	o := r.Oriented()
	require.Len(t, o, 5)
	for i := range o {
		assert.True(t, o[i].End().Equal(o[(i+1)%5].Start()), "oriented edge %d", i)
	}
}

func TestEqualIgnoresOrder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	vs := regular(4, 40, 0.2)
	t1 := MustFromVertices(vs, unit)
	t2 := MustFromVertices([]poincare.Pair{vs[2], vs[3], vs[0], vs[1]}, unit)
	t3 := MustFromVertices([]poincare.Pair{vs[3], vs[2], vs[1], vs[0]}, unit)
	assert.True(t, t1.Equal(t2))
	assert.True(t, t1.Equal(t3))
	assert.Equal(t, t1.Key(1e-3), t2.Key(1e-3))
	assert.Equal(t, t1.Key(1e-3), t3.Key(1e-3))
	t4 := MustFromVertices(regular(4, 41, 0.2), unit)
	assert.False(t, t1.Equal(t4))
	assert.NotEqual(t, t1.Key(1e-3), t4.Key(1e-3))
	assert.False(t, t1.Equal(MustFromVertices(regular(5, 40, 0.2), unit)))
}

func TestAsString(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tl := MustFromVertices([]poincare.Pair{poincare.P(10, 0), poincare.P(0, 10), poincare.P(-10, -5)}, unit)
	assert.Equal(t, "(10,0) .. (0,10) .. (-10,-5) .. cycle", AsString(tl))
}

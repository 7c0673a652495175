package tiling

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvlath/bfs"
	"github.com/katalvlaran/lvlath/core"
	"github.com/npillmayer/poincare"
)

// Adjacency is the neighbourhood graph of the known tiles of a tiling:
// one vertex per tile, and an (undirected) edge for every pair of tiles which
// share a geodesic.
type Adjacency struct {
	g *core.Graph
	n int
}

// vertexID is the graph vertex for tile entry i.
func vertexID(i int) string {
	return "t" + strconv.Itoa(i)
}

func entryIndex(id string) (int, error) {
	if !strings.HasPrefix(id, "t") {
		return -1, fmt.Errorf("not a tile vertex: %q", id)
	}
	return strconv.Atoi(id[1:])
}

// Adjacency builds the neighbourhood graph of the currently known tiles.
// Two edges are shared if their midpoints are closer than half the generic
// match tolerance times the edge's chord length.
func (t *Tiling) Adjacency() (*Adjacency, error) {
	tol := DefaultTolerance
	if s, ok := t.strategy.(Generic); ok {
		tol = s.tolerance()
	}
	g, err := core.NewGraph()
	if err != nil {
		return nil, err
	}
	mids := newNearIndex()
	var owners [][]int // tile entries per edge, indexed like mids
	for i, e := range t.entries {
		if err := g.AddVertex(vertexID(i)); err != nil {
			return nil, err
		}
		for _, edge := range e.Tile.Edges() {
			mid, within := edge.Mid(), tol/2*poincare.Dist(edge.Start(), edge.End())
			if id, ok := mids.find(mid, within); ok {
				owners[id] = append(owners[id], i)
				continue
			}
			mids.insert(mid, within)
			owners = append(owners, []int{i})
		}
	}
	for _, tiles := range owners { // insertion order, for deterministic edge IDs
		for a := 0; a < len(tiles); a++ {
			for b := a + 1; b < len(tiles); b++ {
				from, to := vertexID(tiles[a]), vertexID(tiles[b])
				if from == to || g.HasEdge(from, to) {
					continue
				}
				if _, err := g.AddEdge(from, to, 0); err != nil {
					return nil, err
				}
			}
		}
	}
	tracer().Debugf("adjacency of %d tiles: %d neighbour pairs", g.VertexCount(), g.EdgeCount())
	return &Adjacency{g: g, n: len(t.entries)}, nil
}

// Graph returns the underlying graph. Vertex IDs are "t<i>" for tile entry i.
func (a *Adjacency) Graph() *core.Graph {
	return a.g
}

// Len returns the number of tiles in the graph.
func (a *Adjacency) Len() int {
	return a.n
}

// Neighbors returns the entry indices of the tiles sharing an edge with
// tile entry i, in ascending order.
func (a *Adjacency) Neighbors(i int) ([]int, error) {
	ids, err := a.g.NeighborIDs(vertexID(i))
	if err != nil {
		return nil, fmt.Errorf("neighbours of tile %d: %w", i, err)
	}
	n := make([]int, 0, len(ids))
	for _, id := range ids {
		j, err := entryIndex(id)
		if err != nil {
			return nil, err
		}
		n = append(n, j)
	}
	sort.Ints(n)
	return n, nil
}

// Layers returns for every tile entry its ring number, i.e. its distance from
// the root tile in the neighbourhood graph. Tiles not connected to the root
// have layer -1.
func (a *Adjacency) Layers() ([]int, error) {
	layers := make([]int, a.n)
	if a.n == 0 {
		return layers, nil
	}
	res, err := bfs.BFS(a.g, vertexID(0))
	if err != nil {
		return nil, fmt.Errorf("tile layers: %w", err)
	}
	for i := range layers {
		layers[i] = -1
		if d, ok := res.Depth[vertexID(i)]; ok {
			layers[i] = d
		}
	}
	return layers, nil
}

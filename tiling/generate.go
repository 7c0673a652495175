package tiling

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/poincare/holonomy"
	"github.com/npillmayer/poincare/tile"
	"golang.org/x/sync/errgroup"
)

// Generate computes the tiling, starting from the root tile, until target
// tiles are known (the root tile included). Generation stops the instant the
// target is reached. Every call regenerates from scratch.
//
// Reflections which fail for geometric reasons are skipped. If the tiling
// runs out of tiles before reaching the target, ErrExhausted is returned;
// the tiles generated so far remain available.
func (t *Tiling) Generate(target int) error {
	if target <= 0 {
		return fmt.Errorf("%w: %d", ErrTargetCount, target)
	}
	t.skipped = 0
	var err error
	switch s := t.strategy.(type) {
	case Generic:
		err = t.generateGeneric(target, s)
	case Holonomy:
		err = t.generateHolonomy(target, s)
	default:
		err = fmt.Errorf("unknown strategy %v", s)
	}
	tracer().Infof("tiling {%d,%d}: %d tiles generated (%d reflections skipped), strategy %s",
		t.p, t.q, len(t.entries), t.skipped, t.strategy)
	return err
}

// Skipped returns the number of reflections the last call to Generate had to
// skip because of geometric failures.
func (t *Tiling) Skipped() int {
	return t.skipped
}

func (t *Tiling) exhausted(target int) error {
	return fmt.Errorf("%w: %d of %d tiles", ErrExhausted, len(t.entries), target)
}

// --- Generic strategy ------------------------------------------------------

type genericItem struct {
	entry int // index into t.entries
	from  int // edge shared with the parent, -1 for the root
}

func (t *Tiling) generateGeneric(target int, s Generic) error {
	tol := s.tolerance()
	t.entries = []Entry{{Tile: t.root}}
	if target == 1 {
		return nil
	}
	known := newNearIndex()
	known.insert(t.root.Centroid(), tol*t.root.Size())
	queue := []genericItem{{entry: 0, from: -1}}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		parent := t.entries[item.entry]
		children := reflectAll(t.workers, t.p, func(i int) (tile.Tile, error) {
			if i == item.from { // reflecting back yields the parent
				return tile.Tile{}, nil
			}
			return parent.Tile.ReflectIntoEdge(i)
		})
		for i, c := range children {
			if c.err != nil {
				tracer().Errorf("skipping reflection of tile %q into edge %d: %v", parent.Path, i, c.err)
				t.skipped++
				continue
			}
			if c.tile.IsZero() {
				continue
			}
			centroid, within := c.tile.Centroid(), tol*c.tile.Size()
			if _, ok := known.find(centroid, within); ok {
				continue
			}
			known.insert(centroid, within)
			t.entries = append(t.entries, Entry{
				Tile:  c.tile,
				Path:  joinPath(parent.Path, strconv.Itoa(i)),
				Depth: parent.Depth + 1,
			})
			if len(t.entries) >= target {
				return nil
			}
			queue = append(queue, genericItem{entry: len(t.entries) - 1, from: i})
		}
	}
	return t.exhausted(target)
}

func joinPath(parent, step string) string {
	if parent == "" {
		return step
	}
	return parent + "." + step
}

// --- Holonomy strategy -----------------------------------------------------

type holonomyItem struct {
	h     holonomy.Tile
	depth int
}

func (t *Tiling) generateHolonomy(target int, s Holonomy) error {
	turn := s.turn()
	root, err := holonomy.NewRoot(t.root)
	if err != nil {
		return err
	}
	t.entries = []Entry{{Tile: t.root}}
	if target == 1 {
		return nil
	}
	var queue []holonomyItem
	add := func(h holonomy.Tile, depth int) bool {
		t.entries = append(t.entries, Entry{Tile: h.Tile(), Path: h.Path(), Depth: depth})
		queue = append(queue, holonomyItem{h: h, depth: depth})
		return len(t.entries) >= target
	}
	seeds := reflectAll(t.workers, len(holonomy.Directions), func(i int) (holonomy.Tile, error) {
		return root.ReflectIntoDirection(holonomy.Directions[i], holonomy.DontCare)
	})
	for i, c := range seeds {
		if c.err != nil {
			tracer().Errorf("skipping root reflection into %s: %v", holonomy.Directions[i], c.err)
			t.skipped++
			continue
		}
		if add(c.tile, 1) {
			return nil
		}
	}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		h := item.h
		children := reflectAll(t.workers, len(holonomy.Steps), func(i int) (holonomy.Tile, error) {
			step := holonomy.Steps[i]
			if !h.State().Legal(step) {
				return holonomy.Tile{}, nil
			}
			return h.ReflectIntoDirection(turn(h.Forward(), step), step)
		})
		for i, c := range children {
			if c.err != nil {
				tracer().Errorf("skipping step %s from tile %q: %v", holonomy.Steps[i], h.Path(), c.err)
				t.skipped++
				continue
			}
			if c.tile.Tile().IsZero() {
				continue // illegal step
			}
			if add(c.tile, item.depth+1) {
				return nil
			}
		}
	}
	return t.exhausted(target)
}

// --- Reflection workers ----------------------------------------------------

type reflection[T any] struct {
	tile T
	err  error
}

// reflectAll calls reflect for 0…n-1, with up to workers calls running
// concurrently. Results are returned in call order.
func reflectAll[T any](workers, n int, reflect func(i int) (T, error)) []reflection[T] {
	results := make([]reflection[T], n)
	if workers <= 1 {
		for i := range results {
			results[i].tile, results[i].err = reflect(i)
		}
		return results
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			results[i].tile, results[i].err = reflect(i)
			return nil
		})
	}
	_ = g.Wait() // errors are kept per reflection
	return results
}

// Package render draws generated tilings, either as raster images (using gg)
// or as SVG documents.
//
// Disk coordinates have their origin at the disk center with the y-axis
// pointing upwards. They are mapped onto an image of Options.Size pixels
// square, with the disk filling the image.
/*

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package render

import (
	"crypto/md5"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/golang/geo/r2"
	"github.com/npillmayer/poincare"
	"github.com/npillmayer/poincare/geodesic"
	"github.com/npillmayer/poincare/polygon"
	"github.com/npillmayer/poincare/tile"
	"github.com/npillmayer/poincare/tiling"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'poincare.render'
func tracer() tracing.Trace {
	return tracing.Select("poincare.render")
}

// ErrNoTiles is returned when asked to draw a tiling without known tiles.
var ErrNoTiles = errors.New("tiling has no tiles, call Generate first")

// Options control the appearance of a rendering. Zero values select defaults.
type Options struct {
	Size       int     // width and height of the image in pixels; default: the tiling's resolution
	Background string  // hex colour, default "#ffffff"
	Stroke     string  // hex colour of tile edges and the disk boundary, default "#000000"
	LineWidth  float64 // in pixels, default 1
	Fill       bool    // fill tiles with a colour derived from their path
	Segments   int     // edge subdivisions for filled outlines, default 16
	MinPixels  float64 // tiles with a smaller extent are skipped, default 0.5
}

func (o Options) withDefaults(t *tiling.Tiling) Options {
	if o.Size <= 0 {
		o.Size = int(math.Ceil(t.Resolution()))
	}
	if o.Background == "" {
		o.Background = "#ffffff"
	}
	if o.Stroke == "" {
		o.Stroke = "#000000"
	}
	if o.LineWidth <= 0 {
		o.LineWidth = 1
	}
	if o.Segments <= 0 {
		o.Segments = 16
	}
	if o.MinPixels <= 0 {
		o.MinPixels = 0.5
	}
	return o
}

// view maps disk coordinates to pixels.
type view struct {
	toImage poincare.AT
	scale   float64 // pixels per disk unit
}

func newView(t *tiling.Tiling, size int) view {
	half := float64(size) / 2
	scale := float64(size) / t.Resolution()
	return view{
		toImage: poincare.ScalingXY(scale, -scale).Combine(poincare.Translation(poincare.P(half, half))),
		scale:   scale,
	}
}

func (v view) point(p poincare.Pair) r2.Point {
	x, y := v.toImage.Transform(p).F()
	return r2.Point{X: x, Y: y}
}

// bounds returns the pixel bounding box of a tile's vertices.
func (v view) bounds(t tile.Tile) r2.Rect {
	r := r2.EmptyRect()
	for _, p := range t.Vertices() {
		r = r.AddPoint(v.point(p))
	}
	return r
}

func (v view) tooSmall(t tile.Tile, min float64) bool {
	size := v.bounds(t).Size()
	return math.Max(size.X, size.Y) < min
}

// PathColor returns the fill colour for a tile generated by path: the first
// three bytes of the MD5 sum of the path.
func PathColor(path string) gg.RGBA {
	h := md5.Sum([]byte(path))
	return gg.RGB(float64(h[0])/255, float64(h[1])/255, float64(h[2])/255)
}

// Render draws the known tiles of t and returns the drawing context, ready for
// encoding.
func Render(t *tiling.Tiling, opts Options) (*gg.Context, error) {
	if t.Len() == 0 {
		return nil, ErrNoTiles
	}
	opts = opts.withDefaults(t)
	v := newView(t, opts.Size)
	dc := gg.NewContext(opts.Size, opts.Size)
	dc.ClearWithColor(gg.Hex(opts.Background))
	dc.SetLineWidth(opts.LineWidth)
	drawn, skipped := 0, 0
	for _, e := range t.Tiles() {
		if v.tooSmall(e.Tile, opts.MinPixels) {
			skipped++
			continue
		}
		if opts.Fill {
			if err := fillTile(dc, v, e, opts.Segments); err != nil {
				return nil, err
			}
		}
		dc.SetColor(gg.Hex(opts.Stroke).Color())
		for _, edge := range e.Tile.Edges() {
			if edge.Degenerate() {
				continue
			}
			drawEdge(dc, v, edge)
			if err := dc.Stroke(); err != nil {
				return nil, fmt.Errorf("stroke edge of tile %q: %w", e.Path, err)
			}
		}
		drawn++
	}
	c := v.point(t.Unit().Center())
	dc.SetColor(gg.Hex(opts.Stroke).Color())
	dc.DrawCircle(c.X, c.Y, t.Unit().Radius()*v.scale)
	if err := dc.Stroke(); err != nil {
		return nil, fmt.Errorf("stroke disk boundary: %w", err)
	}
	tracer().Infof("rendered %d tiles (%d too small) at %d×%d", drawn, skipped, opts.Size, opts.Size)
	return dc, nil
}

// WritePNG renders t and writes it to w as PNG.
func WritePNG(w io.Writer, t *tiling.Tiling, opts Options) error {
	dc, err := Render(t, opts)
	if err != nil {
		return err
	}
	err = dc.EncodePNG(w)
	if cerr := dc.Close(); err == nil {
		err = cerr
	}
	return err
}

func fillTile(dc *gg.Context, v view, e tiling.Entry, segments int) error {
	pg := polygon.FromTile(e.Tile, segments)
	if pg.N() < 3 {
		return nil
	}
	for i := 0; i < pg.N(); i++ {
		p := v.point(pg.Z(i))
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
		} else {
			dc.LineTo(p.X, p.Y)
		}
	}
	dc.ClosePath()
	dc.SetColor(PathColor(e.Path).Color())
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("fill tile %q: %w", e.Path, err)
	}
	return nil
}

// drawEdge adds edge to the current path. Arcs run counter-clockwise in disk
// coordinates, which is clockwise on the image.
func drawEdge(dc *gg.Context, v view, edge geodesic.Geodesic) {
	if edge.IsStraight() {
		s, e := v.point(edge.Start()), v.point(edge.End())
		dc.MoveTo(s.X, s.Y)
		dc.LineTo(e.X, e.Y)
		return
	}
	c := v.point(edge.Circle().Center())
	a, sweep := edge.StartAngle(), edge.Sweep()
	dc.DrawArc(c.X, c.Y, edge.Circle().Radius()*v.scale, -(a + sweep), -a)
}

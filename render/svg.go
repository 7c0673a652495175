package render

import (
	"fmt"
	"io"

	"github.com/gogpu/gg"
	"github.com/jbeda/geom"
	"github.com/npillmayer/poincare"
	"github.com/npillmayer/poincare/geodesic"
	"github.com/npillmayer/poincare/tiling"
)

// svgWriter writes SVG elements to w and keeps the first write error.
type svgWriter struct {
	w   io.Writer
	err error
}

func (svg *svgWriter) printf(format string, a ...interface{}) {
	if svg.err != nil {
		return
	}
	_, svg.err = fmt.Fprintf(svg.w, format, a...)
}

func (svg *svgWriter) start(viewBox geom.Rect) {
	svg.printf(`<?xml version="1.0"?>
<svg version="1.1" viewBox="%f %f %f %f" width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
`, viewBox.Min.X, viewBox.Min.Y, viewBox.Width(), viewBox.Height(),
		int(viewBox.Width()), int(viewBox.Height()))
}

func (svg *svgWriter) end() {
	svg.printf("</svg>\n")
}

func (svg *svgWriter) circle(c geom.Coord, r float64, style string) {
	svg.printf("<circle cx='%f' cy='%f' r='%f' style='%s'/>\n", c.X, c.Y, r, style)
}

func (svg *svgWriter) startPath(p geom.Coord, style string) {
	svg.printf("<path style='%s' d='M%f,%f", style, p.X, p.Y)
}

func (svg *svgWriter) lineTo(p geom.Coord) {
	svg.printf(" L%f,%f", p.X, p.Y)
}

func (svg *svgWriter) arcTo(p geom.Coord, r float64, sweep bool) {
	svg.printf(" A%f,%f 0 0,%s %f,%f", r, r, onezero(sweep), p.X, p.Y)
}

func (svg *svgWriter) endPath(closed bool) {
	if closed {
		svg.printf(" Z")
	}
	svg.printf("'/>\n")
}

func onezero(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func (v view) coord(p poincare.Pair) geom.Coord {
	q := v.point(p)
	return geom.Coord{X: q.X, Y: q.Y}
}

// sweepFlag tells if an SVG arc from edge's start to its end has to run in
// positive image angle direction, i.e. if start, mid and end turn clockwise
// on the image.
func (v view) sweepFlag(edge geodesic.Geodesic) bool {
	s, m, e := v.coord(edge.Start()), v.coord(edge.Mid()), v.coord(edge.End())
	return (m.X-s.X)*(e.Y-s.Y)-(m.Y-s.Y)*(e.X-s.X) > 0
}

// WriteSVG writes the known tiles of t to w as an SVG document. Every tile
// becomes a closed path of arcs and lines.
func WriteSVG(w io.Writer, t *tiling.Tiling, opts Options) error {
	if t.Len() == 0 {
		return ErrNoTiles
	}
	opts = opts.withDefaults(t)
	v := newView(t, opts.Size)
	box := geom.Rect{Min: geom.Coord{}, Max: geom.Coord{}}
	box.ExpandToContainCoord(geom.Coord{X: float64(opts.Size), Y: float64(opts.Size)})
	svg := &svgWriter{w: w}
	svg.start(box)
	svg.printf("<rect width='100%%' height='100%%' style='fill: %s'/>\n", opts.Background)
	stroke := fmt.Sprintf("stroke: %s; stroke-width: %g; stroke-linejoin: round", opts.Stroke, opts.LineWidth)
	drawn := 0
	for _, e := range t.Tiles() {
		if v.tooSmall(e.Tile, opts.MinPixels) {
			continue
		}
		fill := "fill: none"
		if opts.Fill {
			fill = "fill: " + hexColor(PathColor(e.Path))
		}
		edges := e.Tile.Oriented()
		svg.startPath(v.coord(edges[0].Start()), stroke+"; "+fill)
		for _, edge := range edges {
			to := v.coord(edge.End())
			if edge.IsStraight() || edge.Degenerate() {
				svg.lineTo(to)
				continue
			}
			svg.arcTo(to, edge.Circle().Radius()*v.scale, v.sweepFlag(edge))
		}
		svg.endPath(true)
		drawn++
	}
	svg.circle(v.coord(t.Unit().Center()), t.Unit().Radius()*v.scale, stroke+"; fill: none")
	svg.end()
	if svg.err != nil {
		return fmt.Errorf("write SVG: %w", svg.err)
	}
	tracer().Infof("wrote %d tiles as SVG", drawn)
	return nil
}

func hexColor(c gg.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", uint8(c.R*255+0.5), uint8(c.G*255+0.5), uint8(c.B*255+0.5))
}

/*
Command poincare draws a regular hyperbolic tiling {p,q} in the Poincaré disk.

	poincare -p 4 -q 5 -resolution 800 -tiles 400 -fill -out tiling.png

The output format is chosen by the file extension of -out: ".svg" writes an
SVG document, everything else a PNG image. Logging is done with glog, see
-logtostderr and -v.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/npillmayer/poincare"
	"github.com/npillmayer/poincare/render"
	"github.com/npillmayer/poincare/tiling"
)

type config struct {
	p, q       int
	resolution float64
	rotation   float64
	tiles      int
	centerX    float64
	centerY    float64
	generic    bool
	workers    int
	fill       bool
	out        string
}

func parseFlags(fs *flag.FlagSet, args []string) (config, error) {
	var c config
	fs.IntVar(&c.p, "p", 4, "number of edges per tile")
	fs.IntVar(&c.q, "q", 5, "number of tiles meeting at a vertex")
	fs.Float64Var(&c.resolution, "resolution", 800, "diameter of the disk in pixels")
	fs.Float64Var(&c.rotation, "rotation", 0, "rotation of the root tile in degrees")
	fs.IntVar(&c.tiles, "tiles", 200, "number of tiles to generate")
	fs.Float64Var(&c.centerX, "center-x", 0, "x coordinate to move the root tile to")
	fs.Float64Var(&c.centerY, "center-y", 0, "y coordinate to move the root tile to")
	fs.BoolVar(&c.generic, "generic", false, "use the generic strategy even for {4,5}")
	fs.IntVar(&c.workers, "workers", 1, "number of concurrent reflections per tile")
	fs.BoolVar(&c.fill, "fill", false, "fill tiles with colours derived from their paths")
	fs.StringVar(&c.out, "out", "tiling.png", "output file (.png or .svg)")
	if err := fs.Parse(args); err != nil {
		return c, err
	}
	if c.tiles <= 0 {
		return c, fmt.Errorf("-tiles must be positive, is %d", c.tiles)
	}
	if c.out == "" {
		return c, errors.New("no output file given")
	}
	return c, nil
}

func (c config) options() []tiling.Option {
	opts := []tiling.Option{tiling.WithWorkers(c.workers)}
	if c.generic {
		opts = append(opts, tiling.WithStrategy(tiling.Generic{}))
	}
	return opts
}

func run(c config) error {
	t, err := tiling.New(c.p, c.q, c.resolution, c.rotation*poincare.Deg2Rad, c.options()...)
	if err != nil {
		return err
	}
	if center := poincare.P(c.centerX, c.centerY); !center.IsOrigin() {
		if err = t.MoveInitialTile(center); err != nil {
			return err
		}
	}
	if err = t.Generate(c.tiles); err != nil {
		if !errors.Is(err, tiling.ErrExhausted) {
			return err
		}
		glog.Warningf("%v, drawing what there is", err)
	}
	if t.Skipped() > 0 {
		glog.Warningf("%d reflections had to be skipped", t.Skipped())
	}
	glog.Infof("{%d,%d}: %d tiles, strategy %s", c.p, c.q, t.Len(), t.Strategy())
	f, err := os.Create(c.out)
	if err != nil {
		return err
	}
	opts := render.Options{Fill: c.fill}
	if strings.EqualFold(filepath.Ext(c.out), ".svg") {
		err = render.WriteSVG(f, t, opts)
	} else {
		err = render.WritePNG(f, t, opts)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", c.out, err)
	}
	glog.Infof("wrote %s", c.out)
	return nil
}

func main() {
	// glog has registered its flags on the default set
	c, err := parseFlags(flag.CommandLine, os.Args[1:])
	defer glog.Flush()
	if err != nil {
		glog.Errorf("configuration: %v", err)
		glog.Flush()
		os.Exit(2)
	}
	if err := run(c); err != nil {
		glog.Errorf("%v", err)
		glog.Flush()
		os.Exit(1)
	}
}

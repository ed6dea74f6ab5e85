package main

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/scene"
	"github.com/gogpu/drawing/surface"
)

type renderer struct {
	conf      Config
	scenePath string
}

func (r *renderer) options() []drawing.Option {
	return []drawing.Option{
		drawing.WithOutline(r.conf.Outline),
		drawing.WithRenderFilters(!r.conf.NoFilters),
		drawing.WithFilterQuality(r.conf.FilterQuality),
		drawing.WithCacheBudget(r.conf.CacheBudget),
		drawing.WithWorkers(r.conf.Workers),
	}
}

func (r *renderer) outputPath() string {
	if r.conf.Output != "" {
		return r.conf.Output
	}
	return strings.TrimSuffix(r.scenePath, filepath.Ext(r.scenePath)) + ".png"
}

// render loads the scene, renders it at the configured scale and writes
// the PNG.
func (r *renderer) render() error {
	start := time.Now()
	s, err := scene.LoadFile(r.scenePath, r.options()...)
	if err != nil {
		return err
	}
	k := r.conf.Scale
	area := image.Rect(0, 0, int(math.Ceil(float64(s.Width)*k)), int(math.Ceil(float64(s.Height)*k)))
	if area.Empty() {
		return fmt.Errorf("%s: scene has no size", r.scenePath)
	}
	out := s.RenderTransformed(geom.Scale(k, k), area)

	path := r.outputPath()
	if err := writePNG(path, out); err != nil {
		return err
	}
	drawing.Logger().Info("rendered", "scene", r.scenePath, "output", path,
		"size", area.Size(), "elapsed", time.Since(start))
	return nil
}

func writePNG(path string, s *surface.Surface) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := png.Encode(w, s); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

package scene

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // image items
	_ "image/png"  // image items
	"os"
	"path/filepath"
	"sort"

	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/geom"
	"github.com/gogpu/drawing/surface"
	"github.com/gogpu/drawing/text"
	"golang.org/x/image/font/gofont/goregular"
	"gopkg.in/yaml.v3"
)

// Scene is a loaded document.
type Scene struct {
	Drawing    *drawing.Drawing
	Root       *drawing.Group
	Width      int
	Height     int
	Background uint32 // 0xRRGGBBAA

	// items by id
	ids map[string]drawing.Node
}

// Item returns the item declared with id, or nil.
func (s *Scene) Item(id string) drawing.Node {
	return s.ids[id]
}

// Area returns the device rectangle of the scene.
func (s *Scene) Area() image.Rectangle {
	return image.Rect(0, 0, s.Width, s.Height)
}

// Render updates the drawing and renders it onto a new surface filled
// with the background color.
func (s *Scene) Render() *surface.Surface {
	return s.RenderTransformed(geom.Identity(), s.Area())
}

// RenderTransformed renders the device area of the scene seen through
// ctm.
func (s *Scene) RenderTransformed(ctm geom.Affine, area image.Rectangle) *surface.Surface {
	s.Drawing.Update(area, drawing.UpdateContext{CTM: ctm}, drawing.StateAll, drawing.StateAll)
	out := surface.NewArea(surface.FormatARGB32, area)
	out.Fill(uint32(surface.SolidRGBA32(s.Background)))
	s.Drawing.Render(drawing.NewContext(out), area, 0)
	return out
}

// LoadFile reads and parses a scene file. Relative image and font paths
// are resolved against the directory of the file.
func LoadFile(path string, opts ...drawing.Option) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return parse(data, filepath.Dir(path), opts)
}

// Parse parses a scene document. Relative paths are resolved against the
// working directory.
func Parse(data []byte, opts ...drawing.Option) (*Scene, error) {
	return parse(data, ".", opts)
}

func parse(data []byte, dir string, opts []drawing.Option) (*Scene, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("scene: decode: %w", err)
	}
	warnExtra("document", doc.Extra)

	bg, _, err := ParseColor(doc.Background)
	if err != nil {
		return nil, err
	}
	d := drawing.New(opts...)
	root := d.NewGroup()
	root.SetPickChildren(true)
	d.SetRoot(root)

	b := &builder{
		dir:   dir,
		d:     d,
		fonts: make(map[string]*text.Font),
		scene: &Scene{
			Drawing:    d,
			Root:       root,
			Width:      doc.Width,
			Height:     doc.Height,
			Background: bg,
			ids:        make(map[string]drawing.Node),
		},
	}
	if err := b.loadFonts(doc.Fonts); err != nil {
		return nil, err
	}
	for i := range doc.Items {
		n, err := b.item(&doc.Items[i])
		if err != nil {
			return nil, err
		}
		root.AppendChild(n)
	}
	drawing.Logger().Debug("scene loaded", "items", len(b.scene.ids), "width", doc.Width, "height", doc.Height)
	return b.scene, nil
}

type builder struct {
	dir   string
	d     *drawing.Drawing
	fonts map[string]*text.Font
	scene *Scene
}

func (b *builder) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(b.dir, p)
}

func (b *builder) loadFonts(files map[string]string) error {
	def, err := text.ParseFont(goregular.TTF)
	if err != nil {
		return err
	}
	b.fonts[""] = def
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		data, err := os.ReadFile(b.path(files[name]))
		if err != nil {
			return fmt.Errorf("scene: font %s: %w", name, err)
		}
		f, err := text.ParseFont(data)
		if err != nil {
			return fmt.Errorf("scene: font %s: %w", name, err)
		}
		b.fonts[name] = f
	}
	return nil
}

func warnExtra(where string, extra map[string]any) {
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		drawing.Logger().Warn("scene: unknown key ignored", "in", where, "key", k)
	}
}

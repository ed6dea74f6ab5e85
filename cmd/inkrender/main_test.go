package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/drawing/filter"
)

const testScene = `
width: 20
height: 10
background: white
items:
  - type: rect
    width: 10
    height: 10
    fill: red
`

func writeScene(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(testScene), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	conf, err := loadConfig(nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if conf.Scale != 1 || conf.FilterQuality != filter.QualityBest || conf.Debounce != 300*time.Millisecond {
		t.Errorf("defaults = %+v", conf)
	}
}

func TestLoadConfigSources(t *testing.T) {
	file := filepath.Join(t.TempDir(), "inkrender.yaml")
	content := "scale: 3\nfilter_quality: worse\ndebounce: 1s\noutline: true\n"
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INKRENDER_SCALE", "2")

	conf, err := loadConfig(nil, file)
	if err != nil {
		t.Fatal(err)
	}
	if conf.Scale != 2 {
		t.Errorf("scale = %v, environment should win over the file", conf.Scale)
	}
	if conf.FilterQuality != filter.QualityWorse || conf.Debounce != time.Second || !conf.Outline {
		t.Errorf("config = %+v", conf)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := loadConfig(nil, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing config file accepted")
	}
	t.Setenv("INKRENDER_FILTER_QUALITY", "superb")
	if _, err := loadConfig(nil, ""); err == nil {
		t.Error("unknown filter quality accepted")
	}
}

func TestRenderCommand(t *testing.T) {
	in := writeScene(t)
	out := filepath.Join(t.TempDir(), "out.png")

	cmd := rootCommand()
	cmd.SetArgs([]string{in, "-o", out, "--scale", "2"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Size(); got.X != 40 || got.Y != 20 {
		t.Errorf("output size = %v, want 40x20", got)
	}
	r, g, _, _ := img.At(5, 5).RGBA()
	if r>>8 != 0xff || g>>8 != 0 {
		t.Errorf("pixel (5,5) = %v, want red", img.At(5, 5))
	}
	r, g, _, _ = img.At(30, 5).RGBA()
	if r>>8 != 0xff || g>>8 != 0xff {
		t.Errorf("pixel (30,5) = %v, want white", img.At(30, 5))
	}
}

func TestDefaultOutputPath(t *testing.T) {
	r := &renderer{scenePath: "dir/poster.yaml"}
	if got := r.outputPath(); got != "dir/poster.png" {
		t.Errorf("outputPath = %q", got)
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	cmd := rootCommand()
	cmd.SetArgs([]string{"version"})
	cmd.SetOut(&buf)
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "inkrender ") {
		t.Errorf("version output = %q", buf.String())
	}
}

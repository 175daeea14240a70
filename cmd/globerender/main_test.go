package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/globe/config"
	gimage "github.com/gogpu/globe/internal/image"
)

func writeWorld(t *testing.T, dir string) string {
	t.Helper()
	world := image.NewRGBA(image.Rect(0, 0, 128, 64))
	for y := range 64 {
		for x := range 128 {
			world.SetRGBA(x, y, color.RGBA{R: uint8(x * 2), G: uint8(y * 4), B: 0x80, A: 0xff})
		}
	}
	path := filepath.Join(dir, "world.png")
	if err := gimage.SavePNG(path, world); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	world := writeWorld(t, dir)
	output := filepath.Join(dir, "globe.png")

	logs, err := execute(t, world,
		"-o", output, "--width", "96", "--height", "64", "-r", "28",
		"--tile-width", "16", "--tile-height", "16", "--lat", "30", "-p", "2")
	if err != nil {
		t.Fatalf("execute: %v\n%s", err, logs)
	}

	img, _, err := gimage.Load(output)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 96 || b.Dy() != 64 {
		t.Errorf("output size = %v", b)
	}
	if _, _, _, a := img.At(48, 32).RGBA(); a != 0xffff {
		t.Errorf("globe center alpha = %#x", a)
	}
	if !strings.Contains(logs, "frame written") {
		t.Errorf("missing frame log:\n%s", logs)
	}
}

func TestRenderCommandConfigAndFrames(t *testing.T) {
	dir := t.TempDir()
	world := writeWorld(t, dir)
	cfgPath := filepath.Join(dir, "globe.yaml")
	cfg := []byte("world: " + world + "\n" +
		"output: " + filepath.Join(dir, "spin.png") + "\n" +
		"width: 40\nheight: 40\nradius: 15\nframes: 2\nformat: gray\n" +
		"view:\n  spin: 90\n" +
		"tiles:\n  width: 8\n  height: 8\n  depth: indexed\n  scaler: nearest\n")
	if err := os.WriteFile(cfgPath, cfg, 0o600); err != nil {
		t.Fatal(err)
	}

	// --frames on the command line wins over the file.
	if logs, err := execute(t, "--config", cfgPath, "--frames", "3"); err != nil {
		t.Fatalf("execute: %v\n%s", err, logs)
	}
	for i := range 3 {
		path := framePath(filepath.Join(dir, "spin.png"), i, 3)
		img, _, err := gimage.Load(path)
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if _, ok := img.(*image.Gray); !ok {
			t.Errorf("frame %d decoded as %T, want gray", i, img)
		}
	}
}

func TestRenderCommandInvalid(t *testing.T) {
	if _, err := execute(t, "--width", "100"); err == nil || !strings.Contains(err.Error(), "world") {
		t.Errorf("missing world error = %v", err)
	}
	if _, err := execute(t, "w.png", "--scaler", "lanczos"); err == nil {
		t.Error("unknown scaler accepted")
	}
	if _, err := execute(t, filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("missing world image accepted")
	}
}

func TestFormatsCommand(t *testing.T) {
	out, err := execute(t, "formats")
	if err != nil {
		t.Fatal(err)
	}
	if out != "gray\nrgba\n" {
		t.Errorf("formats output = %q", out)
	}
}

func TestFramePath(t *testing.T) {
	tests := []struct {
		output    string
		i, frames int
		want      string
	}{
		{"globe.png", 0, 1, "globe.png"},
		{"globe.png", 0, 2, "globe-000.png"},
		{"out/spin.png", 12, 36, "out/spin-012.png"},
		{"noext", 1, 2, "noext-001"},
	}
	for _, tt := range tests {
		if got := framePath(tt.output, tt.i, tt.frames); got != tt.want {
			t.Errorf("framePath(%q, %d, %d) = %q, want %q", tt.output, tt.i, tt.frames, got, tt.want)
		}
	}

	usage := newRootCommand().Flags().Lookup("output").Usage
	if !strings.Contains(usage, "first included") {
		t.Errorf("--output usage %q does not say the first frame is numbered too", usage)
	}
}

func TestOverride(t *testing.T) {
	cfg := config.Default()
	flags := config.Default()
	flags.Radius = 1
	flags.View.Lat = 12
	flags.Tiles.Scaler = config.ScalerCatmullRom

	override(&cfg, &flags, "radius")
	override(&cfg, &flags, "scaler")
	if cfg.Radius != 1 || cfg.Tiles.Scaler != config.ScalerCatmullRom {
		t.Errorf("override did not copy flags: %+v", cfg)
	}
	if cfg.View.Lat != 0 {
		t.Errorf("unvisited flag copied: lat = %v", cfg.View.Lat)
	}
}

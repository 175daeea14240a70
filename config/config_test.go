package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultNeedsWorld(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); !errors.Is(err, ErrNoWorld) {
		t.Fatalf("Validate() = %v, want ErrNoWorld", err)
	}
	cfg.World = "earth.png"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults with a world should be valid: %v", err)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
world: earth.tif
width: 320
height: 200
view:
  lng: -30
  lat: 45.5
tiles:
  scaler: catmull-rom
  max_level: 3
parallelism: 4
placeholder: 0xffff00ff
log_level: debug
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	if cfg.World != "earth.tif" || cfg.Width != 320 || cfg.Height != 200 {
		t.Errorf("top level = %q %dx%d", cfg.World, cfg.Width, cfg.Height)
	}
	if cfg.View.Lng != -30 || cfg.View.Lat != 45.5 {
		t.Errorf("view = %+v", cfg.View)
	}
	if cfg.Tiles.Scaler != ScalerCatmullRom || cfg.Tiles.MaxLevel != 3 {
		t.Errorf("tiles = %+v", cfg.Tiles)
	}
	if cfg.Placeholder != 0xffff00ff {
		t.Errorf("placeholder = %#x", cfg.Placeholder)
	}
	if l, _ := cfg.SlogLevel(); l != slog.LevelDebug {
		t.Errorf("log level = %v", l)
	}

	// Keys that were not set keep their defaults.
	def := Default()
	if cfg.Radius != def.Radius || cfg.Tiles.Width != def.Tiles.Width || cfg.Background != def.Background {
		t.Errorf("defaults lost: radius %d tile width %d background %#x", cfg.Radius, cfg.Tiles.Width, cfg.Background)
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse([]byte("  \n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("empty document = %+v, want defaults", cfg)
	}
}

func TestParseUnknownField(t *testing.T) {
	if _, err := Parse([]byte("world: a.png\nzoom: 3\n")); err == nil {
		t.Error("unknown key should be rejected")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Render)
	}{
		{"zero width", func(r *Render) { r.Width = 0 }},
		{"negative radius", func(r *Render) { r.Radius = -1 }},
		{"no frames", func(r *Render) { r.Frames = 0 }},
		{"no parallelism", func(r *Render) { r.Parallelism = 0 }},
		{"negative stride", func(r *Render) { r.Stride = -2 }},
		{"latitude past the pole", func(r *Render) { r.View.Lat = 91 }},
		{"zero tile height", func(r *Render) { r.Tiles.Height = 0 }},
		{"negative cache limit", func(r *Render) { r.Tiles.CacheLimit = -1 }},
		{"max level below auto", func(r *Render) { r.Tiles.MaxLevel = -2 }},
		{"unknown depth", func(r *Render) { r.Tiles.Depth = "cmyk" }},
		{"unknown scaler", func(r *Render) { r.Tiles.Scaler = "lanczos" }},
		{"unknown log level", func(r *Render) { r.LogLevel = "chatty" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.World = "earth.png"
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "globe.yaml")
	if err := os.WriteFile(path, []byte("world: w.png\nradius: 90\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.World != "w.png" || cfg.Radius != 90 {
		t.Errorf("Load() = %+v", cfg)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.World = "earth.png"
	cfg.View.Roll = 12.5

	data, err := cfg.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if back != cfg {
		t.Errorf("round trip = %+v, want %+v", back, cfg)
	}
}

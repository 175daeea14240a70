// Package config loads render settings for the globerender command from
// YAML.
//
// Example file:
//
//	world: earth.jpg
//	output: globe.png
//	width: 800
//	height: 600
//	radius: 250
//	view:
//	  lng: 10.5   # degrees
//	  lat: 48
//	tiles:
//	  width: 675
//	  height: 675
//	  scaler: catmull-rom
//	parallelism: 4
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Errors.
var (
	// ErrInvalid is wrapped by every validation failure.
	ErrInvalid = errors.New("config: invalid value")

	// ErrNoWorld is returned by Validate when no world image is set.
	ErrNoWorld = errors.New("config: world image not set")
)

// Scaler names accepted in Tiles.Scaler.
const (
	ScalerNearest        = "nearest"
	ScalerApproxBiLinear = "approx-bilinear"
	ScalerBiLinear       = "bilinear"
	ScalerCatmullRom     = "catmull-rom"
)

// Depth names accepted in Tiles.Depth.
const (
	DepthColor   = "color"
	DepthIndexed = "indexed"
)

// View is the globe orientation, in degrees.
type View struct {
	Lng  float64 `yaml:"lng"`
	Lat  float64 `yaml:"lat"`
	Roll float64 `yaml:"roll"`
	// Spin is the longitude step between frames.
	Spin float64 `yaml:"spin"`
}

// Tiles configures the tile pyramid built from the world image.
type Tiles struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Depth      string `yaml:"depth"`
	Scaler     string `yaml:"scaler"`
	CacheLimit int    `yaml:"cache_limit"`
	// MaxLevel caps the tile level; -1 derives it from the world size.
	MaxLevel int `yaml:"max_level"`
}

// Render holds everything needed to render one or more frames.
type Render struct {
	World  string `yaml:"world"`
	Output string `yaml:"output"`
	Format string `yaml:"format"`

	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Radius int `yaml:"radius"`
	Frames int `yaml:"frames"`

	View  View  `yaml:"view"`
	Tiles Tiles `yaml:"tiles"`

	Interlace   bool   `yaml:"interlace"`
	Parallelism int    `yaml:"parallelism"`
	Stride      int    `yaml:"stride"`
	Background  uint32 `yaml:"background"`
	Placeholder uint32 `yaml:"placeholder"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the default settings. World is left empty.
func Default() Render {
	return Render{
		Output: "globe.png",
		Format: "rgba",
		Width:  800,
		Height: 600,
		Radius: 250,
		Frames: 1,
		Tiles: Tiles{
			Width:      675,
			Height:     675,
			Depth:      DepthColor,
			Scaler:     ScalerApproxBiLinear,
			CacheLimit: 256,
			MaxLevel:   -1,
		},
		Parallelism: 1,
		Background:  0xff000000,
		Placeholder: 0xff808080,
		LogLevel:    "info",
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (Render, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Render{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Render{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults. Unknown keys are rejected.
// Parse does not validate; call Validate once all overrides are applied.
func Parse(data []byte) (Render, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Render{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Marshal encodes the settings as YAML.
func (r Render) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

// Validate checks that the settings describe a renderable frame.
func (r Render) Validate() error {
	if r.World == "" {
		return ErrNoWorld
	}
	switch {
	case r.Width <= 0 || r.Height <= 0:
		return invalid("size", fmt.Sprintf("%dx%d", r.Width, r.Height))
	case r.Radius < 0:
		return invalid("radius", r.Radius)
	case r.Frames < 1:
		return invalid("frames", r.Frames)
	case r.Parallelism < 1:
		return invalid("parallelism", r.Parallelism)
	case r.Stride < 0:
		return invalid("stride", r.Stride)
	case r.View.Lat < -90 || r.View.Lat > 90:
		return invalid("view.lat", r.View.Lat)
	case r.Tiles.Width <= 0 || r.Tiles.Height <= 0:
		return invalid("tiles size", fmt.Sprintf("%dx%d", r.Tiles.Width, r.Tiles.Height))
	case r.Tiles.CacheLimit < 0:
		return invalid("tiles.cache_limit", r.Tiles.CacheLimit)
	case r.Tiles.MaxLevel < -1:
		return invalid("tiles.max_level", r.Tiles.MaxLevel)
	}

	switch r.Tiles.Depth {
	case DepthColor, DepthIndexed:
	default:
		return invalid("tiles.depth", r.Tiles.Depth)
	}
	switch r.Tiles.Scaler {
	case ScalerNearest, ScalerApproxBiLinear, ScalerBiLinear, ScalerCatmullRom:
	default:
		return invalid("tiles.scaler", r.Tiles.Scaler)
	}
	if _, err := r.SlogLevel(); err != nil {
		return invalid("log_level", r.LogLevel)
	}
	return nil
}

// SlogLevel parses LogLevel.
func (r Render) SlogLevel() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(r.LogLevel))
	return l, err
}

func invalid(field string, v any) error {
	return fmt.Errorf("%w: %s = %v", ErrInvalid, field, v)
}

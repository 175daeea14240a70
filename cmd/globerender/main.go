// Command globerender projects an equirectangular world image onto a globe
// and writes the result as PNG.
//
// Usage:
//
//	globerender earth.jpg --lng 10 --lat 48 --radius 280 -o globe.png
//	globerender --config globe.yaml --frames 36
//	globerender formats
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/image/draw"

	"github.com/gogpu/globe"
	"github.com/gogpu/globe/config"
	gimage "github.com/gogpu/globe/internal/image"
	"github.com/gogpu/globe/rotation"
	"github.com/gogpu/globe/surface"
	"github.com/gogpu/globe/tile"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "globerender:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		flags      = config.Default()
	)

	cmd := &cobra.Command{
		Use:   "globerender [world-image] (flags)",
		Short: "Render an equirectangular world image onto a globe.",
		Long: `Render an equirectangular world image onto a globe.

Settings are read from --config when given; command line flags override the
file. Longitude, latitude, roll and spin are in degrees.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       globe.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				var err error
				if cfg, err = config.Load(configPath); err != nil {
					return err
				}
			}
			cmd.Flags().Visit(func(f *pflag.Flag) {
				override(&cfg, &flags, f.Name)
			})
			if len(args) == 1 {
				cfg.World = args[0]
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg, cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "YAML settings file")
	f.StringVar(&flags.World, "world", flags.World, "world image (png, jpeg, gif, bmp, tiff, webp)")
	f.StringVarP(&flags.Output, "output", "o", flags.Output, "output PNG; with more than one frame every frame, the first included, gets a -NNN suffix")
	f.StringVar(&flags.Format, "format", flags.Format, "surface format ("+strings.Join(surface.Formats(), ", ")+")")
	f.IntVar(&flags.Width, "width", flags.Width, "image width")
	f.IntVar(&flags.Height, "height", flags.Height, "image height")
	f.IntVarP(&flags.Radius, "radius", "r", flags.Radius, "globe radius in pixels")
	f.IntVar(&flags.Frames, "frames", flags.Frames, "number of frames to render")
	f.Float64Var(&flags.View.Lng, "lng", flags.View.Lng, "longitude at the globe center")
	f.Float64Var(&flags.View.Lat, "lat", flags.View.Lat, "latitude at the globe center")
	f.Float64Var(&flags.View.Roll, "roll", flags.View.Roll, "rotation around the line of sight")
	f.Float64Var(&flags.View.Spin, "spin", flags.View.Spin, "longitude step between frames")
	f.IntVar(&flags.Tiles.Width, "tile-width", flags.Tiles.Width, "tile width in pixels")
	f.IntVar(&flags.Tiles.Height, "tile-height", flags.Tiles.Height, "tile height in pixels")
	f.StringVar(&flags.Tiles.Depth, "depth", flags.Tiles.Depth, "tile storage (color, indexed)")
	f.StringVar(&flags.Tiles.Scaler, "scaler", flags.Tiles.Scaler, "level resampling (nearest, approx-bilinear, bilinear, catmull-rom)")
	f.IntVar(&flags.Tiles.MaxLevel, "max-level", flags.Tiles.MaxLevel, "maximum tile level, -1 for the world resolution")
	f.BoolVar(&flags.Interlace, "interlace", flags.Interlace, "render every other row")
	f.IntVarP(&flags.Parallelism, "parallel", "p", flags.Parallelism, "number of concurrently rendered bands")
	f.IntVar(&flags.Stride, "stride", flags.Stride, "fixed interpolation stride, 0 for automatic")
	f.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "log level (debug, info, warn, error)")

	cmd.AddCommand(newFormatsCommand())
	return cmd
}

// override copies the value of the named flag into cfg.
func override(cfg, flags *config.Render, name string) {
	switch name {
	case "world":
		cfg.World = flags.World
	case "output":
		cfg.Output = flags.Output
	case "format":
		cfg.Format = flags.Format
	case "width":
		cfg.Width = flags.Width
	case "height":
		cfg.Height = flags.Height
	case "radius":
		cfg.Radius = flags.Radius
	case "frames":
		cfg.Frames = flags.Frames
	case "lng":
		cfg.View.Lng = flags.View.Lng
	case "lat":
		cfg.View.Lat = flags.View.Lat
	case "roll":
		cfg.View.Roll = flags.View.Roll
	case "spin":
		cfg.View.Spin = flags.View.Spin
	case "tile-width":
		cfg.Tiles.Width = flags.Tiles.Width
	case "tile-height":
		cfg.Tiles.Height = flags.Tiles.Height
	case "depth":
		cfg.Tiles.Depth = flags.Tiles.Depth
	case "scaler":
		cfg.Tiles.Scaler = flags.Tiles.Scaler
	case "max-level":
		cfg.Tiles.MaxLevel = flags.Tiles.MaxLevel
	case "interlace":
		cfg.Interlace = flags.Interlace
	case "parallel":
		cfg.Parallelism = flags.Parallelism
	case "stride":
		cfg.Stride = flags.Stride
	case "log-level":
		cfg.LogLevel = flags.LogLevel
	}
}

func newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the supported output surface formats.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range surface.Formats() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func run(ctx context.Context, cfg config.Render, logOut io.Writer) error {
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))
	globe.SetLogger(logger)
	defer globe.SetLogger(nil)

	world, format, err := gimage.Load(cfg.World)
	if err != nil {
		return err
	}
	logger.Info("world loaded", "path", cfg.World, "format", format,
		"width", world.Bounds().Dx(), "height", world.Bounds().Dy())

	src, err := tile.NewPyramid(world,
		tile.WithTileSize(cfg.Tiles.Width, cfg.Tiles.Height),
		tile.WithDepth(depth(cfg.Tiles.Depth)),
		tile.WithScaler(scaler(cfg.Tiles.Scaler)),
		tile.WithCacheLimit(cfg.Tiles.CacheLimit),
	)
	if err != nil {
		return err
	}

	maxLevel := cfg.Tiles.MaxLevel
	if maxLevel < 0 {
		maxLevel = src.MaxLevel()
	}
	m, err := globe.New(src,
		globe.WithMaxLevel(maxLevel),
		globe.WithInterlace(cfg.Interlace),
		globe.WithParallelism(cfg.Parallelism),
		globe.WithFixedStride(cfg.Stride),
		globe.WithPlaceholder(cfg.Placeholder),
	)
	if err != nil {
		return err
	}

	for i := range cfg.Frames {
		s, err := surface.NewByName(cfg.Format, cfg.Width, cfg.Height)
		if err != nil {
			return err
		}
		s.Clear(cfg.Background)

		lng := cfg.View.Lng + float64(i)*cfg.View.Spin
		rot := rotation.Orientation(
			rotation.WrapLongitude(mgl64.DegToRad(lng)),
			mgl64.DegToRad(cfg.View.Lat),
			mgl64.DegToRad(cfg.View.Roll),
		)
		view := globe.NewView(cfg.Width, cfg.Height, cfg.Radius, rot)

		stats, err := m.Render(ctx, view, s)
		if err != nil && !errors.Is(err, globe.ErrTileUnavailable) {
			return err
		}
		if err != nil {
			logger.Warn("frame incomplete", "frame", i, "error", err)
		}

		path := framePath(cfg.Output, i, cfg.Frames)
		if err := gimage.SavePNG(path, s.Image()); err != nil {
			return err
		}
		logger.Info("frame written", "path", path, "level", stats.Level, "stride", stats.Stride,
			"exact", stats.Exact, "interpolated", stats.Interpolated, "tile_loads", stats.TileLoads)
	}

	st := src.Stats()
	logger.Debug("tile pyramid", "cached", st.Cached, "loads", st.Loads, "hits", st.Hits,
		"flushes", st.Flushes, "released", st.Released)
	return nil
}

// framePath returns output unchanged for a single frame and inserts a
// zero-padded frame number before the extension otherwise.
func framePath(output string, i, frames int) string {
	if frames <= 1 {
		return output
	}
	ext := filepath.Ext(output)
	return fmt.Sprintf("%s-%03d%s", strings.TrimSuffix(output, ext), i, ext)
}

func depth(name string) tile.Depth {
	if name == config.DepthIndexed {
		return tile.Indexed8
	}
	return tile.Color32
}

func scaler(name string) draw.Scaler {
	switch name {
	case config.ScalerNearest:
		return draw.NearestNeighbor
	case config.ScalerBiLinear:
		return draw.BiLinear
	case config.ScalerCatmullRom:
		return draw.CatmullRom
	default:
		return draw.ApproxBiLinear
	}
}

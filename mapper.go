package globe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/golang/geo/r3"

	"github.com/gogpu/globe/internal/parallel"
	"github.com/gogpu/globe/rotation"
	"github.com/gogpu/globe/surface"
	"github.com/gogpu/globe/tile"
)

// Errors returned by Mapper.
var (
	// ErrNilSource is returned when a Mapper is given a nil tile source.
	ErrNilSource = errors.New("globe: nil tile source")

	// ErrNilSurface is returned by Render for a nil surface.
	ErrNilSurface = errors.New("globe: nil surface")

	// ErrSizeMismatch is returned by Render when the view size differs from
	// the surface size.
	ErrSizeMismatch = errors.New("globe: view size does not match surface")

	// ErrTileUnavailable is returned by Render, after the whole frame has
	// been drawn, when one or more tiles could not be loaded. The pixels of
	// those tiles hold the placeholder color.
	ErrTileUnavailable = errors.New("globe: tile unavailable")
)

// FrameStats describes a rendered frame.
type FrameStats struct {
	// Level is the tile level the frame was sampled from.
	Level int
	// LevelChanged reports that the level differs from the previous frame
	// and the tile source was flushed.
	LevelChanged bool
	// Stride is the interpolation stride n.
	Stride int
	// Rows is the number of scanlines sampled. Rows duplicated in
	// interlaced mode are not counted.
	Rows int
	// Exact is the number of exactly sampled pixels.
	Exact int
	// Interpolated is the number of interpolated pixels.
	Interpolated int
	// TileLoads is the number of LoadTile calls.
	TileLoads int
	// FailedTiles is the number of distinct tiles that failed to load.
	FailedTiles int
}

// Mapper texture-maps tiles from a tile.Source onto a sphere.
//
// The tile level is kept between frames; a radius change that selects a
// different level flushes the source. Mapper is not safe for concurrent
// Render calls.
type Mapper struct {
	src  tile.Source
	opts options

	hasLevel bool
	geom     LevelGeometry

	width  int
	height int
	best   int
	stride int

	// trace, when set, is called for every pixel group: [x0, x1) on row y,
	// exact or interpolated.
	trace func(y, x0, x1 int, exact bool)
}

// New creates a Mapper reading tiles from src.
func New(src tile.Source, opts ...Option) (*Mapper, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Mapper{src: src, opts: o}, nil
}

// SetSource replaces the tile source. The next frame selects its level from
// scratch without flushing the new source; until then Level reports 0.
func (m *Mapper) SetSource(src tile.Source) error {
	if src == nil {
		return ErrNilSource
	}
	m.src = src
	m.hasLevel = false
	m.geom = LevelGeometry{}
	return nil
}

// Source returns the current tile source.
func (m *Mapper) Source() tile.Source { return m.src }

// Level returns the tile level of the last frame, or 0 before the first
// frame of the current source.
func (m *Mapper) Level() int { return m.geom.Level }

// Stride returns the interpolation stride of the last frame.
func (m *Mapper) Stride() int { return m.stride }

func (m *Mapper) logger() *slog.Logger {
	if m.opts.logger != nil {
		return m.opts.logger
	}
	return Logger()
}

// Render draws the globe described by view into s.
//
// Only pixels inside the globe's disc are written. The tile source cache is
// reset before the frame and cleaned up after it. Render stops before the
// next scanline when ctx is cancelled and returns ctx.Err(); the surface then
// holds a partial frame.
//
// Tiles that fail to load are drawn with the placeholder color and reported
// as an error wrapping ErrTileUnavailable once the frame is complete.
func (m *Mapper) Render(ctx context.Context, view View, s surface.Surface) (FrameStats, error) {
	if s == nil {
		return FrameStats{}, ErrNilSurface
	}
	if view.Width != s.Width() || view.Height != s.Height() {
		return FrameStats{}, fmt.Errorf("%w: view %dx%d, surface %dx%d",
			ErrSizeMismatch, view.Width, view.Height, s.Width(), s.Height())
	}
	if err := ctx.Err(); err != nil {
		return FrameStats{}, err
	}
	m.resize(view.Width, view.Height)

	stats := FrameStats{Level: m.geom.Level, Stride: m.stride}
	if view.Radius <= 0 {
		return stats, nil
	}

	m.src.ResetCache()
	defer m.src.CleanupCache()

	stats.LevelChanged = m.selectLevel(view.Radius)
	stats.Level = m.geom.Level

	m.stride = strideFor(view, m.best, m.opts.fixedStride)
	stats.Stride = m.stride

	f := m.newFrame(view, s)
	workers, k := m.opts.parallelism, m.opts.parallelism
	if workers > 1 {
		k *= parallel.BandsPerWorker
	}
	bands := parallel.Split(f.yTop, f.yBottom, f.step, k)
	results := make([]bandResult, len(bands))

	err := parallel.Run(ctx, bands, workers, func(ctx context.Context, i int, b parallel.Band) error {
		var err error
		results[i], err = f.render(ctx, b)
		return err
	})

	failed := make(map[tile.ID]error)
	for _, r := range results {
		stats.Rows += r.rows
		stats.Exact += r.exact
		stats.Interpolated += r.interpolated
		stats.TileLoads += r.loads
		for id, e := range r.failed {
			if _, ok := failed[id]; !ok {
				failed[id] = e
			}
		}
	}
	stats.FailedTiles = len(failed)

	if err != nil {
		return stats, err
	}

	log := m.logger()
	ids := sortedIDs(failed)
	for _, id := range ids {
		log.Warn("globe: tile unavailable", "tile", id.String(), "error", failed[id])
	}
	log.Debug("globe: frame rendered",
		"level", stats.Level,
		"stride", stats.Stride,
		"rows", stats.Rows,
		"exact", stats.Exact,
		"interpolated", stats.Interpolated,
		"tile_loads", stats.TileLoads)

	if len(ids) > 0 {
		return stats, fmt.Errorf("%w: %d tiles, first %s: %w",
			ErrTileUnavailable, len(ids), ids[0], failed[ids[0]])
	}
	return stats, nil
}

// resize recomputes the best stride when the output size changes.
func (m *Mapper) resize(width, height int) {
	if width == m.width && height == m.height && m.best != 0 {
		return
	}
	m.width, m.height = width, height
	m.best = bestStride(width)
	m.logger().Debug("globe: output resized", "width", width, "height", height, "best_stride", m.best)
}

// selectLevel picks the tile level for radius. It reports whether the level
// changed since the previous frame, in which case the source is flushed.
func (m *Mapper) selectLevel(radius int) bool {
	level := SelectLevel(radius, m.src.TileWidth(), m.opts.maxLevel)
	if m.hasLevel && level == m.geom.Level {
		return false
	}

	changed := m.hasLevel
	if changed {
		m.src.Flush()
		m.logger().Debug("globe: tile level changed", "from", m.geom.Level, "to", level, "radius", radius)
	}
	m.hasLevel = true
	m.geom = NewLevelGeometry(level, m.src.TileWidth(), m.src.TileHeight())
	return changed
}

func sortedIDs(failed map[tile.ID]error) []tile.ID {
	ids := make([]tile.ID, 0, len(failed))
	for id := range failed {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := ids[i], ids[j]
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Col < b.Col
	})
	return ids
}

// frame holds the read-only per-frame state shared by all bands.
type frame struct {
	src    tile.Source
	geom   LevelGeometry
	out    surface.Surface
	matrix rotation.Matrix
	pole   poleGuard

	width   int
	hw, hh  int
	radius  int
	radius2 int
	invR    float64
	n       int

	yTop    int
	yBottom int
	step    int

	placeholder uint32
	trace       func(y, x0, x1 int, exact bool)
}

func (m *Mapper) newFrame(v View, s surface.Surface) *frame {
	f := &frame{
		src:         m.src,
		geom:        m.geom,
		out:         s,
		matrix:      rotation.ToMatrix(v.Rotation),
		pole:        newPoleGuard(v, m.stride),
		width:       v.Width,
		hw:          v.HalfWidth(),
		hh:          v.HalfHeight(),
		radius:      v.Radius,
		radius2:     v.Radius2(),
		invR:        1 / float64(v.Radius),
		n:           m.stride,
		step:        1,
		placeholder: m.opts.placeholder,
		trace:       m.trace,
	}
	f.yTop = max(f.hh-f.radius, 0)
	f.yBottom = min(f.hh+f.radius, v.Height)
	if m.opts.interlace {
		f.step = 2
	}
	return f
}

type bandResult struct {
	rows         int
	exact        int
	interpolated int
	loads        int
	failed       map[tile.ID]error
}

// render draws the rows of b with a sampler of its own.
func (f *frame) render(ctx context.Context, b parallel.Band) (bandResult, error) {
	smp := newSampler(f.src, f.geom, f.placeholder)
	var res bandResult

	for y := b.Y0; y < b.Y1; y += f.step {
		if err := ctx.Err(); err != nil {
			res.loads, res.failed = smp.loads, smp.failed
			return res, err
		}
		xLeft, xRight := f.scanline(smp, y, &res)
		res.rows++
		if f.step == 2 && y+1 < f.yBottom {
			f.duplicate(smp, y, xLeft, xRight, &res)
		}
	}

	res.loads, res.failed = smp.loads, smp.failed
	return res, nil
}

// chord returns the columns [xLeft, xRight) of row y covered by the disc,
// clipped to the surface.
func (f *frame) chord(y int) (xLeft, xRight int) {
	dy := y - f.hh
	d := f.radius2 - dy*dy
	if d < 0 {
		return 0, 0
	}
	rx := int(math.Sqrt(float64(d)))
	return max(f.hw-rx, 0), min(f.hw+rx, f.width)
}

// ray returns the vertical ray component of row y and qr = 1 - qy².
func (f *frame) ray(y int) (qy, qr float64) {
	qy = -float64(y-f.hh) * f.invR
	return qy, 1 - qy*qy
}

// scanline draws the chord of row y and returns it.
func (f *frame) scanline(smp *sampler, y int, res *bandResult) (xLeft, xRight int) {
	xLeft, xRight = f.chord(y)
	if xLeft >= xRight {
		return xLeft, xRight
	}
	qy, qr := f.ray(y)

	n := f.n
	ipLeft, ipRight := 1, (f.width/n)*n
	if xLeft > 0 {
		ipLeft = n * (xLeft/n + 1)
		ipRight = n * (xRight/n - 1)
	}
	// The exact sample closing a group must stay on the chord.
	ipRight = min(ipRight, xRight-n)

	poleRow := f.pole.row(y)

	var prevLng, prevLat float64
	for x := xLeft; x < xRight; x++ {
		x0 := x
		interp := n > 1 && x >= ipLeft && x <= ipRight &&
			!(poleRow && f.pole.covers(x, n))
		if interp {
			x += n - 1
		}

		lng, lat := f.lngLat(x, qy, qr)

		if interp {
			interpolate(prevLng, prevLat, lng, lat, n, func(j int, l, b float64) {
				f.out.Set(x0+j-1, y, smp.sample(l, b))
			})
			res.interpolated += n - 1
		}
		if f.trace != nil {
			f.trace(y, x0, x+1, !interp)
		}

		f.out.Set(x, y, smp.sample(lng, lat))
		res.exact++
		prevLng, prevLat = lng, lat
	}
	return xLeft, xRight
}

// duplicate fills row y+1 in interlaced mode: the part of its chord shared
// with row y [xLeft, xRight) is copied, the ends reaching past it are sampled
// exactly. Nothing outside row y+1's chord is written.
func (f *frame) duplicate(smp *sampler, y, xLeft, xRight int, res *bandResult) {
	y++
	l, r := f.chord(y)
	if l >= r {
		return
	}
	if cl, cr := max(xLeft, l), min(xRight, r); cl < cr {
		f.out.CopyRow(y, y-1, cl, cr)
	} else {
		xLeft, xRight = r, r
	}

	qy, qr := f.ray(y)
	edge := func(x0, x1 int) {
		for x := x0; x < x1; x++ {
			lng, lat := f.lngLat(x, qy, qr)
			f.out.Set(x, y, smp.sample(lng, lat))
			res.exact++
			if f.trace != nil {
				f.trace(y, x, x+1, true)
			}
		}
	}
	edge(l, min(xLeft, r))
	edge(max(xRight, l), r)
}

// lngLat returns the world position seen at column x of a row with ray
// components qy and qr = 1 - qy².
func (f *frame) lngLat(x int, qy, qr float64) (lng, lat float64) {
	qx := float64(x-f.hw) * f.invR
	var qz float64
	if z2 := qr - qx*qx; z2 > 0 {
		qz = math.Sqrt(z2)
	}
	return rotation.Spherical(rotation.Apply(f.matrix, r3.Vector{X: qx, Y: qy, Z: qz}))
}

package tile

import (
	"fmt"
	"image"
	"sync/atomic"

	"github.com/gogpu/globe/internal/cache"
	gimage "github.com/gogpu/globe/internal/image"
	"golang.org/x/image/draw"
)

// Default pyramid settings.
const (
	DefaultTileWidth  = 675
	DefaultTileHeight = 675
	DefaultCacheLimit = 256
)

// Pyramid is an in-memory Source that cuts tiles out of one equirectangular
// world image, resampling the image to each level's resolution on demand.
//
// Tiles are kept in an LRU cache. Pyramid is safe for concurrent use, so
// several scanline bands of one frame may load tiles in parallel.
type Pyramid struct {
	world  image.Image // *image.RGBA or *image.Gray, anchored at (0, 0)
	depth  Depth
	tileW  int
	tileH  int
	scaler draw.Scaler
	tiles  *cache.Cache[ID, *Tile]

	loads    atomic.Uint64
	flushes  atomic.Uint64
	resets   atomic.Uint64
	cleanups atomic.Uint64
	released atomic.Uint64
}

// PyramidOption configures a Pyramid.
type PyramidOption func(*pyramidOptions)

type pyramidOptions struct {
	tileW      int
	tileH      int
	depth      Depth
	scaler     draw.Scaler
	cacheLimit int
}

// WithTileSize sets the tile dimensions in pixels.
func WithTileSize(width, height int) PyramidOption {
	return func(o *pyramidOptions) {
		o.tileW, o.tileH = width, height
	}
}

// WithDepth selects the tile storage. Indexed8 converts the world image to
// grayscale; Color32 (the default) keeps full color.
func WithDepth(d Depth) PyramidOption {
	return func(o *pyramidOptions) {
		o.depth = d
	}
}

// WithScaler sets the resampling kernel used to build levels.
// The default is draw.ApproxBiLinear.
func WithScaler(s draw.Scaler) PyramidOption {
	return func(o *pyramidOptions) {
		o.scaler = s
	}
}

// WithCacheLimit caps the number of cached tiles. 0 means unlimited.
func WithCacheLimit(n int) PyramidOption {
	return func(o *pyramidOptions) {
		o.cacheLimit = n
	}
}

// NewPyramid creates a Pyramid over world.
func NewPyramid(world image.Image, opts ...PyramidOption) (*Pyramid, error) {
	if world == nil || world.Bounds().Empty() {
		return nil, ErrNoWorld
	}

	o := pyramidOptions{
		tileW:      DefaultTileWidth,
		tileH:      DefaultTileHeight,
		depth:      Color32,
		scaler:     draw.ApproxBiLinear,
		cacheLimit: DefaultCacheLimit,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tileW <= 0 || o.tileH <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, o.tileW, o.tileH)
	}

	p := &Pyramid{
		depth:  o.depth,
		tileW:  o.tileW,
		tileH:  o.tileH,
		scaler: o.scaler,
		tiles:  cache.New[ID, *Tile](o.cacheLimit),
	}
	if o.depth == Indexed8 {
		p.world = gimage.ToGray(world)
	} else {
		p.depth = Color32
		p.world = gimage.ToRGBA(world)
	}
	p.tiles.OnEvict = func(ID, *Tile) { p.released.Add(1) }
	return p, nil
}

// TileWidth returns the tile width in pixels.
func (p *Pyramid) TileWidth() int { return p.tileW }

// TileHeight returns the tile height in pixels.
func (p *Pyramid) TileHeight() int { return p.tileH }

// Depth returns the storage depth of the tiles this pyramid produces.
func (p *Pyramid) Depth() Depth { return p.depth }

// MaxLevel returns the lowest level whose global raster is at least as wide
// as the world image. Higher levels only upsample.
func (p *Pyramid) MaxLevel() int {
	w := p.world.Bounds().Dx()
	level := 0
	for LevelToColumn(level)*p.tileW < w {
		level++
	}
	return level
}

// LoadTile returns the tile at (col, row, level), cutting and resampling it
// from the world image on a cache miss.
func (p *Pyramid) LoadTile(col, row, level int) (*Tile, error) {
	id := ID{Col: col, Row: row, Level: level}
	if !id.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrOutOfRange, id)
	}
	if t, ok := p.tiles.Get(id); ok {
		return t, nil
	}

	t := p.cut(id)
	p.tiles.Set(id, t)
	p.loads.Add(1)
	return t, nil
}

// cut resamples the part of the world image covered by id into a new tile.
func (p *Pyramid) cut(id ID) *Tile {
	wb := p.world.Bounds()
	cols, rows := LevelToColumn(id.Level), LevelToRow(id.Level)
	src := image.Rect(
		id.Col*wb.Dx()/cols, id.Row*wb.Dy()/rows,
		(id.Col+1)*wb.Dx()/cols, (id.Row+1)*wb.Dy()/rows,
	)
	// Levels coarser than the world image may map a tile to less than one
	// source pixel.
	if src.Dx() == 0 {
		src.Max.X = src.Min.X + 1
	}
	if src.Dy() == 0 {
		src.Max.Y = src.Min.Y + 1
	}
	dstRect := image.Rect(0, 0, p.tileW, p.tileH)

	var pixels Pixels
	if p.depth == Indexed8 {
		dst := image.NewGray(dstRect)
		p.scaler.Scale(dst, dstRect, p.world, src, draw.Src, nil)
		pixels = IndexedFromGray(dst)
	} else {
		dst := image.NewRGBA(dstRect)
		p.scaler.Scale(dst, dstRect, p.world, src, draw.Src, nil)
		pixels = ColorFromRGBA(dst)
	}
	return New(id, p.tileW, p.tileH, pixels)
}

// Flush drops all cached tiles.
func (p *Pyramid) Flush() {
	p.flushes.Add(1)
	p.tiles.Clear()
}

// ResetCache starts a new frame of tile usage tracking.
func (p *Pyramid) ResetCache() {
	p.resets.Add(1)
	p.tiles.ResetUsage()
}

// CleanupCache releases tiles that were not loaded during the frame.
func (p *Pyramid) CleanupCache() {
	p.cleanups.Add(1)
	p.tiles.DropUnused()
}

// Stats returns tile source counters.
func (p *Pyramid) Stats() Stats {
	cs := p.tiles.Stats()
	return Stats{
		Cached:   cs.Len,
		Loads:    p.loads.Load(),
		Hits:     cs.Hits,
		Flushes:  p.flushes.Load(),
		Resets:   p.resets.Load(),
		Cleanups: p.cleanups.Load(),
		Released: p.released.Load(),
	}
}

// Stats contains tile source counters.
type Stats struct {
	// Cached is the number of tiles currently held.
	Cached int
	// Loads is the number of tiles cut from the world image.
	Loads uint64
	// Hits is the number of LoadTile calls served from the cache.
	Hits uint64
	// Flushes, Resets and Cleanups count the cache protocol calls.
	Flushes  uint64
	Resets   uint64
	Cleanups uint64
	// Released is the number of tiles dropped from the cache.
	Released uint64
}

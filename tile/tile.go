// Package tile defines the tiled, multi-resolution world raster consumed by
// the globe texture mapper.
//
// The world is an equirectangular raster: global pixel column 0 is
// longitude -π, row 0 is latitude +π/2. Level L splits the world into
// LevelToColumn(L) x LevelToRow(L) tiles of TileWidth x TileHeight pixels
// each, so the resolution doubles with every level.
//
// Pixel values are packed 0xAARRGGBB words.
package tile

import (
	"errors"
	"fmt"
)

// Tile errors.
var (
	// ErrOutOfRange is returned when a tile address is outside the level grid.
	ErrOutOfRange = errors.New("tile: address out of range")

	// ErrNoWorld is returned when a pyramid is created without a world image.
	ErrNoWorld = errors.New("tile: no world image")

	// ErrInvalidSize is returned for non-positive tile dimensions.
	ErrInvalidSize = errors.New("tile: invalid tile size")
)

// LevelToColumn returns the number of tile columns at level.
func LevelToColumn(level int) int {
	if level < 0 {
		return 0
	}
	return 2 << level
}

// LevelToRow returns the number of tile rows at level.
func LevelToRow(level int) int {
	if level < 0 {
		return 0
	}
	return 1 << level
}

// ID addresses a tile by grid position and level.
type ID struct {
	Col   int
	Row   int
	Level int
}

// String implements fmt.Stringer.
func (id ID) String() string {
	return fmt.Sprintf("%d/%d/%d", id.Level, id.Row, id.Col)
}

// Valid reports whether id lies inside its level's grid.
func (id ID) Valid() bool {
	return id.Level >= 0 &&
		id.Col >= 0 && id.Col < LevelToColumn(id.Level) &&
		id.Row >= 0 && id.Row < LevelToRow(id.Level)
}

// Tile is a loaded tile handle. The pixel storage is owned by the tile
// source; callers get read-only access through Pixels.
type Tile struct {
	id     ID
	width  int
	height int
	pixels Pixels
}

// New creates a tile handle over pixels.
func New(id ID, width, height int, pixels Pixels) *Tile {
	return &Tile{id: id, width: width, height: height, pixels: pixels}
}

// ID returns the tile address.
func (t *Tile) ID() ID { return t.id }

// Width returns the tile width in pixels.
func (t *Tile) Width() int { return t.width }

// Height returns the tile height in pixels.
func (t *Tile) Height() int { return t.height }

// Depth returns the pixel depth of the tile storage.
func (t *Tile) Depth() Depth { return t.pixels.Depth() }

// Pixels returns the tile's pixel accessor.
func (t *Tile) Pixels() Pixels { return t.pixels }

// Origin returns the tile's top-left corner in global level pixels.
func (t *Tile) Origin() (x, y int) {
	return t.id.Col * t.width, t.id.Row * t.height
}

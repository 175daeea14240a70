package globe

import (
	"math"

	"github.com/gogpu/globe/tile"
)

// SelectLevel returns the tile level whose resolution matches a globe of the
// given radius: floor(log2(2*radius/tileWidth)) + 1, clamped to
// [0, maxLevel]. A non-positive radius or tile width selects level 0.
func SelectLevel(radius, tileWidth, maxLevel int) int {
	if radius <= 0 || tileWidth <= 0 {
		return 0
	}
	linear := 2 * float64(radius) / float64(tileWidth)
	level := int(math.Floor(math.Log2(linear))) + 1
	if level < 0 {
		level = 0
	}
	if level > maxLevel {
		level = maxLevel
	}
	return level
}

// LevelGeometry holds the angle-to-pixel scales of one tile level and the
// wraparound constants used to turn a (lng, lat) pair into tile-local pixel
// coordinates.
//
// The exported range fields are in global level pixels. The unexported norm
// fields are the same constants re-based to the origin of the tile currently
// being sampled; see normalize.
type LevelGeometry struct {
	Level int

	// Rad2PixelX and Rad2PixelY are pixels per radian of longitude and
	// latitude at this level.
	Rad2PixelX float64
	Rad2PixelY float64

	// FullRangeLng is the last valid global column, W-1.
	FullRangeLng int
	// HalfRangeLng is the global column of longitude 0, W/2.
	HalfRangeLng float64
	// HalfRangeLat is the last valid global row, H-1.
	HalfRangeLat int
	// QuatRangeLat is the global row of the equator, H/2.
	QuatRangeLat float64

	fullNormLng int
	halfNormLng float64
	halfNormLat int
	quatNormLat float64
}

// NewLevelGeometry computes the geometry of level for tiles of
// tileWidth x tileHeight pixels, normalized to the world origin.
func NewLevelGeometry(level, tileWidth, tileHeight int) LevelGeometry {
	w := tile.LevelToColumn(level) * tileWidth
	h := tile.LevelToRow(level) * tileHeight

	g := LevelGeometry{
		Level:        level,
		Rad2PixelX:   float64(w) / (2 * math.Pi),
		Rad2PixelY:   float64(h) / math.Pi,
		FullRangeLng: w - 1,
		HalfRangeLng: float64(w) / 2,
		HalfRangeLat: h - 1,
		QuatRangeLat: float64(h) / 2,
	}
	g.normalize(0, 0)
	return g
}

// Size returns the global pixel size of the level.
func (g *LevelGeometry) Size() (width, height int) {
	return g.FullRangeLng + 1, g.HalfRangeLat + 1
}

// normalize re-bases the wraparound constants against the pixel origin of
// the current tile.
func (g *LevelGeometry) normalize(originX, originY int) {
	g.fullNormLng = g.FullRangeLng - originX
	g.halfNormLng = g.HalfRangeLng - float64(originX)
	g.halfNormLat = g.HalfRangeLat - originY
	g.quatNormLat = g.QuatRangeLat - float64(originY)
}

// pixel maps (lng, lat) to a pixel relative to the current tile origin.
func (g *LevelGeometry) pixel(lng, lat float64) (x, y int) {
	x = int(math.Floor(g.halfNormLng + lng*g.Rad2PixelX))
	y = int(math.Floor(g.quatNormLat - lat*g.Rad2PixelY))
	return x, y
}

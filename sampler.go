package globe

import (
	"fmt"

	"github.com/gogpu/globe/tile"
)

// sampler resolves (lng, lat) pairs to pixels of the current tile and swaps
// tiles when a position falls outside it.
//
// A sampler owns its tile window and its copy of the level geometry, so each
// concurrently rendered band needs its own.
type sampler struct {
	src   tile.Source
	tileW int
	tileH int
	geom  LevelGeometry

	// Current tile window. pixels is nil before the first load and for
	// tiles that failed to load or came back empty.
	loaded  bool
	id      tile.ID
	originX int
	originY int
	pixels  tile.Pixels

	placeholder uint32

	loads  int
	failed map[tile.ID]error
}

func newSampler(src tile.Source, geom LevelGeometry, placeholder uint32) *sampler {
	geom.normalize(0, 0)
	return &sampler{
		src:         src,
		tileW:       src.TileWidth(),
		tileH:       src.TileHeight(),
		geom:        geom,
		placeholder: placeholder,
	}
}

// sample returns the packed pixel at (lng, lat).
func (s *sampler) sample(lng, lat float64) uint32 {
	x, y := s.locate(lng, lat)
	if s.pixels == nil {
		return s.placeholder
	}
	return s.pixels.At(x, y)
}

// locate returns the pixel of (lng, lat) relative to the current tile,
// loading a different tile first when needed. After locate returns, the
// tile window covers the returned pixel.
func (s *sampler) locate(lng, lat float64) (x, y int) {
	x, y = s.geom.pixel(lng, lat)
	if !s.loaded || x < 0 || x >= s.tileW || y < 0 || y >= s.tileH {
		x, y = s.swap(x, y)
	}
	return x, y
}

// swap loads the tile containing the tile-relative pixel (x, y) and returns
// the pixel relative to the new tile.
func (s *sampler) swap(x, y int) (int, int) {
	// lng = π and lat = -π/2 land one pixel past the world edge.
	if x > s.geom.fullNormLng {
		x = s.geom.fullNormLng
	}
	if y > s.geom.halfNormLat {
		y = s.geom.halfNormLat
	}

	gx := max(x+s.originX, 0)
	gy := max(y+s.originY, 0)

	col, row := gx/s.tileW, gy/s.tileH
	s.id = tile.ID{Col: col, Row: row, Level: s.geom.Level}
	s.loads++

	t, err := s.src.LoadTile(col, row, s.geom.Level)
	if err == nil && (t == nil || t.Pixels() == nil) {
		err = fmt.Errorf("%w: %s returned no pixels", ErrTileUnavailable, s.id)
	}
	if err != nil {
		s.pixels = nil
		if s.failed == nil {
			s.failed = make(map[tile.ID]error)
		}
		if _, seen := s.failed[s.id]; !seen {
			s.failed[s.id] = err
		}
	} else {
		s.pixels = t.Pixels()
	}

	s.loaded = true
	s.originX, s.originY = col*s.tileW, row*s.tileH
	s.geom.normalize(s.originX, s.originY)

	return gx - s.originX, gy - s.originY
}

package globe

import (
	"fmt"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/globe/rotation"
	"github.com/gogpu/globe/surface"
	"github.com/gogpu/globe/tile"
)

// gradientPixels encodes the global level pixel (gx, gy) into every value:
// gx in the high 16 bits, gy in the low 16 bits.
type gradientPixels struct {
	ox, oy int
}

func (p gradientPixels) Depth() tile.Depth { return tile.Color32 }

func (p gradientPixels) At(x, y int) uint32 {
	return encode(p.ox+x, p.oy+y)
}

func encode(gx, gy int) uint32 { return uint32(gx)<<16 | uint32(gy) }

func decode(v uint32) (gx, gy int) { return int(v >> 16), int(v & 0xffff) }

// gradientSource is a tile.Source that records the cache protocol.
type gradientSource struct {
	tw, th int
	fail   func(id tile.ID) bool
	// missing tiles load without an error but carry nothing: a nil tile,
	// or a tile without pixels when pixelless is set.
	missing   func(id tile.ID) bool
	pixelless bool

	mu       sync.Mutex
	loads    []tile.ID
	flushes  int
	resets   int
	cleanups int
}

func newGradientSource(tw, th int) *gradientSource {
	return &gradientSource{tw: tw, th: th}
}

func (s *gradientSource) TileWidth() int  { return s.tw }
func (s *gradientSource) TileHeight() int { return s.th }

func (s *gradientSource) LoadTile(col, row, level int) (*tile.Tile, error) {
	id := tile.ID{Col: col, Row: row, Level: level}
	s.mu.Lock()
	s.loads = append(s.loads, id)
	s.mu.Unlock()

	if !id.Valid() {
		return nil, fmt.Errorf("%w: %s", tile.ErrOutOfRange, id)
	}
	if s.fail != nil && s.fail(id) {
		return nil, fmt.Errorf("tile %s: disk on fire", id)
	}
	if s.missing != nil && s.missing(id) {
		if s.pixelless {
			return tile.New(id, s.tw, s.th, nil), nil
		}
		return nil, nil
	}
	return tile.New(id, s.tw, s.th, gradientPixels{ox: col * s.tw, oy: row * s.th}), nil
}

func (s *gradientSource) Flush() {
	s.mu.Lock()
	s.flushes++
	s.mu.Unlock()
}

func (s *gradientSource) ResetCache() {
	s.mu.Lock()
	s.resets++
	s.mu.Unlock()
}

func (s *gradientSource) CleanupCache() {
	s.mu.Lock()
	s.cleanups++
	s.mu.Unlock()
}

func (s *gradientSource) loadsSnapshot() []tile.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]tile.ID(nil), s.loads...)
}

func identity() mgl64.Quat { return rotation.Identity() }

func newRGBA(t testing.TB, w, h int) *surface.RGBA {
	t.Helper()
	s, err := surface.NewRGBA(w, h)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// chord returns the columns of row y covered by the globe of v.
func chord(v View, y int) (x0, x1 int, ok bool) {
	dy := y - v.HalfHeight()
	d := v.Radius2() - dy*dy
	if d < 0 {
		return 0, 0, false
	}
	rx := isqrt(d)
	return max(v.HalfWidth()-rx, 0), min(v.HalfWidth()+rx, v.Width), true
}

func isqrt(d int) int {
	r := 0
	for (r+1)*(r+1) <= d {
		r++
	}
	return r
}

// exactFrame returns a frame that only carries the projection state of v.
func exactFrame(v View) *frame {
	return &frame{
		matrix: rotation.ToMatrix(v.Rotation),
		width:  v.Width,
		hw:     v.HalfWidth(),
		hh:     v.HalfHeight(),
		radius: v.Radius,
		invR:   1 / float64(v.Radius),
	}
}

// exactLngLat returns the world position seen at screen pixel (x, y).
func exactLngLat(f *frame, x, y int) (lng, lat float64) {
	qy := -float64(y-f.hh) * f.invR
	return f.lngLat(x, qy, 1-qy*qy)
}

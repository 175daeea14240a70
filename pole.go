package globe

import (
	"math"

	"github.com/gogpu/globe/rotation"
)

// poleGuard marks the pixel groups around the projected north pole that must
// be sampled exactly. Linear interpolation in (lng, lat) is worst there
// because every meridian converges on one pixel.
type poleGuard struct {
	visible bool
	x, y    int
	half    int
}

// newPoleGuard projects the rotated north pole of v onto the screen.
func newPoleGuard(v View, n int) poleGuard {
	p := rotation.Inverse(rotation.NorthPole, v.Rotation)
	r := float64(v.Radius)
	return poleGuard{
		visible: p.Z > 0,
		x:       v.HalfWidth() + int(math.Round(r*p.X)),
		y:       v.HalfHeight() - int(math.Round(r*p.Y)),
		half:    n / 2,
	}
}

// row reports whether scanline y is within n/2 rows of the visible pole.
func (g poleGuard) row(y int) bool {
	if !g.visible {
		return false
	}
	d := y - g.y
	return d >= -g.half && d <= g.half
}

// covers reports whether the group window [x, x+n) contains the pole's
// column.
func (g poleGuard) covers(x, n int) bool {
	return g.x >= x && g.x < x+n
}

package globe

import "github.com/go-gl/mathgl/mgl64"

// View describes one frame: the output size, the globe radius in pixels and
// the orientation of the globe.
//
// Rotation maps screen-space unit vectors (X right, Y up, Z toward the
// viewer) to world-space vectors. Build it with the helpers in package
// rotation.
type View struct {
	Width    int
	Height   int
	Radius   int
	Rotation mgl64.Quat
}

// NewView creates a View centered on the output.
func NewView(width, height, radius int, rot mgl64.Quat) View {
	return View{Width: width, Height: height, Radius: radius, Rotation: rot}
}

// HalfWidth returns the column of the globe center.
func (v View) HalfWidth() int { return v.Width / 2 }

// HalfHeight returns the row of the globe center.
func (v View) HalfHeight() int { return v.Height / 2 }

// Radius2 returns the squared globe radius.
func (v View) Radius2() int { return v.Radius * v.Radius }

// ImageRadius2 returns the squared half-diagonal of the output.
func (v View) ImageRadius2() int {
	hw, hh := v.HalfWidth(), v.HalfHeight()
	return hw*hw + hh*hh
}

// Covers reports whether the globe is larger than the output, i.e. the
// sphere's silhouette lies entirely outside the visible area.
func (v View) Covers() bool {
	return v.ImageRadius2() < v.Radius2()
}

// Package globe texture-maps a tiled, multi-resolution world raster onto a
// sphere, one scanline at a time.
//
// # Overview
//
// A Mapper reads equirectangular tiles from a [tile.Source] and paints the
// visible hemisphere of a globe of a given screen radius and orientation
// into a [surface.Surface]. For every frame it:
//
//   - picks the tile level whose resolution matches the globe radius
//   - walks the rows and chords covered by the sphere
//   - samples every n-th pixel exactly (inverse projection, quaternion
//     rotation, tile lookup) and interpolates longitude and latitude for
//     the pixels in between, including across the antimeridian
//   - falls back to exact sampling around the projected north pole, where
//     linear interpolation in (lng, lat) breaks down
//
// # Quick Start
//
//	f, _ := os.Open("earth.jpg")
//	world, _, _ := image.Decode(f) // with image/jpeg registered
//	src, _ := tile.NewPyramid(world)
//	m, _ := globe.New(src, globe.WithMaxLevel(src.MaxLevel()))
//
//	s, _ := surface.NewRGBA(800, 600)
//	view := globe.NewView(800, 600, 250, rotation.LookAt(0.2, 0.7))
//	stats, err := m.Render(ctx, view, s)
//
// # Coordinate System
//
// Screen coordinates have the origin at the top-left, X increasing right and
// Y increasing down. Longitude is in (-π, π], latitude in [-π/2, π/2] with
// north positive. The view rotation maps screen-space unit vectors (Z toward
// the viewer) to world-space vectors; see package rotation.
//
// # Concurrency
//
// A Mapper renders one frame at a time. With [WithParallelism] the rows of a
// frame are split into bands that run on separate goroutines, each with its
// own tile window, so the tile source must then be safe for concurrent use.
package globe

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)

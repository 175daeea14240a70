// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"
)

// Errors.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("surface: invalid dimensions")
)

// Surface is a writable raster target.
//
// Set and CopyRow silently ignore coordinates outside the surface.
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Set writes the packed 0xAARRGGBB pixel at (x, y).
	Set(x, y int, argb uint32)

	// At returns the pixel at (x, y) as packed 0xAARRGGBB.
	At(x, y int) uint32

	// CopyRow copies pixels [x0, x1) of row srcY onto row dstY.
	CopyRow(dstY, srcY, x0, x1 int)

	// Clear fills the whole surface with argb.
	Clear(argb uint32)

	// Image returns the backing image. Modifications are visible to the
	// surface.
	Image() image.Image
}

// clampSpan restricts [x0, x1) to [0, width).
func clampSpan(x0, x1, width int) (int, int) {
	if x0 < 0 {
		x0 = 0
	}
	if x1 > width {
		x1 = width
	}
	return x0, x1
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import "image"

// Gray is an 8-bit luminance surface backed by an *image.Gray.
// Written pixels are converted with the same weights as color.GrayModel;
// alpha is discarded.
type Gray struct {
	width  int
	height int
	img    *image.Gray
}

// NewGray creates a new black Gray surface.
func NewGray(width, height int) (*Gray, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Gray{
		width:  width,
		height: height,
		img:    image.NewGray(image.Rect(0, 0, width, height)),
	}, nil
}

// Width returns the surface width.
func (s *Gray) Width() int { return s.width }

// Height returns the surface height.
func (s *Gray) Height() int { return s.height }

// Image returns the backing *image.Gray.
func (s *Gray) Image() image.Image { return s.img }

// Luminance converts a packed pixel to 8-bit luminance.
func Luminance(argb uint32) uint8 {
	r := (argb >> 16 & 0xff) * 0x101
	g := (argb >> 8 & 0xff) * 0x101
	b := (argb & 0xff) * 0x101
	return uint8((19595*r + 38470*g + 7471*b + 1<<15) >> 24)
}

// Set writes the luminance of argb at (x, y).
func (s *Gray) Set(x, y int, argb uint32) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.img.Pix[y*s.img.Stride+x] = Luminance(argb)
}

// At returns the pixel at (x, y) as an opaque packed gray, or 0 outside the
// surface.
func (s *Gray) At(x, y int) uint32 {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return 0
	}
	v := uint32(s.img.Pix[y*s.img.Stride+x])
	return 0xff000000 | v<<16 | v<<8 | v
}

// CopyRow copies pixels [x0, x1) of row srcY onto row dstY.
func (s *Gray) CopyRow(dstY, srcY, x0, x1 int) {
	if dstY < 0 || dstY >= s.height || srcY < 0 || srcY >= s.height {
		return
	}
	x0, x1 = clampSpan(x0, x1, s.width)
	if x0 >= x1 {
		return
	}
	copy(s.img.Pix[dstY*s.img.Stride+x0:dstY*s.img.Stride+x1], s.img.Pix[srcY*s.img.Stride+x0:srcY*s.img.Stride+x1])
}

// Clear fills the surface with the luminance of argb.
func (s *Gray) Clear(argb uint32) {
	v := Luminance(argb)
	for y := range s.height {
		row := s.img.Pix[y*s.img.Stride : y*s.img.Stride+s.width]
		for i := range row {
			row[i] = v
		}
	}
}

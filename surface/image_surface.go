// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
)

// RGBA is a 32-bit color surface backed by an *image.RGBA.
//
// Example:
//
//	s, _ := surface.NewRGBA(800, 600)
//	mapper.Render(ctx, view, s)
//	png.Encode(w, s.Image())
type RGBA struct {
	width  int
	height int
	img    *image.RGBA
}

// NewRGBA creates a new transparent RGBA surface.
func NewRGBA(width, height int) (*RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &RGBA{
		width:  width,
		height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}, nil
}

// NewRGBAFromImage creates a surface backed by an existing image.
// The surface renders into the provided image directly; pixel (0, 0) of the
// surface is img.Rect.Min.
func NewRGBAFromImage(img *image.RGBA) *RGBA {
	b := img.Bounds()
	return &RGBA{width: b.Dx(), height: b.Dy(), img: img}
}

// Width returns the surface width.
func (s *RGBA) Width() int { return s.width }

// Height returns the surface height.
func (s *RGBA) Height() int { return s.height }

// Image returns the backing *image.RGBA.
func (s *RGBA) Image() image.Image { return s.img }

// RGBA returns the backing *image.RGBA.
func (s *RGBA) RGBA() *image.RGBA { return s.img }

func (s *RGBA) offset(x, y int) int {
	return y*s.img.Stride + x*4
}

// Set writes the packed pixel at (x, y).
func (s *RGBA) Set(x, y int, argb uint32) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	i := s.offset(x, y)
	p := s.img.Pix[i : i+4 : i+4]
	p[0] = uint8(argb >> 16)
	p[1] = uint8(argb >> 8)
	p[2] = uint8(argb)
	p[3] = uint8(argb >> 24)
}

// At returns the packed pixel at (x, y), or 0 outside the surface.
func (s *RGBA) At(x, y int) uint32 {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return 0
	}
	i := s.offset(x, y)
	p := s.img.Pix[i : i+4 : i+4]
	return uint32(p[3])<<24 | uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2])
}

// CopyRow copies pixels [x0, x1) of row srcY onto row dstY.
func (s *RGBA) CopyRow(dstY, srcY, x0, x1 int) {
	if dstY < 0 || dstY >= s.height || srcY < 0 || srcY >= s.height {
		return
	}
	x0, x1 = clampSpan(x0, x1, s.width)
	if x0 >= x1 {
		return
	}
	copy(s.img.Pix[s.offset(x0, dstY):s.offset(x1, dstY)], s.img.Pix[s.offset(x0, srcY):s.offset(x1, srcY)])
}

// Clear fills the surface with argb.
func (s *RGBA) Clear(argb uint32) {
	px := [4]uint8{uint8(argb >> 16), uint8(argb >> 8), uint8(argb), uint8(argb >> 24)}
	for y := range s.height {
		row := s.img.Pix[s.offset(0, y):s.offset(s.width, y)]
		for i := 0; i < len(row); i += 4 {
			copy(row[i:i+4], px[:])
		}
	}
}

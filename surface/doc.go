// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the writable raster targets the globe mapper
// renders into.
//
// A Surface is a fixed-size, row-major pixel buffer addressed by (x, y)
// with the origin at the top-left corner. Pixels are written as packed
// 0xAARRGGBB words and converted to the surface's storage format:
//
//   - RGBA: 32-bit color backed by *image.RGBA
//   - Gray: 8-bit luminance backed by *image.Gray
//
// # Registry
//
// Surfaces can also be created by format name, which is how the command
// line tool selects its output format:
//
//	s, err := surface.NewByName("gray", 800, 600)
//
// Third-party formats can be added with Register.
//
// # Thread Safety
//
// Surfaces are NOT thread-safe in general. Concurrent writers are allowed
// only when they touch disjoint rows, which is how the mapper's parallel
// bands use them.
package surface

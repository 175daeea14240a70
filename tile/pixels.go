package tile

import (
	"image"
	"image/color"
)

// Depth is the bit depth of a tile's pixel storage.
type Depth uint8

const (
	// Indexed8 stores one palette index byte per pixel.
	Indexed8 Depth = 8

	// Color32 stores one packed 0xAARRGGBB word per pixel.
	Color32 Depth = 32
)

// String implements fmt.Stringer.
func (d Depth) String() string {
	switch d {
	case Indexed8:
		return "Indexed8"
	case Color32:
		return "Color32"
	default:
		return "Depth(?)"
	}
}

// Pixels is read-only access to a tile's pixel storage.
// At must only be called with 0 <= x < width and 0 <= y < height.
type Pixels interface {
	Depth() Depth
	At(x, y int) uint32
}

// Palette maps palette indices to packed pixels.
type Palette [256]uint32

// GrayPalette returns the identity gray ramp.
func GrayPalette() *Palette {
	var p Palette
	for i := range p {
		v := uint32(i)
		p[i] = 0xff000000 | v<<16 | v<<8 | v
	}
	return &p
}

// Indexed is 8-bit palette-indexed pixel storage.
type Indexed struct {
	Pix     []uint8
	Stride  int
	Palette *Palette
}

// Depth returns Indexed8.
func (p *Indexed) Depth() Depth { return Indexed8 }

// At returns the palette color of pixel (x, y).
func (p *Indexed) At(x, y int) uint32 {
	return p.Palette[p.Pix[y*p.Stride+x]]
}

// Color is 32-bit packed pixel storage.
type Color struct {
	Pix    []uint32
	Stride int
}

// Depth returns Color32.
func (p *Color) Depth() Depth { return Color32 }

// At returns pixel (x, y).
func (p *Color) At(x, y int) uint32 {
	return p.Pix[y*p.Stride+x]
}

// Pack packs an 8-bit RGBA color into 0xAARRGGBB.
func Pack(c color.RGBA) uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Unpack unpacks 0xAARRGGBB into an 8-bit RGBA color.
func Unpack(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: uint8(v >> 24)}
}

// ColorFromRGBA copies img into Color32 storage.
func ColorFromRGBA(img *image.RGBA) *Color {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	p := &Color{Pix: make([]uint32, w*h), Stride: w}
	for y := range h {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := range w {
			s := row[x*4 : x*4+4 : x*4+4]
			p.Pix[y*w+x] = uint32(s[3])<<24 | uint32(s[0])<<16 | uint32(s[1])<<8 | uint32(s[2])
		}
	}
	return p
}

var grayPalette = GrayPalette()

// IndexedFromGray wraps img as Indexed8 storage over the gray palette.
// The pixel bytes are shared, not copied; img must be anchored at (0, 0).
func IndexedFromGray(img *image.Gray) *Indexed {
	return &Indexed{Pix: img.Pix, Stride: img.Stride, Palette: grayPalette}
}

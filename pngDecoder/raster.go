package pngDecoder

import (
	"image"
)

type RasterType int

const (
	RasterInvalid RasterType = iota - 1
	RasterGrayscale8
	RasterGrayscale16
	RasterRGB8
	RasterRGB16
	RasterGrayscale8A
	RasterGrayscale16A
	RasterRGBA8
	RasterRGBA16
)

func (t RasterType) String() string {
	switch t {
	case RasterGrayscale8:
		return "grayscale8"
	case RasterGrayscale16:
		return "grayscale16"
	case RasterRGB8:
		return "rgb8"
	case RasterRGB16:
		return "rgb16"
	case RasterGrayscale8A:
		return "grayscale8a"
	case RasterGrayscale16A:
		return "grayscale16a"
	case RasterRGBA8:
		return "rgba8"
	case RasterRGBA16:
		return "rgba16"
	}
	return "invalid"
}

// wide reports whether samples are 16 bits.
func (t RasterType) wide() bool {
	switch t {
	case RasterGrayscale16, RasterRGB16, RasterGrayscale16A, RasterRGBA16:
		return true
	}
	return false
}

type Grayscale8A struct {
	Level uint8
	Alpha uint8
}

type Grayscale16A struct {
	Level uint16
	Alpha uint16
}

type RGB8 struct {
	R, G, B uint8
}

type RGB16 struct {
	R, G, B uint16
}

type RGBA8 struct {
	R, G, B, A uint8
}

type RGBA16 struct {
	R, G, B, A uint16
}

// Pixel lists the element kinds a raster can hold. Plain uint8 and uint16
// are grayscale levels.
type Pixel interface {
	uint8 | uint16 | Grayscale8A | Grayscale16A | RGB8 | RGB16 | RGBA8 | RGBA16
}

// Raster is one of the eight *PixelRaster instantiations.
type Raster interface {
	Type() RasterType
	Bounds() (width, height uint32)
	raster()
}

// PixelRaster stores pixels row-major, Pix[y*Width+x].
type PixelRaster[T Pixel] struct {
	Width  uint32
	Height uint32
	Pix    []T
}

func NewPixelRaster[T Pixel](width, height uint32) *PixelRaster[T] {
	return &PixelRaster[T]{
		Width:  width,
		Height: height,
		Pix:    make([]T, int(width)*int(height)),
	}
}

func (r *PixelRaster[T]) Type() RasterType {
	switch any(r.Pix).(type) {
	case []uint8:
		return RasterGrayscale8
	case []uint16:
		return RasterGrayscale16
	case []RGB8:
		return RasterRGB8
	case []RGB16:
		return RasterRGB16
	case []Grayscale8A:
		return RasterGrayscale8A
	case []Grayscale16A:
		return RasterGrayscale16A
	case []RGBA8:
		return RasterRGBA8
	case []RGBA16:
		return RasterRGBA16
	}
	return RasterInvalid
}

func (r *PixelRaster[T]) Bounds() (width, height uint32) {
	return r.Width, r.Height
}

func (r *PixelRaster[T]) At(x, y int) T {
	return r.Pix[y*int(r.Width)+x]
}

func (*PixelRaster[T]) raster() {}

// toRGBA8 widens an 8-bit raster. ok is false for 16-bit sources.
func toRGBA8(src Raster) (out *PixelRaster[RGBA8], ok bool) {
	if src.Type().wide() {
		return nil, false
	}
	w, h := src.Bounds()
	out = NewPixelRaster[RGBA8](w, h)
	switch r := src.(type) {
	case *PixelRaster[uint8]:
		for i, level := range r.Pix {
			out.Pix[i] = RGBA8{level, level, level, 0xFF}
		}
	case *PixelRaster[Grayscale8A]:
		for i, p := range r.Pix {
			out.Pix[i] = RGBA8{p.Level, p.Level, p.Level, p.Alpha}
		}
	case *PixelRaster[RGB8]:
		for i, p := range r.Pix {
			out.Pix[i] = RGBA8{p.R, p.G, p.B, 0xFF}
		}
	case *PixelRaster[RGBA8]:
		copy(out.Pix, r.Pix)
	default:
		return nil, false
	}
	return out, true
}

// toRGBA16 widens a 16-bit raster. ok is false for 8-bit sources.
func toRGBA16(src Raster) (out *PixelRaster[RGBA16], ok bool) {
	if !src.Type().wide() {
		return nil, false
	}
	w, h := src.Bounds()
	out = NewPixelRaster[RGBA16](w, h)
	switch r := src.(type) {
	case *PixelRaster[uint16]:
		for i, level := range r.Pix {
			out.Pix[i] = RGBA16{level, level, level, 0xFFFF}
		}
	case *PixelRaster[Grayscale16A]:
		for i, p := range r.Pix {
			out.Pix[i] = RGBA16{p.Level, p.Level, p.Level, p.Alpha}
		}
	case *PixelRaster[RGB16]:
		for i, p := range r.Pix {
			out.Pix[i] = RGBA16{p.R, p.G, p.B, 0xFFFF}
		}
	case *PixelRaster[RGBA16]:
		copy(out.Pix, r.Pix)
	default:
		return nil, false
	}
	return out, true
}

// NRGBA copies the raster into a standard library image.
func (r *PixelRaster[T]) NRGBA() *image.NRGBA {
	rgba, ok := toRGBA8(r)
	if !ok {
		return nil
	}
	img := image.NewNRGBA(image.Rect(0, 0, int(r.Width), int(r.Height)))
	for i, p := range rgba.Pix {
		o := i * 4
		img.Pix[o+0], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3] = p.R, p.G, p.B, p.A
	}
	return img
}

// NRGBA64 is the 16-bit counterpart of NRGBA.
func (r *PixelRaster[T]) NRGBA64() *image.NRGBA64 {
	rgba, ok := toRGBA16(r)
	if !ok {
		return nil
	}
	img := image.NewNRGBA64(image.Rect(0, 0, int(r.Width), int(r.Height)))
	for i, p := range rgba.Pix {
		o := i * 8
		img.Pix[o+0], img.Pix[o+1] = uint8(p.R>>8), uint8(p.R)
		img.Pix[o+2], img.Pix[o+3] = uint8(p.G>>8), uint8(p.G)
		img.Pix[o+4], img.Pix[o+5] = uint8(p.B>>8), uint8(p.B)
		img.Pix[o+6], img.Pix[o+7] = uint8(p.A>>8), uint8(p.A)
	}
	return img
}

package pngDecoder

import (
	"pngdec/utils"
)

// Multipliers taking a 1, 2 or 4 bit sample onto 0..255.
var subByteScale = map[byte]uint8{
	1: 0xFF,
	2: 0x55,
	4: 0x11,
	8: 0x01,
}

// sample extracts the depth-bit sample at index i of a packed row, most
// significant bits first. depth is 1, 2, 4 or 8.
func sample(scanline []byte, i int, depth int) uint8 {
	bit := i * depth
	shift := 8 - depth - bit%8
	return (scanline[bit/8] >> shift) & uint8(1<<depth-1)
}

// sample16 reads the big-endian 16-bit sample at index i.
func sample16(scanline []byte, i int) uint16 {
	return utils.BytesToUint16(scanline[i*2:])
}

// pixelAssembler turns reconstructed bytes into typed pixels. The raster
// kind and the put function are fixed when it is built.
type pixelAssembler struct {
	raster Raster
	putFn  func(dst int, scanline []byte, col int)
}

func (a *pixelAssembler) put(dst int, scanline []byte, col int) {
	a.putFn(dst, scanline, col)
}

func newPixelAssembler(ihdr *IHDR, plte Palette, trns Transparency) *pixelAssembler {
	w, h := ihdr.Width, ihdr.Height
	depth := int(ihdr.Bit_depth)
	a := &pixelAssembler{}

	switch ihdr.colorType() {
	case Grayscale:
		if depth == 16 {
			r := NewPixelRaster[uint16](w, h)
			a.raster = r
			a.putFn = func(dst int, s []byte, col int) {
				r.Pix[dst] = sample16(s, col)
			}
			break
		}
		r := NewPixelRaster[uint8](w, h)
		scale := subByteScale[ihdr.Bit_depth]
		a.raster = r
		a.putFn = func(dst int, s []byte, col int) {
			r.Pix[dst] = sample(s, col, depth) * scale
		}

	case Truecolor:
		if depth == 16 {
			r := NewPixelRaster[RGB16](w, h)
			a.raster = r
			a.putFn = func(dst int, s []byte, col int) {
				i := col * 3
				r.Pix[dst] = RGB16{sample16(s, i), sample16(s, i+1), sample16(s, i+2)}
			}
			break
		}
		r := NewPixelRaster[RGB8](w, h)
		a.raster = r
		a.putFn = func(dst int, s []byte, col int) {
			i := col * 3
			r.Pix[dst] = RGB8{s[i], s[i+1], s[i+2]}
		}

	case Indexed:
		if trns != nil {
			r := NewPixelRaster[RGBA8](w, h)
			a.raster = r
			a.putFn = func(dst int, s []byte, col int) {
				idx := sample(s, col, depth)
				c := plte.lookup(idx)
				r.Pix[dst] = RGBA8{c.R, c.G, c.B, trns.alpha(idx)}
			}
			break
		}
		r := NewPixelRaster[RGB8](w, h)
		a.raster = r
		a.putFn = func(dst int, s []byte, col int) {
			r.Pix[dst] = plte.lookup(sample(s, col, depth))
		}

	case GrayscaleAlpha:
		if depth == 16 {
			r := NewPixelRaster[Grayscale16A](w, h)
			a.raster = r
			a.putFn = func(dst int, s []byte, col int) {
				i := col * 2
				r.Pix[dst] = Grayscale16A{sample16(s, i), sample16(s, i+1)}
			}
			break
		}
		r := NewPixelRaster[Grayscale8A](w, h)
		a.raster = r
		a.putFn = func(dst int, s []byte, col int) {
			i := col * 2
			r.Pix[dst] = Grayscale8A{s[i], s[i+1]}
		}

	case TruecolorAlpha:
		if depth == 16 {
			r := NewPixelRaster[RGBA16](w, h)
			a.raster = r
			a.putFn = func(dst int, s []byte, col int) {
				i := col * 4
				r.Pix[dst] = RGBA16{sample16(s, i), sample16(s, i+1), sample16(s, i+2), sample16(s, i+3)}
			}
			break
		}
		r := NewPixelRaster[RGBA8](w, h)
		a.raster = r
		a.putFn = func(dst int, s []byte, col int) {
			i := col * 4
			r.Pix[dst] = RGBA8{s[i], s[i+1], s[i+2], s[i+3]}
		}
	}
	return a
}

// lookup returns opaque black for indices past the end of the palette.
func (p Palette) lookup(idx uint8) RGB8 {
	if int(idx) < len(p) {
		return p[idx]
	}
	return RGB8{}
}

// alpha is fully opaque for indices the table does not cover.
func (t Transparency) alpha(idx uint8) uint8 {
	if int(idx) < len(t) {
		return t[idx]
	}
	return 0xFF
}
